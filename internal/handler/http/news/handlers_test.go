package news_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcarbmont89/full-congreso-sub000/internal/common/pagination"
	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/auth"
	hnews "github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/news"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
	newsUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/news"
)

type stubRepo struct {
	data       map[int64]*entity.News
	nextID     int64
	lastFilter repository.NewsFilters
	lastOffset int
	lastLimit  int
}

func (s *stubRepo) List(_ context.Context, f repository.NewsFilters, offset, limit int) ([]*entity.News, error) {
	s.lastFilter, s.lastOffset, s.lastLimit = f, offset, limit
	out := []*entity.News{}
	for id := int64(1); id < s.nextID; id++ {
		if n, ok := s.data[id]; ok {
			out = append(out, n)
		}
	}
	return out, nil
}
func (s *stubRepo) Count(context.Context, repository.NewsFilters) (int64, error) {
	return int64(len(s.data)), nil
}
func (s *stubRepo) Get(_ context.Context, id int64) (*entity.News, error) { return s.data[id], nil }
func (s *stubRepo) GetBySlug(_ context.Context, slug string) (*entity.News, error) {
	for _, n := range s.data {
		if n.Slug == slug {
			return n, nil
		}
	}
	return nil, nil
}
func (s *stubRepo) Create(_ context.Context, n *entity.News) error {
	n.ID = s.nextID
	s.nextID++
	s.data[n.ID] = n
	return nil
}
func (s *stubRepo) Update(_ context.Context, n *entity.News) error { s.data[n.ID] = n; return nil }
func (s *stubRepo) Delete(_ context.Context, id int64) error {
	if _, ok := s.data[id]; !ok {
		return entity.ErrNotFound
	}
	delete(s.data, id)
	return nil
}
func (s *stubRepo) ExistingSourceURLs(context.Context, []string) (map[string]bool, error) {
	return map[string]bool{}, nil
}

func setup() (*stubRepo, *http.ServeMux) {
	repo := &stubRepo{data: map[int64]*entity.News{}, nextID: 1}
	svc := &newsUC.Service{Repo: repo, Now: func() time.Time { return time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC) }}
	mux := http.NewServeMux()
	hnews.Register(mux, svc, pagination.DefaultConfig(), nil)
	return repo, mux
}

func do(mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestCreate_DerivesExcerptImageAndSlug(t *testing.T) {
	_, mux := setup()

	w := do(mux, http.MethodPost, "/api/news", `{
		"title": "Comparece la Secretaria de Hacienda",
		"content": "<p>La comparecencia duró <b>cuatro horas</b>.</p><img src=\"/uploads/images/a.webp\"><script>x()</script>",
		"published": true
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var n entity.News
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &n))
	assert.Equal(t, int64(1), n.ID)
	assert.Equal(t, "comparece-la-secretaria-de-hacienda", n.Slug)
	assert.Equal(t, "La comparecencia duró cuatro horas.", n.Excerpt)
	assert.Equal(t, "/uploads/images/a.webp", n.ImageURL)
	assert.NotContains(t, n.Content, "<script>")
	require.NotNil(t, n.PublishedAt)
}

func TestCreate_MissingTitle(t *testing.T) {
	_, mux := setup()

	w := do(mux, http.MethodPost, "/api/news", `{"content":"<p>x</p>"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "title is required")
}

func TestGetBySlug(t *testing.T) {
	_, mux := setup()
	require.Equal(t, http.StatusCreated, do(mux, http.MethodPost, "/api/news", `{"title":"Sesión ordinaria","published":true}`).Code)

	w := do(mux, http.MethodGet, "/api/news/slug/sesion-ordinaria", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Sesión ordinaria"`)

	w = do(mux, http.MethodGet, "/api/news/slug/no-existe", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "news not found")
}

func TestList_FiltersAndPagination(t *testing.T) {
	repo, mux := setup()
	for _, title := range []string{"Uno", "Dos", "Tres"} {
		require.Equal(t, http.StatusCreated, do(mux, http.MethodPost, "/api/news", `{"title":"`+title+`"}`).Code)
	}

	w := do(mux, http.MethodGet, "/api/news?category=legislativo&published=true&featured=false&page=2&limit=2", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, "legislativo", repo.lastFilter.Category)
	require.NotNil(t, repo.lastFilter.Published)
	assert.True(t, *repo.lastFilter.Published)
	require.NotNil(t, repo.lastFilter.Featured)
	assert.False(t, *repo.lastFilter.Featured)
	assert.Equal(t, 2, repo.lastOffset)
	assert.Equal(t, 2, repo.lastLimit)

	var body pagination.Response[entity.News]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, pagination.Metadata{Total: 3, Page: 2, Limit: 2, TotalPages: 2}, body.Pagination)
}

func TestList_InvalidBool(t *testing.T) {
	_, mux := setup()

	w := do(mux, http.MethodGet, "/api/news?published=yes", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "published must be true or false")
}

func TestUpdateAndDelete(t *testing.T) {
	_, mux := setup()
	require.Equal(t, http.StatusCreated, do(mux, http.MethodPost, "/api/news", `{"title":"Borrador"}`).Code)

	w := do(mux, http.MethodPut, "/api/news/1", `{"title":"Versión final","slug":"version-final"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"slug":"version-final"`)

	assert.Equal(t, http.StatusNoContent, do(mux, http.MethodDelete, "/api/news/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(mux, http.MethodGet, "/api/news/1", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(mux, http.MethodGet, "/api/news/abc", "").Code)
}

var draftsSecret = []byte("0123456789abcdef0123456789abcdef")

func editorToken(t *testing.T) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "prensa@congreso.gob.mx",
		"role": auth.RoleEditor,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString(draftsSecret)
	require.NoError(t, err)
	return tok
}

func get(h http.Handler, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestDrafts_HiddenFromAnonymousReaders(t *testing.T) {
	repo, mux := setup()
	require.Equal(t, http.StatusCreated, do(mux, http.MethodPost, "/api/news", `{"title":"Borrador","slug":"borrador"}`).Code)
	h := auth.Authz(draftsSecret)(mux)

	t.Run("anonymous", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get(h, "/api/news/1", "").Code)
		assert.Equal(t, http.StatusNotFound, get(h, "/api/news/slug/borrador", "").Code)

		w := get(h, "/api/news?published=false", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.NotNil(t, repo.lastFilter.Published)
		assert.True(t, *repo.lastFilter.Published)

		get(h, "/api/news", "")
		require.NotNil(t, repo.lastFilter.Published)
		assert.True(t, *repo.lastFilter.Published)
	})

	t.Run("invalid token is anonymous", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get(h, "/api/news/1", "not.a.token").Code)
	})

	t.Run("editor", func(t *testing.T) {
		tok := editorToken(t)
		w := get(h, "/api/news/1", tok)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"published":false`)
		assert.Equal(t, http.StatusOK, get(h, "/api/news/slug/borrador", tok).Code)

		require.Equal(t, http.StatusOK, get(h, "/api/news?published=false", tok).Code)
		require.NotNil(t, repo.lastFilter.Published)
		assert.False(t, *repo.lastFilter.Published)

		get(h, "/api/news", tok)
		assert.Nil(t, repo.lastFilter.Published)
	})
}

func TestPublishedNews_VisibleToAnonymousReaders(t *testing.T) {
	_, mux := setup()
	require.Equal(t, http.StatusCreated, do(mux, http.MethodPost, "/api/news", `{"title":"Aprobada la reforma","published":true}`).Code)
	h := auth.Authz(draftsSecret)(mux)

	assert.Equal(t, http.StatusOK, get(h, "/api/news/1", "").Code)
	assert.Equal(t, http.StatusOK, get(h, "/api/news/slug/aprobada-la-reforma", "").Code)
}
