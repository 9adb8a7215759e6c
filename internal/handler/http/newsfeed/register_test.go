package newsfeed_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	hfeed "github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/newsfeed"
	feedUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/newsfeed"
)

type stubRepo struct {
	feeds  map[int64]*entity.NewsFeed
	nextID int64
}

func (r *stubRepo) Get(_ context.Context, id int64) (*entity.NewsFeed, error) {
	return r.feeds[id], nil
}
func (r *stubRepo) List(context.Context) ([]*entity.NewsFeed, error) {
	var out []*entity.NewsFeed
	for _, f := range r.feeds {
		out = append(out, f)
	}
	return out, nil
}
func (r *stubRepo) ListActive(ctx context.Context) ([]*entity.NewsFeed, error) { return r.List(ctx) }
func (r *stubRepo) Create(_ context.Context, f *entity.NewsFeed) error {
	r.nextID++
	f.ID = r.nextID
	r.feeds[f.ID] = f
	return nil
}
func (r *stubRepo) Update(_ context.Context, f *entity.NewsFeed) error {
	r.feeds[f.ID] = f
	return nil
}
func (r *stubRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.feeds[id]; !ok {
		return fmt.Errorf("news feed %w", entity.ErrNotFound)
	}
	delete(r.feeds, id)
	return nil
}
func (r *stubRepo) TouchCrawledAt(context.Context, int64, time.Time) error { return nil }

func newMux() *http.ServeMux {
	mux := http.NewServeMux()
	hfeed.Register(mux, &feedUC.Service{Repo: &stubRepo{feeds: map[int64]*entity.NewsFeed{}}})
	return mux
}

func do(mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(method, target, strings.NewReader(body)))
	return w
}

func TestNewsFeeds_Lifecycle(t *testing.T) {
	mux := newMux()

	w := do(mux, http.MethodGet, "/api/news-feeds", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(mux, http.MethodPost, "/api/news-feeds", `{"name":"Boletines","feed_url":"https://93.184.216.34/rss"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created entity.NewsFeed
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.Active)

	w = do(mux, http.MethodPut, fmt.Sprintf("/api/news-feeds/%d", created.ID), `{"name":"Boletines","feed_url":"https://93.184.216.34/rss","active":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"active":false`)

	w = do(mux, http.MethodDelete, fmt.Sprintf("/api/news-feeds/%d", created.ID), "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(mux, http.MethodGet, fmt.Sprintf("/api/news-feeds/%d", created.ID), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewsFeeds_RejectsPrivateURL(t *testing.T) {
	w := do(newMux(), http.MethodPost, "/api/news-feeds", `{"name":"interno","feed_url":"http://10.0.0.8/rss"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"feed_url"`)
}
