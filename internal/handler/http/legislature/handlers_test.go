package legislature_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	hleg "github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/legislature"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
	legUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/legislature"
)

type legislatorStub struct {
	data        map[int64]*entity.Legislator
	lastFilters repository.LegislatorFilters
}

func (s *legislatorStub) List(_ context.Context, f repository.LegislatorFilters) ([]*entity.Legislator, error) {
	s.lastFilters = f
	return nil, nil
}
func (s *legislatorStub) Get(_ context.Context, id int64) (*entity.Legislator, error) {
	return s.data[id], nil
}
func (s *legislatorStub) Create(_ context.Context, l *entity.Legislator) error {
	l.ID = int64(len(s.data) + 1)
	s.data[l.ID] = l
	return nil
}
func (s *legislatorStub) Update(_ context.Context, l *entity.Legislator) error { return nil }
func (s *legislatorStub) Delete(_ context.Context, id int64) error              { return nil }

type groupStub struct{ data map[int64]*entity.ParliamentaryGroup }

func (s *groupStub) List(context.Context) ([]*entity.ParliamentaryGroup, error) {
	out := []*entity.ParliamentaryGroup{}
	for _, g := range s.data {
		out = append(out, g)
	}
	return out, nil
}
func (s *groupStub) Get(_ context.Context, id int64) (*entity.ParliamentaryGroup, error) {
	return s.data[id], nil
}
func (s *groupStub) Create(context.Context, *entity.ParliamentaryGroup) error { return nil }
func (s *groupStub) Update(context.Context, *entity.ParliamentaryGroup) error { return nil }
func (s *groupStub) Delete(context.Context, int64) error                      { return nil }

func setup() (*legislatorStub, *http.ServeMux) {
	legislators := &legislatorStub{data: map[int64]*entity.Legislator{}}
	groups := &groupStub{data: map[int64]*entity.ParliamentaryGroup{
		3: {ID: 3, Name: "Grupo Parlamentario Independiente"},
	}}
	mux := http.NewServeMux()
	hleg.Register(mux, hleg.Services{
		Groups:      &legUC.GroupService{Repo: groups},
		Legislators: &legUC.LegislatorService{Repo: legislators, Groups: groups},
	})
	return legislators, mux
}

func do(mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(method, target, strings.NewReader(body)))
	return w
}

func TestLegislatorList_Filters(t *testing.T) {
	legislators, mux := setup()

	w := do(mux, http.MethodGet, "/api/legislators?chamber=Senado&group_id=3&state=Jalisco", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `[]`, w.Body.String())
	assert.Equal(t, "senado", legislators.lastFilters.Chamber)
	require.NotNil(t, legislators.lastFilters.GroupID)
	assert.Equal(t, int64(3), *legislators.lastFilters.GroupID)
	assert.Equal(t, "Jalisco", legislators.lastFilters.State)

	w = do(mux, http.MethodGet, "/api/legislators?chamber=cabildo", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "chamber must be one of diputados, senado")
}

func TestLegislatorCreate(t *testing.T) {
	_, mux := setup()

	w := do(mux, http.MethodPost, "/api/legislators", `{"name":"Ana Torres","chamber":"diputados","parliamentary_group_id":3}`)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(mux, http.MethodPost, "/api/legislators", `{"name":"Ana Torres","chamber":"asamblea"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "chamber must be one of")

	w = do(mux, http.MethodPost, "/api/legislators", `{"name":"Ana Torres","chamber":"senado","parliamentary_group_id":99}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid parliamentary_group_id")
}

func TestGroupList(t *testing.T) {
	_, mux := setup()

	w := do(mux, http.MethodGet, "/api/parliamentary-groups", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Grupo Parlamentario Independiente")
}
