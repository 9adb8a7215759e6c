package livestream_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	hstream "github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/livestream"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
	streamUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/livestream"
)

type stubRepo struct {
	data        map[int64]*entity.LiveStream
	nextID      int64
	lastFilters repository.LiveStreamFilters
}

func (s *stubRepo) List(_ context.Context, f repository.LiveStreamFilters) ([]*entity.LiveStream, error) {
	s.lastFilters = f
	out := []*entity.LiveStream{}
	for id := int64(1); id < s.nextID; id++ {
		if st, ok := s.data[id]; ok {
			out = append(out, st)
		}
	}
	return out, nil
}
func (s *stubRepo) Get(_ context.Context, id int64) (*entity.LiveStream, error) {
	return s.data[id], nil
}
func (s *stubRepo) Create(_ context.Context, st *entity.LiveStream) error {
	st.ID = s.nextID
	s.nextID++
	s.data[st.ID] = st
	return nil
}
func (s *stubRepo) Update(_ context.Context, st *entity.LiveStream) error { s.data[st.ID] = st; return nil }
func (s *stubRepo) UpdateStatus(_ context.Context, id int64, status entity.StreamStatus) (entity.StreamStatus, error) {
	st, ok := s.data[id]
	if !ok {
		return "", fmt.Errorf("live stream %w", entity.ErrNotFound)
	}
	prev := st.Status
	st.Status = status
	return prev, nil
}
func (s *stubRepo) Delete(_ context.Context, id int64) error { delete(s.data, id); return nil }

type recorder struct{ changes []entity.StatusChange }

func (r *recorder) NotifyStatusChange(_ context.Context, c entity.StatusChange) error {
	r.changes = append(r.changes, c)
	return nil
}

func setup(t *testing.T) (*stubRepo, *recorder, *http.ServeMux) {
	t.Helper()
	repo := &stubRepo{data: map[int64]*entity.LiveStream{}, nextID: 1}
	rec := &recorder{}
	mux := http.NewServeMux()
	hstream.Register(mux, &streamUC.Service{Repo: repo, Notifier: rec})

	w := do(mux, http.MethodPost, "/api/live-streams", `{"title":"Canal 45.1","stream_url":"https://live.example.mx/c1.m3u8"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return repo, rec, mux
}

func do(mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(method, target, strings.NewReader(body)))
	return w
}

func TestCreate_DefaultsOfflineWithLabel(t *testing.T) {
	_, _, mux := setup(t)

	w := do(mux, http.MethodGet, "/api/live-streams/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var dto hstream.DTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	assert.Equal(t, entity.StreamStatusOffline, dto.Status)
	assert.Equal(t, "FUERA DEL AIRE", dto.StatusLabel)
}

func TestStatusHandler(t *testing.T) {
	_, rec, mux := setup(t)

	w := do(mux, http.MethodPatch, "/api/live-streams/1/status", `{"status":"LIVE"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status_label":"EN VIVO"`)
	require.Len(t, rec.changes, 1)
	assert.Equal(t, entity.StreamStatusOffline, rec.changes[0].Previous)
	assert.Equal(t, entity.StreamStatusLive, rec.changes[0].Current)

	// same status again: stored, not notified
	w = do(mux, http.MethodPatch, "/api/live-streams/1/status", `{"status":"live"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, rec.changes, 1)
}

func TestStatusHandler_Errors(t *testing.T) {
	_, _, mux := setup(t)

	w := do(mux, http.MethodPatch, "/api/live-streams/1/status", `{"status":"paused"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "status must be one of live, signal_open, recess, offline")

	w = do(mux, http.MethodPatch, "/api/live-streams/9/status", `{"status":"recess"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(mux, http.MethodPatch, "/api/live-streams/x/status", `{"status":"recess"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestList_PublicFilter(t *testing.T) {
	repo, _, mux := setup(t)

	w := do(mux, http.MethodGet, "/api/live-streams?public=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.ElementsMatch(t, entity.PublicStreamStatuses(), repo.lastFilters.Statuses)

	var list []hstream.DTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)

	w = do(mux, http.MethodGet, "/api/live-streams?public=true&status=offline", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
