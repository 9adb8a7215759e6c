package worker

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Track(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	require.NoError(t, m.Track("import-news", func() error { return nil }))
	boom := errors.New("boom")
	assert.ErrorIs(t, m.Track("import-news", func() error { return boom }), boom)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.JobRuns.WithLabelValues("import-news", "started")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobRuns.WithLabelValues("import-news", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobRuns.WithLabelValues("import-news", "failure")))
	assert.Positive(t, testutil.ToFloat64(m.JobLastSuccess.WithLabelValues("import-news")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.JobLastSuccess.WithLabelValues("refresh-content-metrics")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.JobDuration))
}

func TestNewMetrics_NilRegisterer(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = NewMetrics(nil)
		_ = NewMetrics(nil)
	})
}

func TestStartMetricsServer(t *testing.T) {
	addr := freeAddr(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- StartMetricsServer(ctx, addr, discard()) }()

	var body string
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/metrics")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		body = string(b)
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)
	assert.Contains(t, body, "go_goroutines")

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, http.ErrServerClosed)
	case <-time.After(6 * time.Second):
		t.Fatal("metrics server did not stop")
	}
}
