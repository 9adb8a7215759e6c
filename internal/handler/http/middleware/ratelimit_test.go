package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

func hit(h http.Handler, method, path, remote string) int {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimit_PerClient(t *testing.T) {
	h := RateLimit("test_client", 2, time.Minute, KeyFunc(RemoteAddrExtractor{}))(ok)

	assert.Equal(t, http.StatusOK, hit(h, "GET", "/api/news", "192.0.2.1:1000"))
	assert.Equal(t, http.StatusOK, hit(h, "GET", "/api/news", "192.0.2.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "GET", "/api/news", "192.0.2.1:1002"))
	assert.Equal(t, http.StatusOK, hit(h, "GET", "/api/news", "192.0.2.2:1000"))
	assert.Equal(t, float64(1), testutil.ToFloat64(rateLimitDenied.WithLabelValues("test_client")))
}

func TestRateLimit_ResponseBody(t *testing.T) {
	h := RateLimit("test_body", 1, time.Minute, KeyFunc(RemoteAddrExtractor{}))(ok)
	hit(h, "GET", "/", "192.0.2.1:1")

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.0.2.1:1"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimit_DisabledBelowOne(t *testing.T) {
	h := RateLimit("test_off", 0, time.Minute, KeyFunc(RemoteAddrExtractor{}))(ok)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(h, "GET", "/", "192.0.2.1:1"))
	}
}

func TestRateLimit_TrustedProxyKeys(t *testing.T) {
	cfg, _ := ParseTrustedProxies(true, []string{"10.0.0.1"})
	h := RateLimit("test_proxy", 1, time.Minute, KeyFunc(NewIPExtractor(cfg)))(ok)

	send := func(client string) int {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "10.0.0.1:9000"
		req.Header.Set("X-Forwarded-For", client)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("203.0.113.1"))
	assert.Equal(t, http.StatusOK, send("203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.1"))
}

func TestOnly(t *testing.T) {
	limiter := RateLimit("test_only", 1, time.Minute, KeyFunc(RemoteAddrExtractor{}))
	h := Only(http.MethodPost, "/auth/token", limiter)(ok)

	assert.Equal(t, http.StatusOK, hit(h, "POST", "/auth/token", "192.0.2.1:1"))
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "POST", "/auth/token", "192.0.2.1:1"))
	assert.Equal(t, http.StatusOK, hit(h, "GET", "/api/news", "192.0.2.1:1"))
	assert.Equal(t, http.StatusOK, hit(h, "POST", "/api/news", "192.0.2.1:1"))
}
