package pathutil

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/api/news", "/api/news"},
		{"/api/news/12", "/api/news/:id"},
		{"/api/news/12/", "/api/news/:id"},
		{"/api/news/slug/sesion-ordinaria", "/api/news/slug/:slug"},
		{"/api/live-streams/3/status", "/api/live-streams/:id/status"},
		{"/api/radio/episodes/9?x=1", "/api/radio/episodes/:id"},
		{"/uploads/images/abc.png", "/uploads/*"},
		{"/swagger/index.html", "/swagger/*"},
		{"/health", "/health"},
		{"/", "/"},
	}
	for _, tt := range tests {
		if got := NormalizePath(tt.in); got != tt.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
