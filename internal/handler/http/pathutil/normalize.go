package pathutil

import (
	"strings"
)

// NormalizePath collapses the variable parts of a request path so metric
// label cardinality stays bounded: numeric segments become ":id", news slugs
// become ":slug" and anything under /uploads/ is reported as "/uploads/*".
//
// Example:
//
//	NormalizePath("/api/radio/episodes/42")    // "/api/radio/episodes/:id"
//	NormalizePath("/api/news/slug/sesion-42")  // "/api/news/slug/:slug"
//	NormalizePath("/uploads/images/a.png")     // "/uploads/*"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	if strings.HasPrefix(path, "/uploads/") {
		return "/uploads/*"
	}
	if strings.HasPrefix(path, "/swagger/") {
		return "/swagger/*"
	}

	segments := strings.Split(path, "/")
	for i, seg := range segments {
		switch {
		case i > 0 && segments[i-1] == "slug" && seg != "":
			segments[i] = ":slug"
		case isNumeric(seg):
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
