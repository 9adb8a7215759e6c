package auth

import (
	"net/http"
	"strings"
)

// PublicEndpoints never require a token. Entries ending in "/" match by
// prefix; the others match exactly, with an optional trailing slash.
var PublicEndpoints = []string{
	"/health",
	"/ready",
	"/live",
	"/metrics",
	"/swagger/",
	"/auth/token",
	"/uploads/",
}

// adminOnlyReads are /api prefixes whose GETs still need a token.
var adminOnlyReads = []string{"/api/news-feeds"}

func IsPublicEndpoint(path string) bool {
	for _, endpoint := range PublicEndpoints {
		if strings.HasSuffix(endpoint, "/") {
			if strings.HasPrefix(path, endpoint) {
				return true
			}
			continue
		}
		if path == endpoint || path == endpoint+"/" {
			return true
		}
	}
	return false
}

// IsPublicRead reports whether the request only reads public site content.
// The public site fetches every /api resource anonymously except the feed
// list, which exposes crawler configuration.
func IsPublicRead(method, path string) bool {
	if method != http.MethodGet && method != http.MethodHead {
		return false
	}
	if !strings.HasPrefix(path, "/api/") {
		return false
	}
	for _, prefix := range adminOnlyReads {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return false
		}
	}
	return true
}
