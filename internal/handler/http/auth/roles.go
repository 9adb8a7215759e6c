package auth

import (
	"net/http"
	"slices"
	"strings"
)

const (
	// RoleAdmin can write everything, including news feeds and the homepage
	// configuration.
	RoleAdmin = "admin"
	// RoleEditor manages content.
	RoleEditor = "editor"
)

// Permission lists what a role may call. Paths ending in "/*" match the
// prefix and everything below it. Denied entries are "METHOD /path" pairs
// where METHOD may be "*"; they win over AllowedPaths.
type Permission struct {
	AllowedMethods []string
	AllowedPaths   []string
	Denied         []string
}

var RolePermissions = map[string]Permission{
	RoleAdmin: {
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedPaths:   []string{"/*"},
	},
	RoleEditor: {
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedPaths:   []string{"/api/*", "/uploads/*"},
		Denied: []string{
			"* /api/news-feeds/*",
			"PUT /api/homepage-config",
		},
	},
}

// checkRolePermission reports whether role may call method on path.
func checkRolePermission(role, method, path string) bool {
	perm, ok := RolePermissions[role]
	if !ok || !slices.Contains(perm.AllowedMethods, method) {
		return false
	}
	for _, rule := range perm.Denied {
		m, pattern, _ := strings.Cut(rule, " ")
		if (m == "*" || m == method) && matchesPathPattern(path, []string{pattern}) {
			return false
		}
	}
	return matchesPathPattern(path, perm.AllowedPaths)
}

func matchesPathPattern(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "/*" {
			return true
		}
		if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				return true
			}
			continue
		}
		if path == pattern || path == pattern+"/" {
			return true
		}
	}
	return false
}
