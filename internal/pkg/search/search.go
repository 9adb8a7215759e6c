// Package search holds the keyword parsing and ILIKE escaping used by the
// list endpoints that accept a free-text `q` parameter.
package search

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultMaxKeywordCount caps the number of AND-ed keywords per query.
	DefaultMaxKeywordCount = 10
	// DefaultMaxKeywordLength caps a single keyword in runes.
	DefaultMaxKeywordLength = 100
	// DefaultSearchTimeout bounds ILIKE queries.
	DefaultSearchTimeout = 5 * time.Second
)

// ErrEmptyQuery is returned when the query has no keywords after trimming.
var ErrEmptyQuery = errors.New("search query is required")

// ParseKeywords splits q on whitespace, drops duplicates (case-insensitive)
// and enforces count and length limits.
func ParseKeywords(q string, maxCount, maxLength int) ([]string, error) {
	fields := strings.Fields(q)
	if len(fields) == 0 {
		return nil, ErrEmptyQuery
	}

	seen := make(map[string]struct{}, len(fields))
	keywords := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) > maxLength {
			return nil, fmt.Errorf("keyword is too long (max %d characters)", maxLength)
		}
		key := strings.ToLower(f)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keywords = append(keywords, f)
	}

	if len(keywords) > maxCount {
		return nil, fmt.Errorf("too many keywords: must be at most %d", maxCount)
	}
	return keywords, nil
}

// EscapeILIKE escapes %, _ and \ in keyword and wraps it in % wildcards.
func EscapeILIKE(keyword string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(keyword) + "%"
}
