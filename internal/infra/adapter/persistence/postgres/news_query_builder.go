package postgres

import (
	"fmt"
	"strings"

	"github.com/mcarbmont89/full-congreso-sub000/internal/pkg/search"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
)

// NewsQueryBuilder builds the WHERE clause shared by the news COUNT and
// SELECT queries.
type NewsQueryBuilder struct{}

// NewNewsQueryBuilder creates a new query builder instance.
func NewNewsQueryBuilder() *NewsQueryBuilder {
	return &NewsQueryBuilder{}
}

// BuildWhereClause returns the WHERE clause and its arguments for filters.
// Keywords are AND-ed and each one matches title or excerpt with ILIKE.
// Returns an empty clause when no filter is set.
func (qb *NewsQueryBuilder) BuildWhereClause(filters repository.NewsFilters) (clause string, args []interface{}) {
	var conditions []string
	paramIndex := 1

	for _, keyword := range filters.Keywords {
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR excerpt ILIKE $%d)", paramIndex, paramIndex))
		args = append(args, search.EscapeILIKE(keyword))
		paramIndex++
	}

	if filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", paramIndex))
		args = append(args, filters.Category)
		paramIndex++
	}

	if filters.Published != nil {
		conditions = append(conditions, fmt.Sprintf("published = $%d", paramIndex))
		args = append(args, *filters.Published)
		paramIndex++
	}

	if filters.Featured != nil {
		conditions = append(conditions, fmt.Sprintf("featured = $%d", paramIndex))
		args = append(args, *filters.Featured)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}
