package postgres_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mcarbmont89/full-congreso-sub000/internal/infra/adapter/persistence/postgres"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
)

func TestNewsQueryBuilder_BuildWhereClause(t *testing.T) {
	featured := true
	published := false

	tests := []struct {
		name       string
		filters    repository.NewsFilters
		wantClause string
		wantArgs   []interface{}
	}{
		{
			name:       "no conditions",
			filters:    repository.NewsFilters{},
			wantClause: "",
			wantArgs:   nil,
		},
		{
			name:       "single keyword",
			filters:    repository.NewsFilters{Keywords: []string{"senado"}},
			wantClause: "WHERE (title ILIKE $1 OR excerpt ILIKE $1)",
			wantArgs:   []interface{}{"%senado%"},
		},
		{
			name:       "keywords and category",
			filters:    repository.NewsFilters{Keywords: []string{"ley", "reforma"}, Category: "legislativo"},
			wantClause: "WHERE (title ILIKE $1 OR excerpt ILIKE $1) AND (title ILIKE $2 OR excerpt ILIKE $2) AND category = $3",
			wantArgs:   []interface{}{"%ley%", "%reforma%", "legislativo"},
		},
		{
			name:       "published and featured",
			filters:    repository.NewsFilters{Published: &published, Featured: &featured},
			wantClause: "WHERE published = $1 AND featured = $2",
			wantArgs:   []interface{}{false, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := postgres.NewNewsQueryBuilder().BuildWhereClause(tt.filters)
			if clause != tt.wantClause {
				t.Errorf("clause = %q, want %q", clause, tt.wantClause)
			}
			if diff := cmp.Diff(tt.wantArgs, args); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewsQueryBuilder_EscapesWildcards(t *testing.T) {
	_, args := postgres.NewNewsQueryBuilder().BuildWhereClause(repository.NewsFilters{Keywords: []string{"100%"}})
	if len(args) != 1 || args[0] != `%100\%%` {
		t.Errorf("args = %v, want [%%100\\%%%%]", args)
	}
}
