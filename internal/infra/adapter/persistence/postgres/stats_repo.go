package postgres

import (
	"context"
	"fmt"

	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
)

// ContentTables lists the tables reported by CountByTable.
var ContentTables = []string{
	"news", "live_streams", "programs", "radio_programs", "radio_episodes",
	"legislators", "documents", "datasets", "news_feeds",
}

type ContentStatsRepo struct {
	db DBTX
}

func NewContentStatsRepo(db DBTX) repository.ContentStatsRepository {
	return &ContentStatsRepo{db: db}
}

// CountByTable counts rows of every content table in a single round trip.
func (repo *ContentStatsRepo) CountByTable(ctx context.Context) (map[string]int64, error) {
	parts := make([]string, len(ContentTables))
	for i, t := range ContentTables {
		// Table names come from the fixed list above.
		parts[i] = fmt.Sprintf("SELECT '%s' AS name, COUNT(*) FROM %s", t, t)
	}
	query := parts[0]
	for _, p := range parts[1:] {
		query += "\nUNION ALL " + p
	}

	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("CountByTable: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int64, len(ContentTables))
	for rows.Next() {
		var name string
		var n int64
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("CountByTable: Scan: %w", err)
		}
		counts[name] = n
	}
	return counts, rows.Err()
}
