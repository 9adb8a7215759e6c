package repository

import "context"

// ContentStatsRepository reports row counts per content table for the
// worker's content gauges.
type ContentStatsRepository interface {
	CountByTable(ctx context.Context) (map[string]int64, error)
}
