package repository

import (
	"context"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
)

type HomepageConfigRepository interface {
	// Get returns (nil, nil) when the row has never been saved.
	Get(ctx context.Context) (*entity.HomepageConfig, error)
	// Upsert writes the single configuration row.
	Upsert(ctx context.Context, cfg *entity.HomepageConfig) error
}
