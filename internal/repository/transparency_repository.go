package repository

import (
	"context"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
)

// DocumentFilters narrows document and dataset listings.
type DocumentFilters struct {
	Category string
	// Format only applies to datasets.
	Format string
}

type DefensoriaRepository interface {
	// List returns content ordered by section, display_order. An empty section lists all.
	List(ctx context.Context, section string) ([]*entity.DefensoriaContent, error)
	Get(ctx context.Context, id int64) (*entity.DefensoriaContent, error)
	Create(ctx context.Context, content *entity.DefensoriaContent) error
	Update(ctx context.Context, content *entity.DefensoriaContent) error
	Delete(ctx context.Context, id int64) error
}

type TransparencySectionRepository interface {
	List(ctx context.Context) ([]*entity.TransparencySection, error)
	Get(ctx context.Context, id int64) (*entity.TransparencySection, error)
	Create(ctx context.Context, section *entity.TransparencySection) error
	Update(ctx context.Context, section *entity.TransparencySection) error
	Delete(ctx context.Context, id int64) error
}

type DocumentRepository interface {
	List(ctx context.Context, filters DocumentFilters, offset, limit int) ([]*entity.Document, error)
	Count(ctx context.Context, filters DocumentFilters) (int64, error)
	Get(ctx context.Context, id int64) (*entity.Document, error)
	Create(ctx context.Context, doc *entity.Document) error
	Update(ctx context.Context, doc *entity.Document) error
	Delete(ctx context.Context, id int64) error
}

type DatasetRepository interface {
	List(ctx context.Context, filters DocumentFilters) ([]*entity.Dataset, error)
	Get(ctx context.Context, id int64) (*entity.Dataset, error)
	Create(ctx context.Context, ds *entity.Dataset) error
	Update(ctx context.Context, ds *entity.Dataset) error
	Delete(ctx context.Context, id int64) error
}
