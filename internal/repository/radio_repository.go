package repository

import (
	"context"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
)

// RadioProgramFilters narrows radio program listings.
type RadioProgramFilters struct {
	CategoryID *int64
	ActiveOnly bool
}

type RadioCategoryRepository interface {
	List(ctx context.Context) ([]*entity.RadioCategory, error)
	Get(ctx context.Context, id int64) (*entity.RadioCategory, error)
	Create(ctx context.Context, category *entity.RadioCategory) error
	Update(ctx context.Context, category *entity.RadioCategory) error
	Delete(ctx context.Context, id int64) error
}

type RadioProgramRepository interface {
	List(ctx context.Context, filters RadioProgramFilters) ([]*entity.RadioProgram, error)
	Get(ctx context.Context, id int64) (*entity.RadioProgram, error)
	Create(ctx context.Context, program *entity.RadioProgram) error
	Update(ctx context.Context, program *entity.RadioProgram) error
	Delete(ctx context.Context, id int64) error
}

type RadioEpisodeRepository interface {
	// List returns episodes newest first. A nil programID lists every program.
	List(ctx context.Context, programID *int64, offset, limit int) ([]*entity.RadioEpisode, error)
	Count(ctx context.Context, programID *int64) (int64, error)
	Get(ctx context.Context, id int64) (*entity.RadioEpisode, error)
	Create(ctx context.Context, episode *entity.RadioEpisode) error
	Update(ctx context.Context, episode *entity.RadioEpisode) error
	Delete(ctx context.Context, id int64) error
}
