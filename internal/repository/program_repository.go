package repository

import (
	"context"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
)

type ProgramRepository interface {
	// List returns programs ordered by display_order, title. activeOnly filters active = TRUE.
	List(ctx context.Context, activeOnly bool) ([]*entity.Program, error)
	Get(ctx context.Context, id int64) (*entity.Program, error)
	Create(ctx context.Context, program *entity.Program) error
	Update(ctx context.Context, program *entity.Program) error
	Delete(ctx context.Context, id int64) error
}
