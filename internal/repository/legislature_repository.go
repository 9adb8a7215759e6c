package repository

import (
	"context"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
)

// LegislatorFilters narrows legislator listings. Zero values are not applied.
type LegislatorFilters struct {
	Chamber string
	GroupID *int64
	State   string
}

type OrganRepository interface {
	List(ctx context.Context) ([]*entity.Organ, error)
	Get(ctx context.Context, id int64) (*entity.Organ, error)
	Create(ctx context.Context, organ *entity.Organ) error
	Update(ctx context.Context, organ *entity.Organ) error
	Delete(ctx context.Context, id int64) error
}

type ParliamentaryGroupRepository interface {
	List(ctx context.Context) ([]*entity.ParliamentaryGroup, error)
	Get(ctx context.Context, id int64) (*entity.ParliamentaryGroup, error)
	Create(ctx context.Context, group *entity.ParliamentaryGroup) error
	Update(ctx context.Context, group *entity.ParliamentaryGroup) error
	Delete(ctx context.Context, id int64) error
}

type LegislatorRepository interface {
	List(ctx context.Context, filters LegislatorFilters) ([]*entity.Legislator, error)
	Get(ctx context.Context, id int64) (*entity.Legislator, error)
	Create(ctx context.Context, legislator *entity.Legislator) error
	Update(ctx context.Context, legislator *entity.Legislator) error
	Delete(ctx context.Context, id int64) error
}
