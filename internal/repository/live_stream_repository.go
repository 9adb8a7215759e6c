package repository

import (
	"context"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
)

// LiveStreamFilters narrows stream listings. An empty Statuses slice means all.
type LiveStreamFilters struct {
	Statuses []entity.StreamStatus
}

type LiveStreamRepository interface {
	// List returns streams ordered by display_order, id.
	List(ctx context.Context, filters LiveStreamFilters) ([]*entity.LiveStream, error)
	Get(ctx context.Context, id int64) (*entity.LiveStream, error)
	Create(ctx context.Context, stream *entity.LiveStream) error
	Update(ctx context.Context, stream *entity.LiveStream) error
	// UpdateStatus sets the status column and returns the previous status.
	UpdateStatus(ctx context.Context, id int64, status entity.StreamStatus) (entity.StreamStatus, error)
	Delete(ctx context.Context, id int64) error
}
