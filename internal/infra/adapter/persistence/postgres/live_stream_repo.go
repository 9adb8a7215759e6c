package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
)

const liveStreamColumns = `id, title, description, stream_url, thumbnail_url, channel,
status, display_order, created_at, updated_at`

type LiveStreamRepo struct {
	db DBTX
}

func NewLiveStreamRepo(db DBTX) repository.LiveStreamRepository {
	return &LiveStreamRepo{db: db}
}

func scanLiveStream(row rowScanner) (*entity.LiveStream, error) {
	var s entity.LiveStream
	var status string
	if err := row.Scan(&s.ID, &s.Title, &s.Description, &s.StreamURL, &s.ThumbnailURL,
		&s.Channel, &status, &s.DisplayOrder, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Status = entity.StreamStatus(status)
	return &s, nil
}

func (repo *LiveStreamRepo) List(ctx context.Context, filters repository.LiveStreamFilters) ([]*entity.LiveStream, error) {
	var where whereBuilder
	if len(filters.Statuses) > 0 {
		args := make([]string, 0, len(filters.Statuses))
		for _, st := range filters.Statuses {
			args = append(args, string(st))
		}
		where.addRaw(fmt.Sprintf("status IN (%s)", placeholders(where.next(), len(args))))
		for _, a := range args {
			where.args = append(where.args, a)
		}
	}

	query := fmt.Sprintf(`
SELECT %s
FROM live_streams
%s
ORDER BY display_order ASC, id ASC`, liveStreamColumns, where.clause())

	rows, err := repo.db.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	streams := make([]*entity.LiveStream, 0, 10)
	for rows.Next() {
		s, err := scanLiveStream(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		streams = append(streams, s)
	}
	return streams, rows.Err()
}

func (repo *LiveStreamRepo) Get(ctx context.Context, id int64) (*entity.LiveStream, error) {
	query := `SELECT ` + liveStreamColumns + ` FROM live_streams WHERE id = $1 LIMIT 1`
	s, err := scanLiveStream(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return s, nil
}

func (repo *LiveStreamRepo) Create(ctx context.Context, s *entity.LiveStream) error {
	const query = `
INSERT INTO live_streams (title, description, stream_url, thumbnail_url, channel, status, display_order)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		s.Title, s.Description, s.StreamURL, s.ThumbnailURL, s.Channel, string(s.Status), s.DisplayOrder,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return mapError("Create", err)
}

func (repo *LiveStreamRepo) Update(ctx context.Context, s *entity.LiveStream) error {
	const query = `
UPDATE live_streams
SET title = $1, description = $2, stream_url = $3, thumbnail_url = $4,
    channel = $5, status = $6, display_order = $7, updated_at = NOW()
WHERE id = $8
RETURNING updated_at`
	row := repo.db.QueryRowContext(ctx, query,
		s.Title, s.Description, s.StreamURL, s.ThumbnailURL, s.Channel, string(s.Status), s.DisplayOrder, s.ID)
	var updatedAt time.Time
	if err := scanUpdated(row, "Update", &updatedAt); err != nil {
		return err
	}
	s.UpdatedAt = updatedAt
	return nil
}

// UpdateStatus swaps the status column and returns the value it replaced,
// read under the same row lock.
func (repo *LiveStreamRepo) UpdateStatus(ctx context.Context, id int64, status entity.StreamStatus) (entity.StreamStatus, error) {
	const query = `
UPDATE live_streams AS ls
SET status = $1, updated_at = NOW()
FROM (SELECT id, status FROM live_streams WHERE id = $2 FOR UPDATE) AS prev
WHERE ls.id = prev.id
RETURNING prev.status`
	var previous string
	err := repo.db.QueryRowContext(ctx, query, string(status), id).Scan(&previous)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("UpdateStatus: %w", entity.ErrNotFound)
	}
	if err != nil {
		return "", mapError("UpdateStatus", err)
	}
	return entity.StreamStatus(previous), nil
}

func (repo *LiveStreamRepo) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, repo.db, "Delete", `DELETE FROM live_streams WHERE id = $1`, id)
}
