package livestream

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/observability/metrics"
	"github.com/mcarbmont89/full-congreso-sub000/internal/pkg/validation"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
)

// StatusNotifier is told about every status change. It must not block.
type StatusNotifier interface {
	NotifyStatusChange(ctx context.Context, change entity.StatusChange) error
}

// Input is the create/update body.
type Input struct {
	Title        string `json:"title" validate:"required,max=200"`
	Description  string `json:"description" validate:"max=2000"`
	StreamURL    string `json:"stream_url" validate:"required"`
	ThumbnailURL string `json:"thumbnail_url"`
	Channel      string `json:"channel" validate:"max=50"`
	Status       string `json:"status"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
}

// ListInput holds the list query string.
type ListInput struct {
	// Public keeps only statuses shown on the public transmissions page.
	Public bool
	Status string
}

type Service struct {
	Repo repository.LiveStreamRepository
	// Notifier may be nil.
	Notifier StatusNotifier
}

func (s *Service) List(ctx context.Context, in ListInput) ([]*entity.LiveStream, error) {
	var statuses []entity.StreamStatus
	if in.Public {
		statuses = entity.PublicStreamStatuses()
	}
	if strings.TrimSpace(in.Status) != "" {
		status, err := entity.ParseStreamStatus(in.Status)
		if err != nil {
			return nil, err
		}
		if in.Public && !status.IsPublic() {
			return []*entity.LiveStream{}, nil
		}
		statuses = []entity.StreamStatus{status}
	}

	streams, err := s.Repo.List(ctx, repository.LiveStreamFilters{Statuses: statuses})
	if err != nil {
		return nil, fmt.Errorf("list live streams: %w", err)
	}
	return streams, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*entity.LiveStream, error) {
	stream, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get live stream: %w", err)
	}
	if stream == nil {
		return nil, ErrStreamNotFound
	}
	return stream, nil
}

func (s *Service) Create(ctx context.Context, in Input) (*entity.LiveStream, error) {
	stream := &entity.LiveStream{}
	if err := apply(stream, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, stream); err != nil {
		return nil, fmt.Errorf("create live stream: %w", err)
	}
	return stream, nil
}

// Update replaces every field, status included. A status change made here
// is notified like one made through UpdateStatus.
func (s *Service) Update(ctx context.Context, id int64, in Input) (*entity.LiveStream, error) {
	stream, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := stream.Status
	if err := apply(stream, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, stream); err != nil {
		return nil, fmt.Errorf("update live stream: %w", err)
	}
	s.notify(ctx, entity.StatusChange{Stream: stream, Previous: previous, Current: stream.Status})
	return stream, nil
}

// UpdateStatus moves a stream to any status. Every transition is allowed.
func (s *Service) UpdateStatus(ctx context.Context, id int64, raw string) (*entity.LiveStream, error) {
	status, err := entity.ParseStreamStatus(raw)
	if err != nil {
		return nil, err
	}

	previous, err := s.Repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("update live stream status: %w", err)
	}

	stream, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, entity.StatusChange{Stream: stream, Previous: previous, Current: status})
	return stream, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete live stream: %w", err)
	}
	return nil
}

func (s *Service) notify(ctx context.Context, change entity.StatusChange) {
	if !change.Changed() {
		return
	}
	metrics.RecordStreamStatusChange(string(change.Current))
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.NotifyStatusChange(ctx, change); err != nil {
		slog.Warn("status notification not dispatched",
			slog.Int64("stream_id", change.Stream.ID),
			slog.Any("error", err))
	}
}

func apply(stream *entity.LiveStream, in Input) error {
	in.Title = strings.TrimSpace(in.Title)
	in.StreamURL = strings.TrimSpace(in.StreamURL)
	if err := validation.Struct(in); err != nil {
		return err
	}
	if err := entity.ValidateMediaURL("stream_url", in.StreamURL); err != nil {
		return err
	}
	if err := entity.ValidateMediaURL("thumbnail_url", in.ThumbnailURL); err != nil {
		return err
	}

	// An omitted status keeps the current one; new streams start offline.
	status := stream.Status
	if status == "" {
		status = entity.StreamStatusOffline
	}
	if strings.TrimSpace(in.Status) != "" {
		parsed, err := entity.ParseStreamStatus(in.Status)
		if err != nil {
			return err
		}
		status = parsed
	}

	stream.Title = in.Title
	stream.Description = strings.TrimSpace(in.Description)
	stream.StreamURL = in.StreamURL
	stream.ThumbnailURL = strings.TrimSpace(in.ThumbnailURL)
	stream.Channel = strings.TrimSpace(in.Channel)
	stream.Status = status
	stream.DisplayOrder = in.DisplayOrder
	return nil
}
