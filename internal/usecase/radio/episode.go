package radio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mcarbmont89/full-congreso-sub000/internal/common/pagination"
	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/pkg/validation"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
)

type EpisodeInput struct {
	ProgramID       int64      `json:"program_id" validate:"required,gt=0"`
	Title           string     `json:"title" validate:"required,max=200"`
	Description     string     `json:"description" validate:"max=5000"`
	AudioURL        string     `json:"audio_url" validate:"required"`
	DurationSeconds int        `json:"duration_seconds" validate:"gte=0"`
	EpisodeNumber   int        `json:"episode_number" validate:"gte=0"`
	PublishedAt     *time.Time `json:"published_at"`
}

// EpisodePage is one page of episodes.
type EpisodePage struct {
	Data       []*entity.RadioEpisode
	Pagination pagination.Metadata
}

type EpisodeService struct {
	Repo     repository.RadioEpisodeRepository
	Programs repository.RadioProgramRepository
	Now      func() time.Time
}

// List pages through episodes, optionally of a single program.
func (s *EpisodeService) List(ctx context.Context, programID *int64, params pagination.Params) (*EpisodePage, error) {
	params = params.Normalize(pagination.DefaultConfig())
	total, err := s.Repo.Count(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("count radio episodes: %w", err)
	}
	items, err := s.Repo.List(ctx, programID, params.Offset(), params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list radio episodes: %w", err)
	}
	return &EpisodePage{
		Data: items,
		Pagination: pagination.NewMetadata(params, total),
	}, nil
}

func (s *EpisodeService) Get(ctx context.Context, id int64) (*entity.RadioEpisode, error) {
	e, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get radio episode: %w", err)
	}
	if e == nil {
		return nil, ErrEpisodeNotFound
	}
	return e, nil
}

func (s *EpisodeService) Create(ctx context.Context, in EpisodeInput) (*entity.RadioEpisode, error) {
	e := &entity.RadioEpisode{}
	if err := s.apply(ctx, e, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create radio episode: %w", err)
	}
	return e, nil
}

func (s *EpisodeService) Update(ctx context.Context, id int64, in EpisodeInput) (*entity.RadioEpisode, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, e, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("update radio episode: %w", err)
	}
	return e, nil
}

func (s *EpisodeService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete radio episode: %w", err)
	}
	return nil
}

func (s *EpisodeService) apply(ctx context.Context, e *entity.RadioEpisode, in EpisodeInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.AudioURL = strings.TrimSpace(in.AudioURL)
	if in.ProgramID <= 0 {
		return &entity.ValidationError{Field: "program_id", Message: "invalid program_id"}
	}
	if err := validation.Struct(in); err != nil {
		return err
	}
	if err := entity.ValidateMediaURL("audio_url", in.AudioURL); err != nil {
		return err
	}

	p, err := s.Programs.Get(ctx, in.ProgramID)
	if err != nil {
		return fmt.Errorf("check radio program: %w", err)
	}
	if p == nil {
		return &entity.ValidationError{Field: "program_id", Message: "invalid program_id"}
	}

	e.ProgramID = in.ProgramID
	e.Title = in.Title
	e.Description = strings.TrimSpace(in.Description)
	e.AudioURL = in.AudioURL
	e.DurationSeconds = in.DurationSeconds
	e.EpisodeNumber = in.EpisodeNumber
	e.PublishedAt = in.PublishedAt
	if e.PublishedAt == nil {
		now := time.Now()
		if s.Now != nil {
			now = s.Now()
		}
		e.PublishedAt = &now
	}
	return nil
}
