package radio

import (
	"context"
	"fmt"
	"strings"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/pkg/validation"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
)

type ProgramInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Host        string `json:"host" validate:"max=200"`
	Schedule    string `json:"schedule" validate:"max=200"`
	ImageURL    string `json:"image_url"`
	CategoryID  *int64 `json:"category_id" validate:"omitempty,gt=0"`
	Active      *bool  `json:"active"`
}

type ProgramService struct {
	Repo       repository.RadioProgramRepository
	Categories repository.RadioCategoryRepository
}

func (s *ProgramService) List(ctx context.Context, filters repository.RadioProgramFilters) ([]*entity.RadioProgram, error) {
	programs, err := s.Repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list radio programs: %w", err)
	}
	return programs, nil
}

func (s *ProgramService) Get(ctx context.Context, id int64) (*entity.RadioProgram, error) {
	p, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get radio program: %w", err)
	}
	if p == nil {
		return nil, ErrProgramNotFound
	}
	return p, nil
}

func (s *ProgramService) Create(ctx context.Context, in ProgramInput) (*entity.RadioProgram, error) {
	p := &entity.RadioProgram{}
	if err := s.apply(ctx, p, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create radio program: %w", err)
	}
	return p, nil
}

func (s *ProgramService) Update(ctx context.Context, id int64, in ProgramInput) (*entity.RadioProgram, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, p, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update radio program: %w", err)
	}
	return p, nil
}

// Delete also removes the program's episodes (ON DELETE CASCADE).
func (s *ProgramService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete radio program: %w", err)
	}
	return nil
}

func (s *ProgramService) apply(ctx context.Context, p *entity.RadioProgram, in ProgramInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if err := validation.Struct(in); err != nil {
		return err
	}
	if err := entity.ValidateMediaURL("image_url", in.ImageURL); err != nil {
		return err
	}
	if in.CategoryID != nil && s.Categories != nil {
		c, err := s.Categories.Get(ctx, *in.CategoryID)
		if err != nil {
			return fmt.Errorf("check radio category: %w", err)
		}
		if c == nil {
			return &entity.ValidationError{Field: "category_id", Message: "invalid category_id"}
		}
	}
	p.Title = in.Title
	p.Description = strings.TrimSpace(in.Description)
	p.Host = strings.TrimSpace(in.Host)
	p.Schedule = strings.TrimSpace(in.Schedule)
	p.ImageURL = strings.TrimSpace(in.ImageURL)
	p.CategoryID = in.CategoryID
	p.Active = in.Active == nil || *in.Active
	return nil
}
