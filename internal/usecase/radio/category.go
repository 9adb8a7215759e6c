package radio

import (
	"context"
	"fmt"
	"strings"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/pkg/validation"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
	"github.com/mcarbmont89/full-congreso-sub000/internal/utils/text"
)

type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"max=120"`
	Description string `json:"description" validate:"max=1000"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
}

type CategoryService struct {
	Repo repository.RadioCategoryRepository
}

func (s *CategoryService) List(ctx context.Context) ([]*entity.RadioCategory, error) {
	cats, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list radio categories: %w", err)
	}
	return cats, nil
}

func (s *CategoryService) Get(ctx context.Context, id int64) (*entity.RadioCategory, error) {
	c, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get radio category: %w", err)
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*entity.RadioCategory, error) {
	c := &entity.RadioCategory{}
	if err := applyCategory(c, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create radio category: %w", err)
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, in CategoryInput) (*entity.RadioCategory, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyCategory(c, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update radio category: %w", err)
	}
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete radio category: %w", err)
	}
	return nil
}

// applyCategory derives the slug from the name when none is given.
func applyCategory(c *entity.RadioCategory, in CategoryInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return err
	}
	slug := text.Slugify(in.Slug)
	if slug == "" {
		slug = text.Slugify(in.Name)
	}
	if slug == "" {
		return &entity.ValidationError{Field: "slug", Message: "slug is required"}
	}
	c.Name = in.Name
	c.Slug = slug
	c.Description = strings.TrimSpace(in.Description)
	c.Color = strings.ToLower(in.Color)
	return nil
}
