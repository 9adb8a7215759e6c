package transparency

import (
	"context"
	"fmt"
	"strings"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/pkg/richtext"
	"github.com/mcarbmont89/full-congreso-sub000/internal/pkg/validation"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
)

const defaultDefensoriaSection = "general"

type DefensoriaInput struct {
	Section      string `json:"section"`
	Title        string `json:"title" validate:"required,max=300"`
	Content      string `json:"content"`
	DocumentURL  string `json:"document_url"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
	Active       *bool  `json:"active"`
}

type DefensoriaService struct {
	Repo repository.DefensoriaRepository
}

// List returns every block, or those of one section.
func (s *DefensoriaService) List(ctx context.Context, section string) ([]*entity.DefensoriaContent, error) {
	section = strings.ToLower(strings.TrimSpace(section))
	if section != "" {
		if err := oneOf("section", section, entity.DefensoriaSections); err != nil {
			return nil, err
		}
	}
	items, err := s.Repo.List(ctx, section)
	if err != nil {
		return nil, fmt.Errorf("list defensoria content: %w", err)
	}
	return items, nil
}

func (s *DefensoriaService) Get(ctx context.Context, id int64) (*entity.DefensoriaContent, error) {
	c, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get defensoria content: %w", err)
	}
	if c == nil {
		return nil, ErrDefensoriaNotFound
	}
	return c, nil
}

func (s *DefensoriaService) Create(ctx context.Context, in DefensoriaInput) (*entity.DefensoriaContent, error) {
	c := &entity.DefensoriaContent{}
	if err := applyDefensoria(c, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create defensoria content: %w", err)
	}
	return c, nil
}

func (s *DefensoriaService) Update(ctx context.Context, id int64, in DefensoriaInput) (*entity.DefensoriaContent, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyDefensoria(c, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update defensoria content: %w", err)
	}
	return c, nil
}

func (s *DefensoriaService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete defensoria content: %w", err)
	}
	return nil
}

func applyDefensoria(c *entity.DefensoriaContent, in DefensoriaInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Section = strings.ToLower(strings.TrimSpace(in.Section))
	if in.Section == "" {
		in.Section = defaultDefensoriaSection
	}
	if err := oneOf("section", in.Section, entity.DefensoriaSections); err != nil {
		return err
	}
	if err := validation.Struct(in); err != nil {
		return err
	}
	if err := entity.ValidateMediaURL("document_url", in.DocumentURL); err != nil {
		return err
	}
	content, err := richtext.Sanitize(in.Content)
	if err != nil {
		return &entity.ValidationError{Field: "content", Message: "content is invalid HTML"}
	}

	c.Section = in.Section
	c.Title = in.Title
	c.Content = content
	c.DocumentURL = strings.TrimSpace(in.DocumentURL)
	c.DisplayOrder = in.DisplayOrder
	c.Active = in.Active == nil || *in.Active
	return nil
}
