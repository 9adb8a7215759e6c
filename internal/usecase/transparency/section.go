package transparency

import (
	"context"
	"fmt"
	"strings"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/pkg/richtext"
	"github.com/mcarbmont89/full-congreso-sub000/internal/pkg/validation"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
	"github.com/mcarbmont89/full-congreso-sub000/internal/utils/text"
)

type SectionInput struct {
	Title        string `json:"title" validate:"required,max=300"`
	Slug         string `json:"slug" validate:"max=320"`
	Description  string `json:"description" validate:"max=2000"`
	Content      string `json:"content"`
	DocumentURL  string `json:"document_url"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
	Active       *bool  `json:"active"`
}

type SectionService struct {
	Repo repository.TransparencySectionRepository
}

func (s *SectionService) List(ctx context.Context) ([]*entity.TransparencySection, error) {
	sections, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transparency sections: %w", err)
	}
	return sections, nil
}

func (s *SectionService) Get(ctx context.Context, id int64) (*entity.TransparencySection, error) {
	sec, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get transparency section: %w", err)
	}
	if sec == nil {
		return nil, ErrSectionNotFound
	}
	return sec, nil
}

// Create stores a section. A duplicate slug surfaces as entity.ErrConflict.
func (s *SectionService) Create(ctx context.Context, in SectionInput) (*entity.TransparencySection, error) {
	sec := &entity.TransparencySection{}
	if err := applySection(sec, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, sec); err != nil {
		return nil, fmt.Errorf("create transparency section: %w", err)
	}
	return sec, nil
}

func (s *SectionService) Update(ctx context.Context, id int64, in SectionInput) (*entity.TransparencySection, error) {
	sec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applySection(sec, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, sec); err != nil {
		return nil, fmt.Errorf("update transparency section: %w", err)
	}
	return sec, nil
}

func (s *SectionService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete transparency section: %w", err)
	}
	return nil
}

func applySection(sec *entity.TransparencySection, in SectionInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if err := validation.Struct(in); err != nil {
		return err
	}
	if err := entity.ValidateMediaURL("document_url", in.DocumentURL); err != nil {
		return err
	}
	slug := text.Slugify(in.Slug)
	if slug == "" {
		slug = text.Slugify(in.Title)
	}
	if slug == "" {
		return &entity.ValidationError{Field: "slug", Message: "slug is required"}
	}
	content, err := richtext.Sanitize(in.Content)
	if err != nil {
		return &entity.ValidationError{Field: "content", Message: "content is invalid HTML"}
	}

	sec.Title = in.Title
	sec.Slug = slug
	sec.Description = strings.TrimSpace(in.Description)
	sec.Content = content
	sec.DocumentURL = strings.TrimSpace(in.DocumentURL)
	sec.DisplayOrder = in.DisplayOrder
	sec.Active = in.Active == nil || *in.Active
	return nil
}
