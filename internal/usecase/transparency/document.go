package transparency

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/mcarbmont89/full-congreso-sub000/internal/common/pagination"
	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/pkg/validation"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
)

type DocumentInput struct {
	Title       string     `json:"title" validate:"required,max=300"`
	Description string     `json:"description" validate:"max=2000"`
	FileURL     string     `json:"file_url" validate:"required"`
	FileType    string     `json:"file_type" validate:"max=20"`
	Category    string     `json:"category" validate:"max=100"`
	FileSize    int64      `json:"file_size" validate:"gte=0"`
	PublishedAt *time.Time `json:"published_at"`
}

type DocumentPage struct {
	Data       []*entity.Document
	Pagination pagination.Metadata
}

type DocumentService struct {
	Repo repository.DocumentRepository
	Now  func() time.Time
}

func (s *DocumentService) List(ctx context.Context, category string, params pagination.Params) (*DocumentPage, error) {
	params = params.Normalize(pagination.DefaultConfig())
	filters := repository.DocumentFilters{Category: strings.TrimSpace(category)}
	total, err := s.Repo.Count(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	items, err := s.Repo.List(ctx, filters, params.Offset(), params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return &DocumentPage{
		Data: items,
		Pagination: pagination.NewMetadata(params, total),
	}, nil
}

func (s *DocumentService) Get(ctx context.Context, id int64) (*entity.Document, error) {
	d, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if d == nil {
		return nil, ErrDocumentNotFound
	}
	return d, nil
}

func (s *DocumentService) Create(ctx context.Context, in DocumentInput) (*entity.Document, error) {
	d := &entity.Document{}
	if err := s.apply(d, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return d, nil
}

func (s *DocumentService) Update(ctx context.Context, id int64, in DocumentInput) (*entity.Document, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(d, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}
	return d, nil
}

func (s *DocumentService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func (s *DocumentService) apply(d *entity.Document, in DocumentInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.FileURL = strings.TrimSpace(in.FileURL)
	if err := validation.Struct(in); err != nil {
		return err
	}
	if err := entity.ValidateMediaURL("file_url", in.FileURL); err != nil {
		return err
	}

	d.Title = in.Title
	d.Description = strings.TrimSpace(in.Description)
	d.FileURL = in.FileURL
	d.FileType = strings.ToLower(strings.TrimSpace(in.FileType))
	if d.FileType == "" {
		d.FileType = extensionOf(in.FileURL)
	}
	d.Category = strings.TrimSpace(in.Category)
	d.FileSize = in.FileSize
	d.PublishedAt = in.PublishedAt
	if d.PublishedAt == nil {
		now := s.now()
		d.PublishedAt = &now
	}
	return nil
}

func (s *DocumentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// extensionOf returns the lowercase extension of a URL path without the dot.
func extensionOf(rawURL string) string {
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		rawURL = rawURL[:i]
	}
	return strings.TrimPrefix(strings.ToLower(path.Ext(rawURL)), ".")
}
