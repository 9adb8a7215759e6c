package transparency

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/pkg/validation"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
)

type DatasetInput struct {
	Title       string     `json:"title" validate:"required,max=300"`
	Description string     `json:"description" validate:"max=2000"`
	FileURL     string     `json:"file_url" validate:"required"`
	Format      string     `json:"format"`
	Category    string     `json:"category" validate:"max=100"`
	FileSize    int64      `json:"file_size" validate:"gte=0"`
	LastUpdated *time.Time `json:"last_updated"`
}

type DatasetService struct {
	Repo repository.DatasetRepository
	Now  func() time.Time
}

func (s *DatasetService) List(ctx context.Context, category, format string) ([]*entity.Dataset, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != "" {
		if err := oneOf("format", format, entity.DatasetFormats); err != nil {
			return nil, err
		}
	}
	items, err := s.Repo.List(ctx, repository.DocumentFilters{Category: strings.TrimSpace(category), Format: format})
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	return items, nil
}

func (s *DatasetService) Get(ctx context.Context, id int64) (*entity.Dataset, error) {
	d, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get dataset: %w", err)
	}
	if d == nil {
		return nil, ErrDatasetNotFound
	}
	return d, nil
}

func (s *DatasetService) Create(ctx context.Context, in DatasetInput) (*entity.Dataset, error) {
	d := &entity.Dataset{}
	if err := s.apply(d, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create dataset: %w", err)
	}
	return d, nil
}

func (s *DatasetService) Update(ctx context.Context, id int64, in DatasetInput) (*entity.Dataset, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(d, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("update dataset: %w", err)
	}
	return d, nil
}

func (s *DatasetService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete dataset: %w", err)
	}
	return nil
}

// apply infers the format from the file extension when none is given and
// stamps last_updated with the current time unless the client set it.
func (s *DatasetService) apply(d *entity.Dataset, in DatasetInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.FileURL = strings.TrimSpace(in.FileURL)
	if err := validation.Struct(in); err != nil {
		return err
	}
	if err := entity.ValidateMediaURL("file_url", in.FileURL); err != nil {
		return err
	}
	format := strings.ToLower(strings.TrimSpace(in.Format))
	if format == "" {
		format = extensionOf(in.FileURL)
	}
	if err := oneOf("format", format, entity.DatasetFormats); err != nil {
		return err
	}

	d.Title = in.Title
	d.Description = strings.TrimSpace(in.Description)
	d.FileURL = in.FileURL
	d.Format = format
	d.Category = strings.TrimSpace(in.Category)
	d.FileSize = in.FileSize
	d.LastUpdated = in.LastUpdated
	if d.LastUpdated == nil {
		now := time.Now()
		if s.Now != nil {
			now = s.Now()
		}
		d.LastUpdated = &now
	}
	return nil
}
