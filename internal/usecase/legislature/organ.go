package legislature

import (
	"context"
	"fmt"
	"strings"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/pkg/validation"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
)

type OrganInput struct {
	Name         string `json:"name" validate:"required,max=200"`
	Description  string `json:"description" validate:"max=5000"`
	OrganType    string `json:"organ_type" validate:"max=100"`
	ImageURL     string `json:"image_url"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
}

type OrganService struct {
	Repo repository.OrganRepository
}

func (s *OrganService) List(ctx context.Context) ([]*entity.Organ, error) {
	organs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list organs: %w", err)
	}
	return organs, nil
}

func (s *OrganService) Get(ctx context.Context, id int64) (*entity.Organ, error) {
	o, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get organ: %w", err)
	}
	if o == nil {
		return nil, ErrOrganNotFound
	}
	return o, nil
}

func (s *OrganService) Create(ctx context.Context, in OrganInput) (*entity.Organ, error) {
	o := &entity.Organ{}
	if err := applyOrgan(o, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create organ: %w", err)
	}
	return o, nil
}

func (s *OrganService) Update(ctx context.Context, id int64, in OrganInput) (*entity.Organ, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyOrgan(o, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("update organ: %w", err)
	}
	return o, nil
}

func (s *OrganService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete organ: %w", err)
	}
	return nil
}

func applyOrgan(o *entity.Organ, in OrganInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return err
	}
	if err := entity.ValidateMediaURL("image_url", in.ImageURL); err != nil {
		return err
	}
	o.Name = in.Name
	o.Description = strings.TrimSpace(in.Description)
	o.OrganType = strings.TrimSpace(in.OrganType)
	o.ImageURL = strings.TrimSpace(in.ImageURL)
	o.DisplayOrder = in.DisplayOrder
	return nil
}
