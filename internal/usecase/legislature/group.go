package legislature

import (
	"context"
	"fmt"
	"strings"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/pkg/validation"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
)

type GroupInput struct {
	Name         string `json:"name" validate:"required,max=200"`
	Abbreviation string `json:"abbreviation" validate:"max=20"`
	LogoURL      string `json:"logo_url"`
	Color        string `json:"color" validate:"omitempty,hexcolor"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
}

type GroupService struct {
	Repo repository.ParliamentaryGroupRepository
}

func (s *GroupService) List(ctx context.Context) ([]*entity.ParliamentaryGroup, error) {
	groups, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list parliamentary groups: %w", err)
	}
	return groups, nil
}

func (s *GroupService) Get(ctx context.Context, id int64) (*entity.ParliamentaryGroup, error) {
	g, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get parliamentary group: %w", err)
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	return g, nil
}

func (s *GroupService) Create(ctx context.Context, in GroupInput) (*entity.ParliamentaryGroup, error) {
	g := &entity.ParliamentaryGroup{}
	if err := applyGroup(g, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("create parliamentary group: %w", err)
	}
	return g, nil
}

func (s *GroupService) Update(ctx context.Context, id int64, in GroupInput) (*entity.ParliamentaryGroup, error) {
	g, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyGroup(g, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, g); err != nil {
		return nil, fmt.Errorf("update parliamentary group: %w", err)
	}
	return g, nil
}

// Delete leaves members without a group (ON DELETE SET NULL).
func (s *GroupService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete parliamentary group: %w", err)
	}
	return nil
}

func applyGroup(g *entity.ParliamentaryGroup, in GroupInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return err
	}
	if err := entity.ValidateMediaURL("logo_url", in.LogoURL); err != nil {
		return err
	}
	g.Name = in.Name
	g.Abbreviation = strings.ToUpper(strings.TrimSpace(in.Abbreviation))
	g.LogoURL = strings.TrimSpace(in.LogoURL)
	g.Color = strings.ToLower(in.Color)
	g.DisplayOrder = in.DisplayOrder
	return nil
}
