package legislature

import (
	"context"
	"fmt"
	"strings"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/pkg/validation"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
)

type LegislatorInput struct {
	Name                 string `json:"name" validate:"required,max=200"`
	Chamber              string `json:"chamber" validate:"required,oneof=diputados senado"`
	State                string `json:"state" validate:"max=100"`
	District             string `json:"district" validate:"max=100"`
	ParliamentaryGroupID *int64 `json:"parliamentary_group_id" validate:"omitempty,gt=0"`
	PhotoURL             string `json:"photo_url"`
	Email                string `json:"email" validate:"omitempty,email"`
	Biography            string `json:"biography" validate:"max=10000"`
	Active               *bool  `json:"active"`
}

type LegislatorService struct {
	Repo   repository.LegislatorRepository
	Groups repository.ParliamentaryGroupRepository
}

// List filters by chamber, group and state. An unknown chamber is rejected
// instead of silently matching nothing.
func (s *LegislatorService) List(ctx context.Context, filters repository.LegislatorFilters) ([]*entity.Legislator, error) {
	filters.Chamber = strings.ToLower(strings.TrimSpace(filters.Chamber))
	if filters.Chamber != "" && filters.Chamber != entity.ChamberDeputies && filters.Chamber != entity.ChamberSenate {
		return nil, &entity.ValidationError{Field: "chamber", Message: "chamber must be one of diputados, senado"}
	}
	legislators, err := s.Repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list legislators: %w", err)
	}
	return legislators, nil
}

func (s *LegislatorService) Get(ctx context.Context, id int64) (*entity.Legislator, error) {
	l, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get legislator: %w", err)
	}
	if l == nil {
		return nil, ErrLegislatorNotFound
	}
	return l, nil
}

func (s *LegislatorService) Create(ctx context.Context, in LegislatorInput) (*entity.Legislator, error) {
	l := &entity.Legislator{}
	if err := s.apply(ctx, l, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("create legislator: %w", err)
	}
	return l, nil
}

func (s *LegislatorService) Update(ctx context.Context, id int64, in LegislatorInput) (*entity.Legislator, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, l, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("update legislator: %w", err)
	}
	return l, nil
}

func (s *LegislatorService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete legislator: %w", err)
	}
	return nil
}

func (s *LegislatorService) apply(ctx context.Context, l *entity.Legislator, in LegislatorInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Chamber = strings.ToLower(strings.TrimSpace(in.Chamber))
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Struct(in); err != nil {
		return err
	}
	if err := entity.ValidateMediaURL("photo_url", in.PhotoURL); err != nil {
		return err
	}
	if in.ParliamentaryGroupID != nil && s.Groups != nil {
		g, err := s.Groups.Get(ctx, *in.ParliamentaryGroupID)
		if err != nil {
			return fmt.Errorf("check parliamentary group: %w", err)
		}
		if g == nil {
			return &entity.ValidationError{Field: "parliamentary_group_id", Message: "invalid parliamentary_group_id"}
		}
	}

	l.Name = in.Name
	l.Chamber = in.Chamber
	l.State = strings.TrimSpace(in.State)
	l.District = strings.TrimSpace(in.District)
	l.ParliamentaryGroupID = in.ParliamentaryGroupID
	l.PhotoURL = strings.TrimSpace(in.PhotoURL)
	l.Email = in.Email
	l.Biography = strings.TrimSpace(in.Biography)
	l.Active = in.Active == nil || *in.Active
	return nil
}
