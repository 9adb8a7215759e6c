// Package program provides use cases for the TV programming grid.
package program

import (
	"context"
	"fmt"
	"strings"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/pkg/validation"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
)

var ErrProgramNotFound = fmt.Errorf("program %w", entity.ErrNotFound)

// Input is the create/update body. Active defaults to true when omitted.
type Input struct {
	Title        string `json:"title" validate:"required,max=200"`
	Description  string `json:"description" validate:"max=5000"`
	ImageURL     string `json:"image_url"`
	Host         string `json:"host" validate:"max=200"`
	Schedule     string `json:"schedule" validate:"max=200"`
	Category     string `json:"category" validate:"max=100"`
	Active       *bool  `json:"active"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
}

type Service struct {
	Repo repository.ProgramRepository
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]*entity.Program, error) {
	programs, err := s.Repo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	return programs, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*entity.Program, error) {
	p, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get program: %w", err)
	}
	if p == nil {
		return nil, ErrProgramNotFound
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, in Input) (*entity.Program, error) {
	p := &entity.Program{}
	if err := apply(p, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create program: %w", err)
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (*entity.Program, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(p, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update program: %w", err)
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete program: %w", err)
	}
	return nil
}

func apply(p *entity.Program, in Input) error {
	in.Title = strings.TrimSpace(in.Title)
	if err := validation.Struct(in); err != nil {
		return err
	}
	if err := entity.ValidateMediaURL("image_url", in.ImageURL); err != nil {
		return err
	}
	p.Title = in.Title
	p.Description = strings.TrimSpace(in.Description)
	p.ImageURL = strings.TrimSpace(in.ImageURL)
	p.Host = strings.TrimSpace(in.Host)
	p.Schedule = strings.TrimSpace(in.Schedule)
	p.Category = strings.TrimSpace(in.Category)
	p.Active = in.Active == nil || *in.Active
	p.DisplayOrder = in.DisplayOrder
	return nil
}
