package newsfeed

import (
	"context"
	"fmt"
	"strings"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/pkg/validation"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
)

type Input struct {
	Name     string `json:"name" validate:"required,max=200"`
	FeedURL  string `json:"feed_url" validate:"required"`
	Category string `json:"category" validate:"max=100"`
	Active   *bool  `json:"active"`
}

// Service provides news feed CRUD.
type Service struct {
	Repo repository.NewsFeedRepository
}

func (s *Service) List(ctx context.Context) ([]*entity.NewsFeed, error) {
	feeds, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list news feeds: %w", err)
	}
	return feeds, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*entity.NewsFeed, error) {
	feed, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get news feed: %w", err)
	}
	if feed == nil {
		return nil, ErrFeedNotFound
	}
	return feed, nil
}

func (s *Service) Create(ctx context.Context, in Input) (*entity.NewsFeed, error) {
	feed := &entity.NewsFeed{}
	if err := apply(feed, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, feed); err != nil {
		return nil, fmt.Errorf("create news feed: %w", err)
	}
	return feed, nil
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (*entity.NewsFeed, error) {
	feed, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(feed, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, feed); err != nil {
		return nil, fmt.Errorf("update news feed: %w", err)
	}
	return feed, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete news feed: %w", err)
	}
	return nil
}

// apply validates the feed URL as one the server will fetch: http(s) only and
// never a private network address.
func apply(feed *entity.NewsFeed, in Input) error {
	in.Name = strings.TrimSpace(in.Name)
	in.FeedURL = strings.TrimSpace(in.FeedURL)
	if err := validation.Struct(in); err != nil {
		return err
	}
	if err := entity.ValidateURL("feed_url", in.FeedURL); err != nil {
		return err
	}
	feed.Name = in.Name
	feed.FeedURL = in.FeedURL
	feed.Category = strings.TrimSpace(in.Category)
	feed.Active = in.Active == nil || *in.Active
	return nil
}
