package news

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mcarbmont89/full-congreso-sub000/internal/common/pagination"
	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/pkg/richtext"
	"github.com/mcarbmont89/full-congreso-sub000/internal/pkg/search"
	"github.com/mcarbmont89/full-congreso-sub000/internal/pkg/validation"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
	"github.com/mcarbmont89/full-congreso-sub000/internal/utils/text"
)

// maxSlugAttempts bounds the "-2", "-3", ... suffixes tried for derived slugs.
const maxSlugAttempts = 50

// Input is the body accepted by create and update. Update replaces every field.
type Input struct {
	Title       string     `json:"title" validate:"required,max=300"`
	Slug        string     `json:"slug" validate:"omitempty,max=320"`
	Excerpt     string     `json:"excerpt" validate:"max=1000"`
	Content     string     `json:"content"`
	ImageURL    string     `json:"image_url"`
	Category    string     `json:"category" validate:"max=100"`
	Author      string     `json:"author" validate:"max=200"`
	Published   bool       `json:"published"`
	Featured    bool       `json:"featured"`
	SourceURL   *string    `json:"source_url"`
	PublishedAt *time.Time `json:"published_at"`
}

// ListInput holds the query string filters of the news list.
type ListInput struct {
	Category  string
	Published *bool
	Featured  *bool
	Query     string
}

// PaginatedResult represents the result of a paginated query.
type PaginatedResult struct {
	Data       []*entity.News
	Pagination pagination.Metadata
}

// Service provides news use cases.
type Service struct {
	Repo repository.NewsRepository
	// Now is overridable in tests.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// List returns one page of news matching in.
func (s *Service) List(ctx context.Context, in ListInput, params pagination.Params) (*PaginatedResult, error) {
	params = params.Normalize(pagination.DefaultConfig())
	filters := repository.NewsFilters{
		Category:  in.Category,
		Published: in.Published,
		Featured:  in.Featured,
	}
	if q := strings.TrimSpace(in.Query); q != "" {
		keywords, err := search.ParseKeywords(q, search.DefaultMaxKeywordCount, search.DefaultMaxKeywordLength)
		if err != nil {
			return nil, &entity.ValidationError{Field: "q", Message: err.Error()}
		}
		filters.Keywords = keywords
	}

	offset := params.Offset()

	total, err := s.Repo.Count(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("count news: %w", err)
	}

	items, err := s.Repo.List(ctx, filters, offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}

	return &PaginatedResult{
		Data: items,
		Pagination: pagination.NewMetadata(params, total),
	}, nil
}

// Latest returns the newest published news without counting, for the homepage.
func (s *Service) Latest(ctx context.Context, limit int, featuredOnly bool) ([]*entity.News, error) {
	published := true
	filters := repository.NewsFilters{Published: &published}
	if featuredOnly {
		featured := true
		filters.Featured = &featured
	}
	items, err := s.Repo.List(ctx, filters, 0, limit)
	if err != nil {
		return nil, fmt.Errorf("latest news: %w", err)
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*entity.News, error) {
	n, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get news: %w", err)
	}
	if n == nil {
		return nil, ErrNewsNotFound
	}
	return n, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*entity.News, error) {
	n, err := s.Repo.GetBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return nil, fmt.Errorf("get news by slug: %w", err)
	}
	if n == nil {
		return nil, ErrNewsNotFound
	}
	return n, nil
}

// Create validates in, derives the missing fields and stores a new article.
func (s *Service) Create(ctx context.Context, in Input) (*entity.News, error) {
	n := &entity.News{}
	if err := s.apply(ctx, n, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("create news: %w", err)
	}
	return n, nil
}

// Update replaces the article's fields with in.
func (s *Service) Update(ctx context.Context, id int64, in Input) (*entity.News, error) {
	n, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, n, in); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, n); err != nil {
		return nil, fmt.Errorf("update news: %w", err)
	}
	return n, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete news: %w", err)
	}
	return nil
}

// apply copies in onto n after validation. Content is sanitized; an empty
// excerpt, image or slug is derived; a published article without a date is
// stamped with the current time.
func (s *Service) apply(ctx context.Context, n *entity.News, in Input) error {
	in.Title = strings.TrimSpace(in.Title)
	if err := validation.Struct(in); err != nil {
		return err
	}
	if err := entity.ValidateMediaURL("image_url", in.ImageURL); err != nil {
		return err
	}
	if in.SourceURL != nil && *in.SourceURL != "" {
		if err := entity.ValidateURL("source_url", *in.SourceURL); err != nil {
			return err
		}
	}

	content, err := richtext.Sanitize(in.Content)
	if err != nil {
		return &entity.ValidationError{Field: "content", Message: "content is invalid HTML"}
	}

	n.Title = in.Title
	n.Content = content
	n.Excerpt = strings.TrimSpace(in.Excerpt)
	if n.Excerpt == "" {
		n.Excerpt = richtext.Excerpt(content, richtext.DefaultExcerptLength)
	}
	n.ImageURL = strings.TrimSpace(in.ImageURL)
	if n.ImageURL == "" {
		n.ImageURL = richtext.FirstImage(content)
	}
	n.Category = strings.TrimSpace(in.Category)
	if n.Category == "" {
		n.Category = "general"
	}
	n.Author = strings.TrimSpace(in.Author)
	n.Published = in.Published
	n.Featured = in.Featured
	n.SourceURL = in.SourceURL
	if n.SourceURL != nil && *n.SourceURL == "" {
		n.SourceURL = nil
	}
	n.PublishedAt = in.PublishedAt
	if n.Published && n.PublishedAt == nil {
		now := s.now()
		n.PublishedAt = &now
	}

	slug, err := s.resolveSlug(ctx, n.ID, in.Slug, in.Title)
	if err != nil {
		return err
	}
	n.Slug = slug
	return nil
}

// resolveSlug returns an explicit slug as-is if free, or derives one from
// the title and appends a numeric suffix until it is unique.
func (s *Service) resolveSlug(ctx context.Context, id int64, explicit, title string) (string, error) {
	if explicit = text.Slugify(explicit); explicit != "" {
		owner, err := s.Repo.GetBySlug(ctx, explicit)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if owner != nil && owner.ID != id {
			return "", ErrSlugTaken
		}
		return explicit, nil
	}

	base := text.Slugify(title)
	if base == "" {
		base = "nota"
	}
	candidate := base
	for i := 2; i <= maxSlugAttempts+1; i++ {
		owner, err := s.Repo.GetBySlug(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if owner == nil || owner.ID == id {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", ErrSlugTaken
}
