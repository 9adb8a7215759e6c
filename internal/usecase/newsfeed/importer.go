package newsfeed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/observability/metrics"
	"github.com/mcarbmont89/full-congreso-sub000/internal/observability/tracing"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
	"github.com/mcarbmont89/full-congreso-sub000/internal/usecase/news"
	"github.com/mcarbmont89/full-congreso-sub000/internal/utils/text"
)

const defaultParallelism = 4

// One rune below the column limits leaves room for the ellipsis.
const (
	maxTitleRunes  = 299
	maxAuthorRunes = 199
)

// FeedItem is one entry of an RSS/Atom feed.
type FeedItem struct {
	Title       string
	URL         string
	Content     string
	ImageURL    string
	Author      string
	PublishedAt *time.Time
}

// FeedFetcher downloads and parses a feed.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]FeedItem, error)
}

// NewsCreator stores a news row with the same derivations as the admin API.
type NewsCreator interface {
	Create(ctx context.Context, in news.Input) (*entity.News, error)
}

// SourceIndex reports which source URLs are already stored as news.
type SourceIndex interface {
	ExistingSourceURLs(ctx context.Context, urls []string) (map[string]bool, error)
}

// ImportStats summarizes an import pass.
type ImportStats struct {
	Feeds      int
	FailedFeed int64
	Items      int64
	Inserted   int64
	Duplicated int64
	Skipped    int64
	Duration   time.Duration
}

// Importer turns feed items into unpublished news.
type Importer struct {
	Feeds   repository.NewsFeedRepository
	News    SourceIndex
	Creator NewsCreator
	Fetcher FeedFetcher
	// Parallelism bounds how many feeds are imported at once.
	Parallelism int
	Now         func() time.Time
}

// ImportAll imports every active feed. A failing feed is logged and counted;
// only context cancellation or a failure to list feeds aborts the pass.
func (im *Importer) ImportAll(ctx context.Context) (*ImportStats, error) {
	feeds, err := im.Feeds.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active feeds: %w", err)
	}
	return im.run(ctx, feeds)
}

// ImportFeed imports a single feed, active or not.
func (im *Importer) ImportFeed(ctx context.Context, id int64) (*ImportStats, error) {
	feed, err := im.Feeds.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get news feed: %w", err)
	}
	if feed == nil {
		return nil, ErrFeedNotFound
	}
	return im.run(ctx, []*entity.NewsFeed{feed})
}

func (im *Importer) run(ctx context.Context, feeds []*entity.NewsFeed) (*ImportStats, error) {
	start := time.Now()
	stats := &ImportStats{Feeds: len(feeds)}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(im.parallelism())
	for _, feed := range feeds {
		g.Go(func() error {
			err := im.importOne(gctx, feed, stats)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			if err != nil {
				atomic.AddInt64(&stats.FailedFeed, 1)
				slog.WarnContext(gctx, "news feed import failed",
					slog.Int64("feed_id", feed.ID),
					slog.String("feed_url", feed.FeedURL),
					slog.Any("error", err))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, err
	}

	stats.Duration = time.Since(start)
	slog.InfoContext(ctx, "news feed import completed",
		slog.Int("feeds", stats.Feeds),
		slog.Int64("failed_feeds", stats.FailedFeed),
		slog.Int64("items", stats.Items),
		slog.Int64("inserted", stats.Inserted),
		slog.Int64("duplicated", stats.Duplicated),
		slog.Int64("skipped", stats.Skipped),
		slog.Duration("duration", stats.Duration))
	return stats, nil
}

// importOne fetches one feed and stores its new items. Items of a feed are
// written one at a time so derived slugs do not race each other.
func (im *Importer) importOne(ctx context.Context, feed *entity.NewsFeed, stats *ImportStats) (err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "newsfeed.import", attribute.Int64("feed.id", feed.ID))
	defer func() { tracing.End(span, err) }()

	items, err := im.Fetcher.Fetch(ctx, feed.FeedURL)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		metrics.RecordFeedImportError(feed.ID, "fetch_failed")
		return fmt.Errorf("%w: %w", ErrFeedFetchFailed, err)
	}
	atomic.AddInt64(&stats.Items, int64(len(items)))

	urls := make([]string, 0, len(items))
	for _, it := range items {
		if it.URL != "" {
			urls = append(urls, it.URL)
		}
	}
	existing := map[string]bool{}
	if len(urls) > 0 {
		existing, err = im.News.ExistingSourceURLs(ctx, urls)
		if err != nil {
			metrics.RecordFeedImportError(feed.ID, "dedup_failed")
			return fmt.Errorf("check existing items: %w", err)
		}
		if existing == nil {
			existing = map[string]bool{}
		}
	}

	var inserted, duplicated int64
	for _, it := range items {
		if it.URL == "" || it.Title == "" {
			atomic.AddInt64(&stats.Skipped, 1)
			continue
		}
		if existing[it.URL] {
			duplicated++
			continue
		}
		existing[it.URL] = true

		_, err := im.Creator.Create(ctx, toNewsInput(feed, it))
		switch {
		case err == nil:
			inserted++
		case errors.Is(err, entity.ErrConflict):
			duplicated++
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		case errors.Is(err, entity.ErrValidationFailed):
			atomic.AddInt64(&stats.Skipped, 1)
			slog.DebugContext(ctx, "feed item rejected",
				slog.Int64("feed_id", feed.ID),
				slog.String("url", it.URL),
				slog.Any("error", err))
		default:
			metrics.RecordFeedImportError(feed.ID, "store_failed")
			return fmt.Errorf("store feed item: %w", err)
		}
	}
	atomic.AddInt64(&stats.Inserted, inserted)
	atomic.AddInt64(&stats.Duplicated, duplicated)

	if err := im.Feeds.TouchCrawledAt(context.WithoutCancel(ctx), feed.ID, im.now()); err != nil {
		return fmt.Errorf("update feed crawled timestamp: %w", err)
	}

	metrics.RecordFeedImport(feed.ID, time.Since(start), inserted, duplicated)
	slog.InfoContext(ctx, "news feed imported",
		slog.Int64("feed_id", feed.ID),
		slog.Int("items", len(items)),
		slog.Int64("inserted", inserted),
		slog.Int64("duplicated", duplicated))
	return nil
}

func toNewsInput(feed *entity.NewsFeed, it FeedItem) news.Input {
	source := it.URL
	return news.Input{
		Title:       text.Truncate(it.Title, maxTitleRunes),
		Content:     it.Content,
		ImageURL:    it.ImageURL,
		Category:    feed.Category,
		Author:      text.Truncate(it.Author, maxAuthorRunes),
		Published:   false,
		SourceURL:   &source,
		PublishedAt: it.PublishedAt,
	}
}

func (im *Importer) parallelism() int {
	if im.Parallelism > 0 {
		return im.Parallelism
	}
	return defaultParallelism
}

func (im *Importer) now() time.Time {
	if im.Now != nil {
		return im.Now()
	}
	return time.Now()
}
