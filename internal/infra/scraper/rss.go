// Package scraper downloads RSS and Atom feeds for the news importer.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"

	"github.com/mcarbmont89/full-congreso-sub000/internal/resilience/circuitbreaker"
	"github.com/mcarbmont89/full-congreso-sub000/internal/resilience/retry"
	"github.com/mcarbmont89/full-congreso-sub000/internal/usecase/newsfeed"
)

const userAgent = "CongresoCMSBot/1.0"

// RSSFetcher is the newsfeed.FeedFetcher backed by gofeed. All feeds share
// one breaker, and each download is retried with retry.FeedConfig.
type RSSFetcher struct {
	client  *http.Client
	breaker *circuitbreaker.CircuitBreaker
	policy  retry.Config
}

// NewRSSFetcher downloads through client, which should come from
// fetcher.NewClient so private addresses stay unreachable.
func NewRSSFetcher(client *http.Client) *RSSFetcher {
	return &RSSFetcher{
		client:  client,
		breaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		policy:  retry.FeedConfig(),
	}
}

func (f *RSSFetcher) Fetch(ctx context.Context, feedURL string) ([]newsfeed.FeedItem, error) {
	var items []newsfeed.FeedItem
	err := retry.WithBackoff(ctx, f.policy, func() error {
		out, err := f.breaker.Execute(func() (interface{}, error) { return f.download(ctx, feedURL) })
		switch {
		case errors.Is(err, gobreaker.ErrOpenState):
			slog.Warn("feed download skipped, breaker open", slog.String("url", feedURL))
			return err
		case err != nil:
			return err
		}
		items = out.([]newsfeed.FeedItem)
		return nil
	})
	return items, err
}

func (f *RSSFetcher) download(ctx context.Context, feedURL string) ([]newsfeed.FeedItem, error) {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	parser.Client = f.client

	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	var status gofeed.HTTPError
	switch {
	case errors.As(err, &status):
		return nil, &retry.HTTPError{StatusCode: status.StatusCode, Message: status.Status}
	case err != nil:
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := make([]newsfeed.FeedItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		items = append(items, toFeedItem(it))
	}
	return items, nil
}

func toFeedItem(it *gofeed.Item) newsfeed.FeedItem {
	item := newsfeed.FeedItem{
		Title:    strings.TrimSpace(it.Title),
		URL:      strings.TrimSpace(it.Link),
		Content:  it.Content,
		ImageURL: imageOf(it),
	}
	if item.Content == "" {
		item.Content = it.Description
	}
	if it.Author != nil {
		item.Author = it.Author.Name
	}
	item.PublishedAt = it.PublishedParsed
	if item.PublishedAt == nil {
		item.PublishedAt = it.UpdatedParsed
	}
	return item
}

// imageOf returns the item image, falling back to the first image enclosure.
func imageOf(it *gofeed.Item) string {
	if it.Image != nil && it.Image.URL != "" {
		return it.Image.URL
	}
	for _, enc := range it.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	return ""
}
