package newsfeed_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/usecase/newsfeed"
)

var crawledAt = time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC)

func newImporter(feeds *feedRepo, idx *newsRepo, c *creator, f *fetcher) *newsfeed.Importer {
	return &newsfeed.Importer{
		Feeds:   feeds,
		News:    idx,
		Creator: c,
		Fetcher: f,
		Now:     func() time.Time { return crawledAt },
	}
}

func TestImporter_ImportAll(t *testing.T) {
	published := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	feeds := newFeedRepo(
		&entity.NewsFeed{ID: 1, FeedURL: "https://a.example/rss", Category: "senado", Active: true},
		&entity.NewsFeed{ID: 2, FeedURL: "https://b.example/rss", Active: false},
	)
	f := &fetcher{items: map[string][]newsfeed.FeedItem{
		"https://a.example/rss": {
			{Title: "Nueva ley", URL: "https://a.example/1", Content: "<p>texto</p>", ImageURL: "https://a.example/1.jpg", Author: "Prensa", PublishedAt: &published},
			{Title: "Ya importada", URL: "https://a.example/2"},
			{Title: "", URL: "https://a.example/3"},
			{Title: "Repetida en el feed", URL: "https://a.example/1"},
		},
		"https://b.example/rss": {{Title: "inactiva", URL: "https://b.example/1"}},
	}}
	c := &creator{}
	idx := &newsRepo{existing: map[string]bool{"https://a.example/2": true}}

	stats, err := newImporter(feeds, idx, c, f).ImportAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Feeds)
	assert.Equal(t, int64(4), stats.Items)
	assert.Equal(t, int64(1), stats.Inserted)
	assert.Equal(t, int64(2), stats.Duplicated)
	assert.Equal(t, int64(1), stats.Skipped)
	assert.Zero(t, stats.FailedFeed)

	require.Len(t, c.created, 1)
	in := c.created[0]
	assert.Equal(t, "Nueva ley", in.Title)
	assert.False(t, in.Published)
	assert.Equal(t, "senado", in.Category)
	assert.Equal(t, "Prensa", in.Author)
	assert.Equal(t, "https://a.example/1", *in.SourceURL)
	assert.Equal(t, &published, in.PublishedAt)
	assert.Equal(t, "https://a.example/1.jpg", in.ImageURL)

	assert.Equal(t, crawledAt, feeds.touched[1])
	assert.NotContains(t, feeds.touched, int64(2))
}

func TestImporter_FailingFeedDoesNotStopOthers(t *testing.T) {
	feeds := newFeedRepo(
		&entity.NewsFeed{ID: 1, FeedURL: "https://down.example/rss", Active: true},
		&entity.NewsFeed{ID: 2, FeedURL: "https://up.example/rss", Active: true},
	)
	f := &fetcher{
		items: map[string][]newsfeed.FeedItem{"https://up.example/rss": {{Title: "ok", URL: "https://up.example/1"}}},
		errs:  map[string]error{"https://down.example/rss": errors.New("HTTP 503")},
	}
	c := &creator{}

	stats, err := newImporter(feeds, &newsRepo{}, c, f).ImportAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.FailedFeed)
	assert.Equal(t, int64(1), stats.Inserted)
	assert.NotContains(t, feeds.touched, int64(1))
	assert.Contains(t, feeds.touched, int64(2))
}

func TestImporter_ItemErrors(t *testing.T) {
	feeds := newFeedRepo(&entity.NewsFeed{ID: 1, FeedURL: "https://a.example/rss", Active: true})
	f := &fetcher{items: map[string][]newsfeed.FeedItem{"https://a.example/rss": {
		{Title: "conflicto", URL: "https://a.example/race"},
		{Title: "inválida", URL: "https://a.example/bad"},
		{Title: "buena", URL: "https://a.example/ok"},
	}}}
	c := &creator{errFor: map[string]error{
		"https://a.example/race": fmt.Errorf("create news: %w", entity.ErrConflict),
		"https://a.example/bad":  &entity.ValidationError{Field: "image_url", Message: "image_url must use http or https scheme"},
	}}

	stats, err := newImporter(feeds, &newsRepo{}, c, f).ImportAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Inserted)
	assert.Equal(t, int64(1), stats.Duplicated)
	assert.Equal(t, int64(1), stats.Skipped)
	assert.Zero(t, stats.FailedFeed)
}

func TestImporter_StoreFailureFailsFeed(t *testing.T) {
	feeds := newFeedRepo(&entity.NewsFeed{ID: 1, FeedURL: "https://a.example/rss", Active: true})
	f := &fetcher{items: map[string][]newsfeed.FeedItem{"https://a.example/rss": {{Title: "x", URL: "https://a.example/1"}}}}
	c := &creator{errFor: map[string]error{"https://a.example/1": errors.New("connection reset")}}

	stats, err := newImporter(feeds, &newsRepo{}, c, f).ImportAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.FailedFeed)
	assert.Empty(t, feeds.touched)
}

func TestImporter_DedupFailureFailsFeed(t *testing.T) {
	feeds := newFeedRepo(&entity.NewsFeed{ID: 1, FeedURL: "https://a.example/rss", Active: true})
	f := &fetcher{items: map[string][]newsfeed.FeedItem{"https://a.example/rss": {{Title: "x", URL: "https://a.example/1"}}}}
	c := &creator{}

	stats, err := newImporter(feeds, &newsRepo{err: errors.New("db down")}, c, f).ImportAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.FailedFeed)
	assert.Empty(t, c.created)
}

func TestImporter_ListError(t *testing.T) {
	feeds := newFeedRepo()
	feeds.listErr = errors.New("db down")

	_, err := newImporter(feeds, &newsRepo{}, &creator{}, &fetcher{}).ImportAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list active feeds")
}

func TestImporter_ImportFeed(t *testing.T) {
	feeds := newFeedRepo(&entity.NewsFeed{ID: 7, FeedURL: "https://a.example/rss", Active: false})
	f := &fetcher{items: map[string][]newsfeed.FeedItem{"https://a.example/rss": {{Title: "x", URL: "https://a.example/1"}}}}
	c := &creator{}
	im := newImporter(feeds, &newsRepo{}, c, f)

	stats, err := im.ImportFeed(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Inserted)

	_, err = im.ImportFeed(context.Background(), 8)
	assert.ErrorIs(t, err, newsfeed.ErrFeedNotFound)
}

func TestImporter_LongTitleFitsColumn(t *testing.T) {
	long := ""
	for len([]rune(long)) < 400 {
		long += "palabra "
	}
	feeds := newFeedRepo(&entity.NewsFeed{ID: 1, FeedURL: "https://a.example/rss", Active: true})
	f := &fetcher{items: map[string][]newsfeed.FeedItem{"https://a.example/rss": {{Title: long, URL: "https://a.example/1"}}}}
	c := &creator{}

	_, err := newImporter(feeds, &newsRepo{}, c, f).ImportAll(context.Background())
	require.NoError(t, err)
	require.Len(t, c.created, 1)
	assert.LessOrEqual(t, len([]rune(c.created[0].Title)), 300)
}
