// Package newsfeed manages external RSS/Atom feeds and imports their items
// as unpublished news drafts for editors to review.
package newsfeed

import (
	"errors"
	"fmt"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
)

var (
	ErrFeedNotFound = fmt.Errorf("news feed %w", entity.ErrNotFound)

	// ErrFeedFetchFailed wraps download and parse failures of a feed.
	ErrFeedFetchFailed = errors.New("failed to fetch news feed")
)
