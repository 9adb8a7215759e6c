// Package news provides use cases for the news section: listing with
// filters and pagination, and admin writes that derive the slug, excerpt
// and lead image from the submitted HTML.
package news

import (
	"fmt"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
)

// Sentinel errors for news use case operations.
var (
	// ErrNewsNotFound wraps entity.ErrNotFound so handlers can map it to 404.
	ErrNewsNotFound = fmt.Errorf("news %w", entity.ErrNotFound)

	// ErrSlugTaken is returned when an explicit slug is already used by another article.
	ErrSlugTaken = fmt.Errorf("slug %w", entity.ErrConflict)
)
