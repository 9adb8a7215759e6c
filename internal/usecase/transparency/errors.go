// Package transparency provides use cases for the audience ombudsman page,
// the transparency portal sections, its documents and open-data datasets.
package transparency

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
)

var (
	ErrDefensoriaNotFound = fmt.Errorf("defensoria content %w", entity.ErrNotFound)
	ErrSectionNotFound    = fmt.Errorf("transparency section %w", entity.ErrNotFound)
	ErrDocumentNotFound   = fmt.Errorf("document %w", entity.ErrNotFound)
	ErrDatasetNotFound    = fmt.Errorf("dataset %w", entity.ErrNotFound)
)

func oneOf(field, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return &entity.ValidationError{
		Field:   field,
		Message: fmt.Sprintf("%s must be one of %s", field, strings.Join(allowed, ", ")),
	}
}
