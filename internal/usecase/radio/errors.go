// Package radio provides use cases for radio categories, programs and their
// audio episodes.
package radio

import (
	"fmt"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
)

var (
	ErrCategoryNotFound = fmt.Errorf("radio category %w", entity.ErrNotFound)
	ErrProgramNotFound  = fmt.Errorf("radio program %w", entity.ErrNotFound)
	ErrEpisodeNotFound  = fmt.Errorf("radio episode %w", entity.ErrNotFound)
)
