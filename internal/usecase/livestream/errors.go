// Package livestream manages TV and radio signals and their on-air status.
package livestream

import (
	"fmt"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
)

var ErrStreamNotFound = fmt.Errorf("live stream %w", entity.ErrNotFound)
