// Package legislature provides use cases for the governing organs,
// parliamentary groups and legislators of both chambers.
package legislature

import (
	"fmt"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
)

var (
	ErrOrganNotFound      = fmt.Errorf("organ %w", entity.ErrNotFound)
	ErrGroupNotFound      = fmt.Errorf("parliamentary group %w", entity.ErrNotFound)
	ErrLegislatorNotFound = fmt.Errorf("legislator %w", entity.ErrNotFound)
)
