package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
)

/* ─────────────────────────── organs ─────────────────────────── */

const organColumns = `id, name, description, organ_type, image_url, display_order, created_at, updated_at`

type OrganRepo struct {
	db DBTX
}

func NewOrganRepo(db DBTX) repository.OrganRepository {
	return &OrganRepo{db: db}
}

func scanOrgan(row rowScanner) (*entity.Organ, error) {
	var o entity.Organ
	if err := row.Scan(&o.ID, &o.Name, &o.Description, &o.OrganType, &o.ImageURL,
		&o.DisplayOrder, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

func (repo *OrganRepo) List(ctx context.Context) ([]*entity.Organ, error) {
	query := `SELECT ` + organColumns + ` FROM organs ORDER BY display_order ASC, name ASC`
	return queryAll(ctx, repo.db, "List", query, scanOrgan)
}

func (repo *OrganRepo) Get(ctx context.Context, id int64) (*entity.Organ, error) {
	query := `SELECT ` + organColumns + ` FROM organs WHERE id = $1 LIMIT 1`
	return queryOne(ctx, repo.db, "Get", query, scanOrgan, id)
}

func (repo *OrganRepo) Create(ctx context.Context, o *entity.Organ) error {
	const query = `
INSERT INTO organs (name, description, organ_type, image_url, display_order)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query, o.Name, o.Description, o.OrganType, o.ImageURL, o.DisplayOrder).
		Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	return mapError("Create", err)
}

func (repo *OrganRepo) Update(ctx context.Context, o *entity.Organ) error {
	const query = `
UPDATE organs
SET name = $1, description = $2, organ_type = $3, image_url = $4, display_order = $5, updated_at = NOW()
WHERE id = $6
RETURNING updated_at`
	row := repo.db.QueryRowContext(ctx, query, o.Name, o.Description, o.OrganType, o.ImageURL, o.DisplayOrder, o.ID)
	var updatedAt time.Time
	if err := scanUpdated(row, "Update", &updatedAt); err != nil {
		return err
	}
	o.UpdatedAt = updatedAt
	return nil
}

func (repo *OrganRepo) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, repo.db, "Delete", `DELETE FROM organs WHERE id = $1`, id)
}

/* ─────────────────────────── parliamentary groups ─────────────────────────── */

const groupColumns = `id, name, abbreviation, logo_url, color, display_order, created_at, updated_at`

type ParliamentaryGroupRepo struct {
	db DBTX
}

func NewParliamentaryGroupRepo(db DBTX) repository.ParliamentaryGroupRepository {
	return &ParliamentaryGroupRepo{db: db}
}

func scanGroup(row rowScanner) (*entity.ParliamentaryGroup, error) {
	var g entity.ParliamentaryGroup
	if err := row.Scan(&g.ID, &g.Name, &g.Abbreviation, &g.LogoURL, &g.Color,
		&g.DisplayOrder, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}

func (repo *ParliamentaryGroupRepo) List(ctx context.Context) ([]*entity.ParliamentaryGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM parliamentary_groups ORDER BY display_order ASC, name ASC`
	return queryAll(ctx, repo.db, "List", query, scanGroup)
}

func (repo *ParliamentaryGroupRepo) Get(ctx context.Context, id int64) (*entity.ParliamentaryGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM parliamentary_groups WHERE id = $1 LIMIT 1`
	return queryOne(ctx, repo.db, "Get", query, scanGroup, id)
}

func (repo *ParliamentaryGroupRepo) Create(ctx context.Context, g *entity.ParliamentaryGroup) error {
	const query = `
INSERT INTO parliamentary_groups (name, abbreviation, logo_url, color, display_order)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query, g.Name, g.Abbreviation, g.LogoURL, g.Color, g.DisplayOrder).
		Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	return mapError("Create", err)
}

func (repo *ParliamentaryGroupRepo) Update(ctx context.Context, g *entity.ParliamentaryGroup) error {
	const query = `
UPDATE parliamentary_groups
SET name = $1, abbreviation = $2, logo_url = $3, color = $4, display_order = $5, updated_at = NOW()
WHERE id = $6
RETURNING updated_at`
	row := repo.db.QueryRowContext(ctx, query, g.Name, g.Abbreviation, g.LogoURL, g.Color, g.DisplayOrder, g.ID)
	var updatedAt time.Time
	if err := scanUpdated(row, "Update", &updatedAt); err != nil {
		return err
	}
	g.UpdatedAt = updatedAt
	return nil
}

func (repo *ParliamentaryGroupRepo) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, repo.db, "Delete", `DELETE FROM parliamentary_groups WHERE id = $1`, id)
}

/* ─────────────────────────── legislators ─────────────────────────── */

const legislatorColumns = `id, name, chamber, state, district, parliamentary_group_id, photo_url,
email, biography, active, created_at, updated_at`

type LegislatorRepo struct {
	db DBTX
}

func NewLegislatorRepo(db DBTX) repository.LegislatorRepository {
	return &LegislatorRepo{db: db}
}

func scanLegislator(row rowScanner) (*entity.Legislator, error) {
	var l entity.Legislator
	if err := row.Scan(&l.ID, &l.Name, &l.Chamber, &l.State, &l.District, &l.ParliamentaryGroupID,
		&l.PhotoURL, &l.Email, &l.Biography, &l.Active, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func (repo *LegislatorRepo) List(ctx context.Context, filters repository.LegislatorFilters) ([]*entity.Legislator, error) {
	var where whereBuilder
	if filters.Chamber != "" {
		where.add("chamber = ?", filters.Chamber)
	}
	if filters.GroupID != nil {
		where.add("parliamentary_group_id = ?", *filters.GroupID)
	}
	if filters.State != "" {
		where.add("state = ?", filters.State)
	}
	query := fmt.Sprintf(`
SELECT %s
FROM legislators
%s
ORDER BY name ASC`, legislatorColumns, where.clause())
	return queryAll(ctx, repo.db, "List", query, scanLegislator, where.args...)
}

func (repo *LegislatorRepo) Get(ctx context.Context, id int64) (*entity.Legislator, error) {
	query := `SELECT ` + legislatorColumns + ` FROM legislators WHERE id = $1 LIMIT 1`
	return queryOne(ctx, repo.db, "Get", query, scanLegislator, id)
}

func (repo *LegislatorRepo) Create(ctx context.Context, l *entity.Legislator) error {
	const query = `
INSERT INTO legislators (name, chamber, state, district, parliamentary_group_id, photo_url, email, biography, active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		l.Name, l.Chamber, l.State, l.District, l.ParliamentaryGroupID, l.PhotoURL, l.Email, l.Biography, l.Active,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	return mapError("Create", err)
}

func (repo *LegislatorRepo) Update(ctx context.Context, l *entity.Legislator) error {
	const query = `
UPDATE legislators
SET name = $1, chamber = $2, state = $3, district = $4, parliamentary_group_id = $5,
    photo_url = $6, email = $7, biography = $8, active = $9, updated_at = NOW()
WHERE id = $10
RETURNING updated_at`
	row := repo.db.QueryRowContext(ctx, query,
		l.Name, l.Chamber, l.State, l.District, l.ParliamentaryGroupID, l.PhotoURL, l.Email, l.Biography, l.Active, l.ID)
	var updatedAt time.Time
	if err := scanUpdated(row, "Update", &updatedAt); err != nil {
		return err
	}
	l.UpdatedAt = updatedAt
	return nil
}

func (repo *LegislatorRepo) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, repo.db, "Delete", `DELETE FROM legislators WHERE id = $1`, id)
}
