package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
)

const programColumns = `id, title, description, image_url, host, schedule, category,
active, display_order, created_at, updated_at`

type ProgramRepo struct {
	db DBTX
}

func NewProgramRepo(db DBTX) repository.ProgramRepository {
	return &ProgramRepo{db: db}
}

func scanProgram(row rowScanner) (*entity.Program, error) {
	var p entity.Program
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.Host, &p.Schedule,
		&p.Category, &p.Active, &p.DisplayOrder, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (repo *ProgramRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Program, error) {
	var where whereBuilder
	if activeOnly {
		where.addRaw("active = TRUE")
	}
	query := fmt.Sprintf(`
SELECT %s
FROM programs
%s
ORDER BY display_order ASC, title ASC`, programColumns, where.clause())

	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	programs := make([]*entity.Program, 0, 20)
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

func (repo *ProgramRepo) Get(ctx context.Context, id int64) (*entity.Program, error) {
	query := `SELECT ` + programColumns + ` FROM programs WHERE id = $1 LIMIT 1`
	p, err := scanProgram(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return p, nil
}

func (repo *ProgramRepo) Create(ctx context.Context, p *entity.Program) error {
	const query = `
INSERT INTO programs (title, description, image_url, host, schedule, category, active, display_order)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		p.Title, p.Description, p.ImageURL, p.Host, p.Schedule, p.Category, p.Active, p.DisplayOrder,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return mapError("Create", err)
}

func (repo *ProgramRepo) Update(ctx context.Context, p *entity.Program) error {
	const query = `
UPDATE programs
SET title = $1, description = $2, image_url = $3, host = $4, schedule = $5,
    category = $6, active = $7, display_order = $8, updated_at = NOW()
WHERE id = $9
RETURNING updated_at`
	row := repo.db.QueryRowContext(ctx, query,
		p.Title, p.Description, p.ImageURL, p.Host, p.Schedule, p.Category, p.Active, p.DisplayOrder, p.ID)
	var updatedAt time.Time
	if err := scanUpdated(row, "Update", &updatedAt); err != nil {
		return err
	}
	p.UpdatedAt = updatedAt
	return nil
}

func (repo *ProgramRepo) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, repo.db, "Delete", `DELETE FROM programs WHERE id = $1`, id)
}
