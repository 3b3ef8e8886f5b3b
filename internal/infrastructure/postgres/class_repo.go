package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mpartaud/school-records/internal/domain"
	"github.com/mpartaud/school-records/internal/repository"
)

const classColumns = `class_id, name, created_at, updated_at`

type ClassRepository struct {
	pool *pgxpool.Pool
}

func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

func (r *ClassRepository) List(ctx context.Context) ([]*domain.Class, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+classColumns+` FROM classes ORDER BY class_id`)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	defer rows.Close()

	var classes []*domain.Class
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

func (r *ClassRepository) FindByID(ctx context.Context, id int64) (*domain.Class, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+classColumns+` FROM classes WHERE class_id = $1`, id)
	return scanClass(row)
}

func (r *ClassRepository) Create(ctx context.Context, name string) (*domain.Class, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO classes (name) VALUES ($1) RETURNING `+classColumns, name)
	return scanClass(row)
}

func (r *ClassRepository) Update(ctx context.Context, id int64, patch repository.ClassPatch) (int64, error) {
	if patch.Empty() {
		return 0, nil
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE classes SET name = $2, updated_at = NOW() WHERE class_id = $1`,
		id, *patch.Name)
	if err != nil {
		return 0, fmt.Errorf("update class: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *ClassRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM classes WHERE class_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete class: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *ClassRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM classes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count classes: %w", err)
	}
	return n, nil
}

func scanClass(row pgx.Row) (*domain.Class, error) {
	var c domain.Class
	err := row.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClassNotFound
		}
		return nil, fmt.Errorf("scan class: %w", err)
	}
	return &c, nil
}
