package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mpartaud/school-records/internal/domain"
	"github.com/mpartaud/school-records/internal/repository"
)

const gradeColumns = `grade_id, name, grade, user_id, created_at, updated_at`

type GradeRepository struct {
	pool *pgxpool.Pool
}

func NewGradeRepository(pool *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{pool: pool}
}

func (r *GradeRepository) List(ctx context.Context) ([]*domain.Grade, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+gradeColumns+` FROM grades ORDER BY grade_id`)
	if err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	defer rows.Close()

	var grades []*domain.Grade
	for rows.Next() {
		g, err := scanGrade(rows)
		if err != nil {
			return nil, err
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}

func (r *GradeRepository) FindByID(ctx context.Context, id int64) (*domain.Grade, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+gradeColumns+` FROM grades WHERE grade_id = $1`, id)
	return scanGrade(row)
}

func (r *GradeRepository) Create(ctx context.Context, input repository.CreateGradeInput) (*domain.Grade, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO grades (name, grade, user_id)
		 VALUES ($1, $2, $3)
		 RETURNING `+gradeColumns,
		input.Name, input.Value, input.UserID)
	return scanGrade(row)
}

func (r *GradeRepository) Update(ctx context.Context, id int64, patch repository.GradePatch) (int64, error) {
	if patch.Empty() {
		return 0, nil
	}

	set := []string{"updated_at = NOW()"}
	args := []any{id}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Value != nil {
		add("grade", *patch.Value)
	}
	if patch.UserID != nil {
		add("user_id", *patch.UserID)
	}

	tag, err := r.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE grades SET %s WHERE grade_id = $1`, strings.Join(set, ", ")),
		args...)
	if err != nil {
		return 0, fmt.Errorf("update grade: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *GradeRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM grades WHERE grade_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete grade: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *GradeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM grades`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count grades: %w", err)
	}
	return n, nil
}

func scanGrade(row pgx.Row) (*domain.Grade, error) {
	var g domain.Grade
	err := row.Scan(&g.ID, &g.Name, &g.Value, &g.UserID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGradeNotFound
		}
		return nil, fmt.Errorf("scan grade: %w", err)
	}
	return &g, nil
}
