package repository

import (
	"context"

	"github.com/mpartaud/school-records/internal/domain"
)

type CreateGradeInput struct {
	Name   string
	Value  int
	UserID int64
}

type GradePatch struct {
	Name   *string
	Value  *int
	UserID *int64
}

func (p GradePatch) Empty() bool {
	return p.Name == nil && p.Value == nil && p.UserID == nil
}

type GradeRepository interface {
	List(ctx context.Context) ([]*domain.Grade, error)
	FindByID(ctx context.Context, id int64) (*domain.Grade, error)
	Create(ctx context.Context, input CreateGradeInput) (*domain.Grade, error)
	Update(ctx context.Context, id int64, patch GradePatch) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Count(ctx context.Context) (int64, error)
}
