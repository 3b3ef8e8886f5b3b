package usecase

import (
	"context"
	"fmt"

	"github.com/mpartaud/school-records/internal/auth"
	"github.com/mpartaud/school-records/internal/domain"
	"github.com/mpartaud/school-records/internal/repository"
)

type GradeUsecase struct {
	grades repository.GradeRepository
	guard  *auth.Guard
}

func NewGradeUsecase(grades repository.GradeRepository, guard *auth.Guard) *GradeUsecase {
	return &GradeUsecase{grades: grades, guard: guard}
}

func (u *GradeUsecase) List(ctx context.Context) ([]*domain.Grade, error) {
	return u.grades.List(ctx)
}

func (u *GradeUsecase) GetByID(ctx context.Context, id int64) (*domain.Grade, error) {
	return u.grades.FindByID(ctx, id)
}

func (u *GradeUsecase) requireTeacher(ctx context.Context, token string) error {
	actor, err := u.guard.Actor(ctx, token)
	if err != nil {
		return err
	}
	return u.guard.RequireTeacher(actor)
}

func (u *GradeUsecase) CreateGrade(ctx context.Context, token string, input repository.CreateGradeInput) (*domain.Grade, error) {
	if err := u.requireTeacher(ctx, token); err != nil {
		return nil, err
	}

	grade, err := u.grades.Create(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("create grade: %w", err)
	}
	return grade, nil
}

func (u *GradeUsecase) UpdateGrade(ctx context.Context, token string, id int64, patch repository.GradePatch) error {
	if err := u.requireTeacher(ctx, token); err != nil {
		return err
	}

	affected, err := u.grades.Update(ctx, id, patch)
	if err != nil {
		return fmt.Errorf("update grade: %w", err)
	}
	if affected == 0 {
		return domain.ErrNothingStored
	}
	return nil
}

func (u *GradeUsecase) DeleteGrade(ctx context.Context, token string, id int64) error {
	if err := u.requireTeacher(ctx, token); err != nil {
		return err
	}

	affected, err := u.grades.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete grade: %w", err)
	}
	if affected == 0 {
		return domain.ErrNothingStored
	}
	return nil
}
