package usecase

import (
	"context"
	"fmt"

	"github.com/mpartaud/school-records/internal/auth"
	"github.com/mpartaud/school-records/internal/domain"
	"github.com/mpartaud/school-records/internal/repository"
)

type ClassUsecase struct {
	classes repository.ClassRepository
	guard   *auth.Guard
}

func NewClassUsecase(classes repository.ClassRepository, guard *auth.Guard) *ClassUsecase {
	return &ClassUsecase{classes: classes, guard: guard}
}

func (u *ClassUsecase) List(ctx context.Context) ([]*domain.Class, error) {
	return u.classes.List(ctx)
}

func (u *ClassUsecase) GetByID(ctx context.Context, id int64) (*domain.Class, error) {
	return u.classes.FindByID(ctx, id)
}

// requireTeacher resolves the actor and checks the role gate shared by all
// class mutations.
func (u *ClassUsecase) requireTeacher(ctx context.Context, token string) error {
	actor, err := u.guard.Actor(ctx, token)
	if err != nil {
		return err
	}
	return u.guard.RequireTeacher(actor)
}

func (u *ClassUsecase) CreateClass(ctx context.Context, token, name string) (*domain.Class, error) {
	if err := u.requireTeacher(ctx, token); err != nil {
		return nil, err
	}

	class, err := u.classes.Create(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("create class: %w", err)
	}
	return class, nil
}

func (u *ClassUsecase) UpdateClass(ctx context.Context, token string, id int64, patch repository.ClassPatch) error {
	if err := u.requireTeacher(ctx, token); err != nil {
		return err
	}

	affected, err := u.classes.Update(ctx, id, patch)
	if err != nil {
		return fmt.Errorf("update class: %w", err)
	}
	if affected == 0 {
		return domain.ErrNothingStored
	}
	return nil
}

func (u *ClassUsecase) DeleteClass(ctx context.Context, token string, id int64) error {
	if err := u.requireTeacher(ctx, token); err != nil {
		return err
	}

	affected, err := u.classes.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	if affected == 0 {
		return domain.ErrNothingStored
	}
	return nil
}
