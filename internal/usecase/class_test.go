package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mpartaud/school-records/internal/auth"
	"github.com/mpartaud/school-records/internal/domain"
	"github.com/mpartaud/school-records/internal/repository"
	"github.com/mpartaud/school-records/internal/usecase"
)

type fakeClassRepo struct {
	list     func(ctx context.Context) ([]*domain.Class, error)
	findByID func(ctx context.Context, id int64) (*domain.Class, error)
	create   func(ctx context.Context, name string) (*domain.Class, error)
	update   func(ctx context.Context, id int64, patch repository.ClassPatch) (int64, error)
	delete   func(ctx context.Context, id int64) (int64, error)
	count    func(ctx context.Context) (int64, error)
}

func (r *fakeClassRepo) List(ctx context.Context) ([]*domain.Class, error) { return r.list(ctx) }
func (r *fakeClassRepo) FindByID(ctx context.Context, id int64) (*domain.Class, error) {
	return r.findByID(ctx, id)
}
func (r *fakeClassRepo) Create(ctx context.Context, name string) (*domain.Class, error) {
	return r.create(ctx, name)
}
func (r *fakeClassRepo) Update(ctx context.Context, id int64, patch repository.ClassPatch) (int64, error) {
	return r.update(ctx, id, patch)
}
func (r *fakeClassRepo) Delete(ctx context.Context, id int64) (int64, error) {
	return r.delete(ctx, id)
}
func (r *fakeClassRepo) Count(ctx context.Context) (int64, error) { return r.count(ctx) }

var (
	teacherActor = &domain.User{ID: 1, Username: "prof", Role: domain.RoleTeacher}
	studentActor = &domain.User{ID: 2, Username: "alice", Role: "Student"}
)

func newClassUsecase(classes *fakeClassRepo, actors ...*domain.User) (*usecase.ClassUsecase, *auth.Tokens) {
	users := &fakeUserRepo{
		findByID: func(_ context.Context, id int64) (*domain.User, error) {
			for _, a := range actors {
				if a.ID == id {
					return a, nil
				}
			}
			return nil, domain.ErrUserNotFound
		},
	}
	tokens := testTokens()
	guard := auth.NewGuard(tokens, users)
	return usecase.NewClassUsecase(classes, guard), tokens
}

func TestCreateClass_TeacherAllowed(t *testing.T) {
	classes := &fakeClassRepo{
		create: func(_ context.Context, name string) (*domain.Class, error) {
			return &domain.Class{ID: 10, Name: name}, nil
		},
	}
	uc, tokens := newClassUsecase(classes, teacherActor)

	class, err := uc.CreateClass(context.Background(), issueFor(t, tokens, teacherActor.ID), "6eme A")
	if err != nil {
		t.Fatalf("create class: %v", err)
	}
	if class.Name != "6eme A" {
		t.Errorf("class.Name = %q, want 6eme A", class.Name)
	}
}

func TestCreateClass_StudentDenied(t *testing.T) {
	uc, tokens := newClassUsecase(&fakeClassRepo{}, studentActor)

	_, err := uc.CreateClass(context.Background(), issueFor(t, tokens, studentActor.ID), "6eme A")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestCreateClass_NoToken(t *testing.T) {
	uc, _ := newClassUsecase(&fakeClassRepo{})

	_, err := uc.CreateClass(context.Background(), "", "6eme A")
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Errorf("err = %v, want ErrNotAuthenticated", err)
	}
}

func TestUpdateClass_StudentDenied(t *testing.T) {
	uc, tokens := newClassUsecase(&fakeClassRepo{}, studentActor)

	name := "5eme B"
	err := uc.UpdateClass(context.Background(), issueFor(t, tokens, studentActor.ID), 10,
		repository.ClassPatch{Name: &name})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestUpdateClass_ZeroAffectedIsFailure(t *testing.T) {
	classes := &fakeClassRepo{
		update: func(_ context.Context, _ int64, _ repository.ClassPatch) (int64, error) {
			return 0, nil
		},
	}
	uc, tokens := newClassUsecase(classes, teacherActor)

	name := "5eme B"
	err := uc.UpdateClass(context.Background(), issueFor(t, tokens, teacherActor.ID), 999,
		repository.ClassPatch{Name: &name})
	if !errors.Is(err, domain.ErrNothingStored) {
		t.Errorf("err = %v, want ErrNothingStored", err)
	}
}

func TestDeleteClass_StudentDenied(t *testing.T) {
	uc, tokens := newClassUsecase(&fakeClassRepo{}, studentActor)

	err := uc.DeleteClass(context.Background(), issueFor(t, tokens, studentActor.ID), 10)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestDeleteClass_ZeroAffectedIsFailure(t *testing.T) {
	classes := &fakeClassRepo{
		delete: func(_ context.Context, _ int64) (int64, error) {
			return 0, nil
		},
	}
	uc, tokens := newClassUsecase(classes, teacherActor)

	err := uc.DeleteClass(context.Background(), issueFor(t, tokens, teacherActor.ID), 999)
	if !errors.Is(err, domain.ErrNothingStored) {
		t.Errorf("err = %v, want ErrNothingStored", err)
	}
}
