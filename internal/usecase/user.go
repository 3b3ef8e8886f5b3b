package usecase

import (
	"context"
	"fmt"

	"github.com/mpartaud/school-records/internal/auth"
	"github.com/mpartaud/school-records/internal/domain"
	"github.com/mpartaud/school-records/internal/repository"
)

type UserUsecase struct {
	users  repository.UserRepository
	hasher *auth.Hasher
	guard  *auth.Guard
}

func NewUserUsecase(users repository.UserRepository, hasher *auth.Hasher, guard *auth.Guard) *UserUsecase {
	return &UserUsecase{users: users, hasher: hasher, guard: guard}
}

func (u *UserUsecase) List(ctx context.Context) ([]*domain.User, error) {
	return u.users.List(ctx)
}

func (u *UserUsecase) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return u.users.FindByID(ctx, id)
}

type CreateUserInput struct {
	Username string
	Password string
	Email    string
	Role     string
	ClassID  *int64
	Token    string
}

// CreateUser mirrors registration minus the token issuance: only callers
// without a token may create a user record directly.
func (u *UserUsecase) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if err := u.guard.RequireAnonymous(input.Token); err != nil {
		return nil, err
	}

	digest, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.users.Create(ctx, repository.CreateUserInput{
		Username: input.Username,
		Password: digest,
		Email:    input.Email,
		Role:     input.Role,
		ClassID:  input.ClassID,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

type UpdateUserInput struct {
	Username *string
	Password *string
	Email    *string
	Role     *string
	ClassID  *int64
}

// UpdateUser lets a user change their own record. A new password goes
// through the hasher before it is stored.
func (u *UserUsecase) UpdateUser(ctx context.Context, token string, id int64, input UpdateUserInput) error {
	actor, err := u.guard.Actor(ctx, token)
	if err != nil {
		return err
	}
	if err := u.guard.RequireSelf(actor, id); err != nil {
		return err
	}

	patch := repository.UserPatch{
		Username: input.Username,
		Email:    input.Email,
		Role:     input.Role,
		ClassID:  input.ClassID,
	}
	if input.Password != nil {
		digest, err := u.hasher.Hash(*input.Password)
		if err != nil {
			return err
		}
		patch.Password = &digest
	}

	affected, err := u.users.Update(ctx, id, patch)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if affected == 0 {
		return domain.ErrNothingStored
	}
	return nil
}

func (u *UserUsecase) DeleteUser(ctx context.Context, token string, id int64) error {
	actor, err := u.guard.Actor(ctx, token)
	if err != nil {
		return err
	}
	if err := u.guard.RequireSelf(actor, id); err != nil {
		return err
	}

	affected, err := u.users.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if affected == 0 {
		return domain.ErrNothingStored
	}
	return nil
}
