package repository

import (
	"context"

	"github.com/mpartaud/school-records/internal/domain"
)

type CreateUserInput struct {
	Username string
	Password string // already hashed
	Email    string
	Role     string
	ClassID  *int64
}

// UserPatch carries the fields of a partial update. Nil means "leave as is".
type UserPatch struct {
	Username *string
	Password *string // already hashed
	Email    *string
	Role     *string
	ClassID  *int64
}

func (p UserPatch) Empty() bool {
	return p.Username == nil && p.Password == nil && p.Email == nil &&
		p.Role == nil && p.ClassID == nil
}

type UserRepository interface {
	List(ctx context.Context) ([]*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByUsername returns every user carrying the username. Uniqueness is
	// not enforced at this layer, so login has to test each candidate.
	FindByUsername(ctx context.Context, username string) ([]*domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	// Update returns the number of affected rows.
	Update(ctx context.Context, id int64, patch UserPatch) (int64, error)
	// Delete returns the number of affected rows.
	Delete(ctx context.Context, id int64) (int64, error)
	Count(ctx context.Context) (int64, error)
}
