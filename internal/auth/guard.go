package auth

import (
	"context"
	"errors"

	"github.com/mpartaud/school-records/internal/domain"
	"github.com/mpartaud/school-records/internal/metrics"
	"github.com/mpartaud/school-records/internal/repository"
)

// Guard turns a raw bearer token into an actor and decides whether that
// actor may run an operation. Every mutation goes through it; queries do not.
type Guard struct {
	tokens *Tokens
	users  repository.UserRepository
}

func NewGuard(tokens *Tokens, users repository.UserRepository) *Guard {
	return &Guard{tokens: tokens, users: users}
}

// Actor verifies raw and loads the user the claims point at.
// An empty token means the caller never authenticated; a verified token
// naming a user that no longer exists counts as an invalid token.
func (g *Guard) Actor(ctx context.Context, raw string) (*domain.User, error) {
	if raw == "" {
		return nil, domain.ErrNotAuthenticated
	}
	claims, err := g.tokens.Verify(raw)
	if err != nil {
		metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}
	metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
	actor, err := g.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	return actor, nil
}

// RequireTeacher gates class and grade mutations.
func (g *Guard) RequireTeacher(actor *domain.User) error {
	if !actor.IsTeacher() {
		return domain.ErrUnauthorized
	}
	return nil
}

// RequireSelf gates mutations on a user record to that user.
func (g *Guard) RequireSelf(actor *domain.User, targetID int64) error {
	if actor.ID != targetID {
		return domain.ErrUnauthorized
	}
	return nil
}

// RequireAnonymous rejects already-identified callers. Register, login and
// createUser only accept callers without a token.
func (g *Guard) RequireAnonymous(raw string) error {
	if raw != "" {
		return domain.ErrAlreadyAuthenticated
	}
	return nil
}
