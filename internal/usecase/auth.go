package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mpartaud/school-records/internal/auth"
	"github.com/mpartaud/school-records/internal/domain"
	"github.com/mpartaud/school-records/internal/email"
	"github.com/mpartaud/school-records/internal/metrics"
	"github.com/mpartaud/school-records/internal/repository"
)

type AuthUsecase struct {
	users  repository.UserRepository
	hasher *auth.Hasher
	tokens *auth.Tokens
	guard  *auth.Guard
	email  email.Sender
	logger *slog.Logger
}

func NewAuthUsecase(
	users repository.UserRepository,
	hasher *auth.Hasher,
	tokens *auth.Tokens,
	guard *auth.Guard,
	emailSender email.Sender,
	logger *slog.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		guard:  guard,
		email:  emailSender,
		logger: logger.With("component", "auth_usecase"),
	}
}

type RegisterInput struct {
	Username string
	Password string
	Email    string
	Role     string
	ClassID  *int64
	// Token is whatever the caller supplied. Registration only accepts
	// callers that are not identified yet.
	Token string
}

// Register creates a user with a hashed password and returns it together
// with a freshly issued token.
func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	if err := u.guard.RequireAnonymous(input.Token); err != nil {
		return nil, "", err
	}

	if _, err := u.users.FindByEmail(ctx, input.Email); err == nil {
		metrics.RegistrationsTotal.WithLabelValues("duplicate_email").Inc()
		return nil, "", domain.ErrEmailTaken
	} else if !isNotFound(err) {
		return nil, "", fmt.Errorf("check email: %w", err)
	}

	digest, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, "", err
	}

	user, err := u.users.Create(ctx, repository.CreateUserInput{
		Username: input.Username,
		Password: digest,
		Email:    input.Email,
		Role:     input.Role,
		ClassID:  input.ClassID,
	})
	if err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	// Best effort: a failed welcome email must not fail the registration.
	if err := u.email.Send(ctx, user.Email, "Welcome to School Records",
		fmt.Sprintf("<p>Hi %s, your account was created.</p>", user.Username)); err != nil {
		u.logger.Warn("welcome email", "user_id", user.ID, "error", err)
	}

	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()
	return user, token, nil
}

type LoginInput struct {
	Username string
	Password string
	Token    string
}

// Login checks the password against every user carrying the username,
// sequentially, and issues a token for the first match. No match is an
// explicit credential failure, never an undefined pick.
func (u *AuthUsecase) Login(ctx context.Context, input LoginInput) (*domain.User, string, error) {
	if err := u.guard.RequireAnonymous(input.Token); err != nil {
		return nil, "", err
	}

	candidates, err := u.users.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, "", fmt.Errorf("find candidates: %w", err)
	}

	var user *domain.User
	for _, c := range candidates {
		if u.hasher.Verify(input.Password, c.Password) {
			user = c
			break
		}
	}
	if user == nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return user, token, nil
}
