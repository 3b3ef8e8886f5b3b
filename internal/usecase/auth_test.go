package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mpartaud/school-records/internal/auth"
	"github.com/mpartaud/school-records/internal/domain"
	"github.com/mpartaud/school-records/internal/repository"
	"github.com/mpartaud/school-records/internal/usecase"
)

// ---- fakes ----

type fakeUserRepo struct {
	list           func(ctx context.Context) ([]*domain.User, error)
	findByID       func(ctx context.Context, id int64) (*domain.User, error)
	findByEmail    func(ctx context.Context, email string) (*domain.User, error)
	findByUsername func(ctx context.Context, username string) ([]*domain.User, error)
	create         func(ctx context.Context, input repository.CreateUserInput) (*domain.User, error)
	update         func(ctx context.Context, id int64, patch repository.UserPatch) (int64, error)
	delete         func(ctx context.Context, id int64) (int64, error)
	count          func(ctx context.Context) (int64, error)
}

func (r *fakeUserRepo) List(ctx context.Context) ([]*domain.User, error) { return r.list(ctx) }
func (r *fakeUserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findByID(ctx, id)
}
func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findByEmail(ctx, email)
}
func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) ([]*domain.User, error) {
	return r.findByUsername(ctx, username)
}
func (r *fakeUserRepo) Create(ctx context.Context, input repository.CreateUserInput) (*domain.User, error) {
	return r.create(ctx, input)
}
func (r *fakeUserRepo) Update(ctx context.Context, id int64, patch repository.UserPatch) (int64, error) {
	return r.update(ctx, id, patch)
}
func (r *fakeUserRepo) Delete(ctx context.Context, id int64) (int64, error) {
	return r.delete(ctx, id)
}
func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) { return r.count(ctx) }

type fakeSender struct {
	send func(ctx context.Context, to, subject, body string) error
}

func (s *fakeSender) Send(ctx context.Context, to, subject, body string) error {
	if s.send == nil {
		return nil
	}
	return s.send(ctx, to, subject, body)
}

// ---- helpers ----

const testSecret = "usecase-test-secret-at-least-32-chars"

// cost 4 keeps bcrypt fast in tests
var testHasher = auth.NewHasher(4)

func testTokens() *auth.Tokens {
	return auth.NewTokens([]byte(testSecret), time.Hour)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthUsecase(repo *fakeUserRepo, sender *fakeSender) *usecase.AuthUsecase {
	tokens := testTokens()
	guard := auth.NewGuard(tokens, repo)
	return usecase.NewAuthUsecase(repo, testHasher, tokens, guard, sender, discardLogger())
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	digest, err := testHasher.Hash(plain)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return digest
}

// ---- Register ----

func TestRegister_HashesPasswordAndIssuesToken(t *testing.T) {
	var stored repository.CreateUserInput
	var emailedTo string

	repo := &fakeUserRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
		create: func(_ context.Context, input repository.CreateUserInput) (*domain.User, error) {
			stored = input
			return &domain.User{ID: 1, Username: input.Username, Email: input.Email, Role: input.Role}, nil
		},
	}
	sender := &fakeSender{
		send: func(_ context.Context, to, _, _ string) error {
			emailedTo = to
			return nil
		},
	}

	user, token, err := newAuthUsecase(repo, sender).Register(context.Background(), usecase.RegisterInput{
		Username: "alice",
		Password: "p1",
		Email:    "a@x.com",
		Role:     "Teacher",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if stored.Password == "p1" {
		t.Error("password stored in plaintext")
	}
	if !testHasher.Verify("p1", stored.Password) {
		t.Error("stored digest does not verify against the plaintext")
	}
	if token == "" {
		t.Error("no token issued")
	}
	claims, err := testTokens().Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("token subject = %d, want %d", claims.UserID, user.ID)
	}
	if emailedTo != "a@x.com" {
		t.Errorf("welcome email went to %q, want a@x.com", emailedTo)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &fakeUserRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.User, error) {
			return &domain.User{ID: 9, Email: "a@x.com"}, nil
		},
	}

	_, _, err := newAuthUsecase(repo, &fakeSender{}).Register(context.Background(), usecase.RegisterInput{
		Username: "alice", Password: "p1", Email: "a@x.com", Role: "Teacher",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestRegister_RejectsAuthenticatedCaller(t *testing.T) {
	_, _, err := newAuthUsecase(&fakeUserRepo{}, &fakeSender{}).Register(context.Background(),
		usecase.RegisterInput{
			Username: "alice", Password: "p1", Email: "a@x.com", Role: "Teacher",
			Token: "some-token",
		})
	if !errors.Is(err, domain.ErrAlreadyAuthenticated) {
		t.Errorf("err = %v, want ErrAlreadyAuthenticated", err)
	}
}

func TestRegister_EmailFailureDoesNotFailRegistration(t *testing.T) {
	repo := &fakeUserRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
		create: func(_ context.Context, input repository.CreateUserInput) (*domain.User, error) {
			return &domain.User{ID: 1, Username: input.Username, Email: input.Email}, nil
		},
	}
	sender := &fakeSender{
		send: func(_ context.Context, _, _, _ string) error {
			return errors.New("smtp down")
		},
	}

	_, token, err := newAuthUsecase(repo, sender).Register(context.Background(), usecase.RegisterInput{
		Username: "alice", Password: "p1", Email: "a@x.com", Role: "Teacher",
	})
	if err != nil {
		t.Fatalf("register failed on email error: %v", err)
	}
	if token == "" {
		t.Error("no token issued")
	}
}

// ---- Login ----

func TestLogin_PicksMatchingCandidate(t *testing.T) {
	// Two users share the username; only the second one holds this password.
	candidates := []*domain.User{
		{ID: 1, Username: "alice", Password: mustHash(t, "other")},
		{ID: 2, Username: "alice", Password: mustHash(t, "p1")},
	}
	repo := &fakeUserRepo{
		findByUsername: func(_ context.Context, username string) ([]*domain.User, error) {
			if username != "alice" {
				t.Errorf("FindByUsername(%q), want alice", username)
			}
			return candidates, nil
		},
	}

	user, token, err := newAuthUsecase(repo, &fakeSender{}).Login(context.Background(), usecase.LoginInput{
		Username: "alice", Password: "p1",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != 2 {
		t.Errorf("selected user %d, want 2", user.ID)
	}

	claims, err := testTokens().Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != 2 {
		t.Errorf("token subject = %d, want 2", claims.UserID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := &fakeUserRepo{
		findByUsername: func(_ context.Context, _ string) ([]*domain.User, error) {
			return []*domain.User{{ID: 1, Username: "alice", Password: mustHash(t, "p1")}}, nil
		},
	}

	_, token, err := newAuthUsecase(repo, &fakeSender{}).Login(context.Background(), usecase.LoginInput{
		Username: "alice", Password: "wrong",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
	if token != "" {
		t.Error("token issued on failed login")
	}
}

func TestLogin_UnknownUsername(t *testing.T) {
	repo := &fakeUserRepo{
		findByUsername: func(_ context.Context, _ string) ([]*domain.User, error) {
			return nil, nil
		},
	}

	_, _, err := newAuthUsecase(repo, &fakeSender{}).Login(context.Background(), usecase.LoginInput{
		Username: "nobody", Password: "p1",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_RejectsAuthenticatedCaller(t *testing.T) {
	_, _, err := newAuthUsecase(&fakeUserRepo{}, &fakeSender{}).Login(context.Background(),
		usecase.LoginInput{Username: "alice", Password: "p1", Token: "some-token"})
	if !errors.Is(err, domain.ErrAlreadyAuthenticated) {
		t.Errorf("err = %v, want ErrAlreadyAuthenticated", err)
	}
}
