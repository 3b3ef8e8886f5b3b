package domain

import "errors"

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrClassNotFound = errors.New("class not found")
	ErrGradeNotFound = errors.New("grade not found")

	ErrNotAuthenticated     = errors.New("caller is not authenticated")
	ErrAlreadyAuthenticated = errors.New("caller is already connected")
	ErrUnauthorized         = errors.New("unauthorized operation")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailTaken           = errors.New("email already registered")

	// ErrTokenInvalid is the umbrella the three verification failures below
	// unwrap to. Authorization code only ever needs the umbrella; the
	// specific kind is kept for logs and tests.
	ErrTokenInvalid   = errors.New("token is invalid or expired")
	ErrTokenMalformed = tokenError("token is malformed")
	ErrTokenExpired   = tokenError("token is expired")
	ErrTokenSignature = tokenError("token signature mismatch")

	// ErrNothingStored reports an update or delete that affected zero rows.
	// Kept as a hard failure rather than an idempotent no-op.
	ErrNothingStored = errors.New("data wasn't stored in database")
)

// tokenError is a token verification failure kind. Is matches both the
// kind itself and ErrTokenInvalid.
type tokenError string

func (e tokenError) Error() string { return string(e) }

func (e tokenError) Is(target error) bool {
	return target == ErrTokenInvalid
}
