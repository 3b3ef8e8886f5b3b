package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/mpartaud/school-records/internal/domain"
)

// User-visible strings. The odd spellings are part of the API surface
// clients already match on.
const (
	errNotAuthenticated     = "User not Autheticate"
	errAlreadyAuthenticated = "User already Connected"
	errUnauthorized         = "Unauthorize Operation"
	errEmailTaken           = "Email already registered"
	errInvalidCredentials   = "invalid credentials"
	errTokenInvalid         = "token is invalid or expired"
	errNothingStored        = "data wasn't stored in database"
	errInternalServer       = "Internal server error"
)

// errorMessage flattens the error taxonomy into the envelope's message.
// Denial kinds are deliberately not distinguished by HTTP status.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		return errNotAuthenticated
	case errors.Is(err, domain.ErrAlreadyAuthenticated):
		return errAlreadyAuthenticated
	case errors.Is(err, domain.ErrUnauthorized):
		return errUnauthorized
	case errors.Is(err, domain.ErrEmailTaken):
		return errEmailTaken
	case errors.Is(err, domain.ErrInvalidCredentials):
		return errInvalidCredentials
	case errors.Is(err, domain.ErrTokenInvalid):
		return errTokenInvalid
	case errors.Is(err, domain.ErrNothingStored):
		return errNothingStored
	default:
		return errInternalServer
	}
}

// fail converts any mutation failure into the envelope. Expected denials are
// not logged; anything mapping to an internal error is.
func fail(ctx *gin.Context, logger *slog.Logger, op string, err error) {
	msg := errorMessage(err)
	if msg == errInternalServer {
		logger.ErrorContext(ctx.Request.Context(), op, "error", err)
	}
	denied(ctx, msg)
}
