// Package usecase orchestrates the authorization guard and the repositories.
// Every mutation follows the same shape: check token presence, resolve the
// actor, apply the operation's predicate, then hit the repository. Updates
// and deletes that affect zero rows are hard failures.
package usecase

import (
	"errors"

	"github.com/mpartaud/school-records/internal/domain"
)

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrUserNotFound) ||
		errors.Is(err, domain.ErrClassNotFound) ||
		errors.Is(err, domain.ErrGradeNotFound)
}
