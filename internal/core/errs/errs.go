// Package errs holds the error kinds shared by every layer.
// Callers test for a kind with errors.Is; messages carry the detail.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks rejected input. Nothing was written.
	ErrValidation = errors.New("invalid input")

	// ErrDuplicate marks a uniqueness conflict, e.g. a catalog name that
	// already exists ignoring case.
	ErrDuplicate = errors.New("already exists")

	// ErrAlreadyResolved marks a resolve call against a row that was
	// already resolved. The store is left unchanged.
	ErrAlreadyResolved = errors.New("already resolved")

	// ErrNotPending marks a resolve call against a report item whose status
	// is not "Problema".
	ErrNotPending = errors.New("not a pending problem")

	// ErrNotFound marks an unknown id.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateSubmission marks a submission token that was already
	// consumed or never issued.
	ErrDuplicateSubmission = errors.New("duplicate submission")

	// ErrMissingColumn marks a result set lacking a column a typed record
	// requires.
	ErrMissingColumn = errors.New("missing column")
)

// Validation returns an error of kind ErrValidation with the given message.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound returns an error of kind ErrNotFound for the given entity.
func NotFound(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}
