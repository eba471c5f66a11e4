package sqlite

import (
	"context"
	"errors"
	"time"

	"github.com/mattn/go-sqlite3"
)

// RetryPolicy bounds how often a write is retried when the store is locked
// by another connection.
type RetryPolicy struct {
	Attempts int           // retries after the first try
	Backoff  time.Duration // multiplied by the attempt number
}

// DefaultRetryPolicy is used by repositories built without an explicit policy.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, Backoff: 50 * time.Millisecond}

// isBusy reports whether err is transient lock contention.
func isBusy(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}

// withRetry runs fn, running it again while it fails with lock contention,
// at most p.Attempts more times. fn must leave nothing behind when it fails.
func withRetry(ctx context.Context, p RetryPolicy, fn func() error) error {
	err := fn()
	for attempt := 1; attempt <= p.Attempts && isBusy(err); attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * p.Backoff):
		}
		err = fn()
	}
	return err
}
