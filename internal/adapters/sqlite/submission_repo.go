package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// SubmissionRepository implements secondary.SubmissionRepository with SQLite.
// Tokens are claimed by ReportRepository.Create.
type SubmissionRepository struct {
	db    *sql.DB
	retry RetryPolicy
}

// NewSubmissionRepository creates a new SQLite submission token repository.
func NewSubmissionRepository(db *sql.DB, retry RetryPolicy) *SubmissionRepository {
	return &SubmissionRepository{db: db, retry: retry}
}

// Issue stores a fresh, unused token.
func (r *SubmissionRepository) Issue(ctx context.Context, token, issuedAt string) error {
	err := withRetry(ctx, r.retry, func() error {
		_, err := r.db.ExecContext(ctx,
			"INSERT INTO report_submissions (token, issued_at) VALUES (?, ?)", token, issuedAt)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to issue submission token: %w", err)
	}
	return nil
}
