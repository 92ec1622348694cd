package store

import (
	"context"
	"errors"

	"echofeed-backend/internal/models"
)

// ErrNotFound is returned by UpdatePartial for an unknown submission id.
var ErrNotFound = errors.New("submission not found")

// Fields is a partial update: supplied fields overwrite, others are
// untouched. Keys use the persisted field names (e.g. "helpfulResponse").
type Fields map[string]any

// Store is the submission record store. Two interchangeable backends exist
// (MongoDB and in-memory); the choice is made once at startup and the
// handle is injected wherever submissions are read or written.
type Store interface {
	// Insert persists s, assigning its server-side timestamp if unset.
	Insert(ctx context.Context, s *models.Submission) error
	// ListAll returns every submission ordered by descending timestamp.
	ListAll(ctx context.Context) ([]models.Submission, error)
	// UpdatePartial merges fields into the submission with the given id and
	// returns the updated record, or ErrNotFound for an unknown id.
	UpdatePartial(ctx context.Context, id string, fields Fields) (*models.Submission, error)
}
