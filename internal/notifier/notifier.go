package notifier

import (
	"context"

	"echofeed-backend/internal/models"
)

// Notifier publishes a notification for a newly ingested submission.
// This abstraction allows swapping the log-only notifier with the email
// integration without refactoring.
type Notifier interface {
	Publish(ctx context.Context, submission *models.Submission) error
}
