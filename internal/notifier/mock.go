package notifier

import (
	"context"

	"echofeed-backend/internal/models"

	"github.com/rs/zerolog/log"
)

// LogNotifier implements the Notifier interface by writing submissions to
// the log. It is used when no email credential is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (l *LogNotifier) Publish(ctx context.Context, submission *models.Submission) error {
	log.Info().
		Str("submission_id", submission.ID).
		Int("rating", submission.Rating).
		Str("sentiment", string(submission.AIAnalysis.Sentiment)).
		Msg("new feedback received")
	return nil
}
