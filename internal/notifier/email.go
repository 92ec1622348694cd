package notifier

import (
	"context"
	"fmt"
	"html"
	"strings"

	"echofeed-backend/internal/models"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"
)

// EmailNotifier sends a short email to the team inbox for every new
// submission. Delivery is best-effort; callers fire it from a goroutine
// and swallow failures.
type EmailNotifier struct {
	client *resend.Client
	from   string
	to     string
}

func NewEmailNotifier(apiKey, from, to string) *EmailNotifier {
	return &EmailNotifier{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     to,
	}
}

func (n *EmailNotifier) Publish(ctx context.Context, submission *models.Submission) error {
	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{n.to},
		Subject: fmt.Sprintf("New feedback: %s", stars(submission.Rating)),
		Html: fmt.Sprintf(`
			<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
				<h2 style="color: #333;">New Feedback Received</h2>
				<p><strong>Rating:</strong> %s</p>
				<p><strong>Review:</strong> %s</p>
				<p><strong>Sentiment:</strong> %s</p>
				<p style="color: #888; font-size: 14px;">%s</p>
			</div>
		`,
			stars(submission.Rating),
			html.EscapeString(submission.ReviewText),
			submission.AIAnalysis.Sentiment,
			html.EscapeString(submission.AIAnalysis.Summary),
		),
	}

	sent, err := n.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}
	log.Info().Str("email_id", sent.Id).Str("submission_id", submission.ID).Msg("feedback notification sent")
	return nil
}

func stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	return strings.Repeat("⭐", rating)
}
