package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"echofeed-backend/internal/models"

	"github.com/rs/zerolog/log"
)

// Analyzer enriches a submission with an AI-generated analysis. It never
// fails outward: any provider or parse failure degrades to the fixed
// fallback result so ingestion is never blocked on AI availability.
type Analyzer struct {
	completer Completer // nil when no API key is configured
	retrier   *Retrier
}

// NewAnalyzer creates an Analyzer. A nil completer disables enrichment
// entirely — every Analyze call returns the fallback immediately.
func NewAnalyzer(completer Completer, retrier *Retrier) *Analyzer {
	if retrier == nil {
		retrier = NewRetrier(DefaultRetryConfig())
	}
	return &Analyzer{completer: completer, retrier: retrier}
}

// Enabled reports whether a provider is configured.
func (a *Analyzer) Enabled() bool { return a.completer != nil }

// Analyze produces the AnalysisResult for one submission.
func (a *Analyzer) Analyze(ctx context.Context, rating int, reviewText string) models.AnalysisResult {
	if a.completer == nil {
		return FallbackAnalysis()
	}

	instruction := fmt.Sprintf(analysisInstruction, rating, reviewText)
	raw, err := a.retrier.Do(ctx, func(ctx context.Context) (string, error) {
		return a.completer.Complete(ctx, instruction)
	})
	if err != nil {
		log.Error().Err(err).Msg("ai analysis failed, using fallback")
		return FallbackAnalysis()
	}

	result, err := parseAnalysis(raw)
	if err != nil {
		log.Error().Err(err).Msg("malformed ai analysis payload, using fallback")
		return FallbackAnalysis()
	}
	return result
}

// FallbackAnalysis is the fixed, input-independent result substituted when
// enrichment cannot complete.
func FallbackAnalysis() models.AnalysisResult {
	return models.AnalysisResult{
		UserResponse:       "Thank you for your feedback! We appreciate you taking the time to share your thoughts.",
		Summary:            "AI analysis unavailable at this moment.",
		RecommendedActions: []string{"Check API Quota/Connection", "Review logs manually"},
		Sentiment:          models.SentimentNeutral,
	}
}

func parseAnalysis(raw string) (models.AnalysisResult, error) {
	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &result); err != nil {
		return models.AnalysisResult{}, fmt.Errorf("failed to decode analysis payload: %w", err)
	}

	// Tolerate case drift from the provider before rejecting the value.
	switch strings.ToLower(string(result.Sentiment)) {
	case "positive":
		result.Sentiment = models.SentimentPositive
	case "neutral":
		result.Sentiment = models.SentimentNeutral
	case "negative":
		result.Sentiment = models.SentimentNegative
	}
	if !result.Sentiment.Valid() {
		return models.AnalysisResult{}, fmt.Errorf("unknown sentiment %q", result.Sentiment)
	}

	// Provider output is passed through untrimmed; only nil is normalized.
	if result.RecommendedActions == nil {
		result.RecommendedActions = []string{}
	}
	return result, nil
}

// stripCodeFence removes a markdown fence some models wrap JSON answers in.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
