package models

// Sentiment is the closed classification an analysis assigns to a review.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// Valid reports whether s is one of the three known sentiment values.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// AnalysisResult is the structured AI output attached to every submission.
// All fields are always present after ingest — the fallback object is
// substituted whenever enrichment cannot complete.
type AnalysisResult struct {
	UserResponse       string    `bson:"userResponse" json:"userResponse"`
	Summary            string    `bson:"summary" json:"summary"`
	RecommendedActions []string  `bson:"recommendedActions" json:"recommendedActions"`
	Sentiment          Sentiment `bson:"sentiment" json:"sentiment"`
}

// Submission is one user-supplied rating+review plus its AI analysis and
// optional helpfulness vote. The id is an application-level key, not the
// database primary key.
type Submission struct {
	ID              string         `bson:"id" json:"id"`
	Rating          int            `bson:"rating" json:"rating"`
	ReviewText      string         `bson:"reviewText" json:"reviewText"`
	Timestamp       int64          `bson:"timestamp" json:"timestamp"` // ms since epoch, assigned at persist time
	AIAnalysis      AnalysisResult `bson:"aiAnalysis" json:"aiAnalysis"`
	HelpfulResponse *bool          `bson:"helpfulResponse" json:"helpfulResponse"`
}
