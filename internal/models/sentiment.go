// internal/models/sentiment.go
package models

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// Sentiment is the scored polarity of an opinion text. Score is in [-1,1],
// Confidence in [0,1].
type Sentiment struct {
	Label      SentimentLabel `json:"label"`
	Score      float64        `json:"score"`
	Confidence float64        `json:"confidence"`
}

// NeutralSentiment is the safe default for empty or failed analysis.
func NeutralSentiment() Sentiment {
	return Sentiment{Label: SentimentNeutral}
}
