// internal/workers/chat/analyze-sentiment/models.go
package analyzesentiment

import "rural-assist/internal/models"

// Input carries either one text or a batch. An empty language is detected
// from the text.
type Input struct {
	Text     string   `json:"text,omitempty"`
	Texts    []string `json:"texts,omitempty"`
	Language string   `json:"language,omitempty"`
	Explain  bool     `json:"explain,omitempty"`
}

type Output struct {
	Language    models.Language    `json:"language"`
	Sentiment   *models.Sentiment  `json:"sentiment,omitempty"`
	Sentiments  []models.Sentiment `json:"sentiments,omitempty"`
	Summary     *Summary           `json:"summary,omitempty"`
	Explanation *Explanation       `json:"explanation,omitempty"`
}

type Summary struct {
	TotalCount         int     `json:"total_count"`
	PositiveCount      int     `json:"positive_count"`
	NegativeCount      int     `json:"negative_count"`
	NeutralCount       int     `json:"neutral_count"`
	PositivePercentage float64 `json:"positive_percentage"`
	NegativePercentage float64 `json:"negative_percentage"`
	NeutralPercentage  float64 `json:"neutral_percentage"`
	AverageScore       float64 `json:"average_score"`
	ConfidenceAverage  float64 `json:"confidence_average"`
}

// Factor is one word or phrase that moved the score.
type Factor struct {
	Word      string                `json:"word,omitempty"`
	Pattern   string                `json:"pattern,omitempty"`
	Sentiment models.SentimentLabel `json:"sentiment"`
	Type      string                `json:"type"`
	Context   string                `json:"context,omitempty"`
}

const (
	FactorLexical    = "lexical"
	FactorContextual = "contextual"
)

type Explanation struct {
	DetectedSentiment   models.SentimentLabel `json:"detected_sentiment"`
	Confidence          float64               `json:"confidence"`
	Score               float64               `json:"score"`
	ContributingFactors []Factor              `json:"contributing_factors"`
}
