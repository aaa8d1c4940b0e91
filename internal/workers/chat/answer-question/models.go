// internal/workers/chat/answer-question/models.go
package answerquestion

import (
	"time"

	"rural-assist/internal/models"
)

type Input struct {
	Question  string                 `json:"question"`
	Language  string                 `json:"language,omitempty"`
	Context   map[string]interface{} `json:"context,omitempty"`
	SessionID string                 `json:"session_id,omitempty"`
	UserID    string                 `json:"user_id,omitempty"`
}

// Output is the chat reply. Field names are part of the public contract.
type Output struct {
	Response    string                 `json:"response"`
	Intent      models.IntentName      `json:"intent"`
	Confidence  float64                `json:"confidence"`
	DataSource  models.Source          `json:"data_source"`
	Language    models.Language        `json:"language"`
	Suggestions []string               `json:"suggestions"`
	Metadata    map[string]interface{} `json:"metadata"`
	Timestamp   time.Time              `json:"timestamp"`
}

// IntentInfo describes one intent for the intents listing.
type IntentInfo struct {
	Name        models.IntentName `json:"name"`
	Description string            `json:"description"`
	Examples    []string          `json:"examples"`
}
