// internal/workers/chat/detect-intent/models.go
package detectintent

import "rural-assist/internal/models"

type Input struct {
	Text     string                 `json:"text"`
	Context  map[string]interface{} `json:"context,omitempty"`
	Language string                 `json:"language,omitempty"`
}

type Output struct {
	Intent                models.IntentName `json:"intent"`
	Confidence            float64           `json:"confidence"`
	Entities              models.Entities   `json:"entities"`
	Valid                 bool              `json:"valid"`
	MissingEntities       []string          `json:"missingEntities"`
	ClarificationQuestion string            `json:"clarificationQuestion,omitempty"`
}

// IntentStat describes one intent's vocabulary size.
type IntentStat struct {
	KeywordsCount int `json:"keywords_count"`
	PatternsCount int `json:"patterns_count"`
	EntitiesCount int `json:"entities_count"`
}

type Statistics struct {
	TotalIntents        int                              `json:"total_intents"`
	Intents             map[models.IntentName]IntentStat `json:"intents"`
	ConfidenceThreshold float64                          `json:"confidence_threshold"`
	SupportedLanguages  []models.Language                `json:"supported_languages"`
}
