// internal/workers/chat/generate-response/models.go
package generateresponse

import "rural-assist/internal/models"

type Input struct {
	Intent   models.Intent           `json:"intent"`
	Result   models.DataSourceResult `json:"result"`
	Language string                  `json:"language,omitempty"`
	Context  map[string]interface{}  `json:"context,omitempty"`
}

type Output struct {
	Message     string                 `json:"message"`
	Source      models.Source          `json:"source"`
	Suggestions []string               `json:"suggestions"`
	Metadata    map[string]interface{} `json:"metadata"`
	Language    models.Language        `json:"language"`
}
