// internal/workers/chat/resolve-data/models.go
package resolvedata

import "rural-assist/internal/models"

type Input struct {
	Intent   models.IntentName      `json:"intent"`
	Entities models.Entities        `json:"entities,omitempty"`
	Question string                 `json:"question,omitempty"`
	Context  map[string]interface{} `json:"context,omitempty"`
}

type Output struct {
	Result     models.DataSourceResult `json:"result"`
	DataSource models.Source           `json:"dataSource"`
}
