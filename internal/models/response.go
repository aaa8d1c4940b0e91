// internal/models/response.go
package models

// Response is the assembled reply for one question.
type Response struct {
	Message     string                 `json:"message"`
	Source      Source                 `json:"source"`
	Suggestions []string               `json:"suggestions"`
	Metadata    map[string]interface{} `json:"metadata"`
}
