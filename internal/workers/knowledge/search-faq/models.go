// internal/workers/knowledge/search-faq/models.go
package searchfaq

import "rural-assist/internal/models"

type Input struct {
	Question string `json:"question"`
}

type Output struct {
	Result models.DataSourceResult `json:"result"`
}

// faqDocument is the indexed shape of one FAQ entry.
type faqDocument struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Category string   `json:"category"`
	Keywords []string `json:"keywords,omitempty"`
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Score  float64     `json:"_score"`
			Source faqDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}
