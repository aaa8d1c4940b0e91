package submitsurvey

import "rural-assist/internal/models"

type Input = models.SurveySubmission

type Output = models.SurveyResponse

// StartInput opens a survey; both fields are optional.
type StartInput struct {
	Language string `json:"language,omitempty"`
	Channel  string `json:"channel,omitempty"`
}
