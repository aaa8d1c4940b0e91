package dto

import (
	"rural-assist/internal/models"
	submitsurvey "rural-assist/internal/workers/survey/submit-survey"
)

// StartSurveyRequest is the optional body of POST /survey/start.
type StartSurveyRequest = submitsurvey.StartInput

// StatsQuery filters GET /survey/stats.
type StatsQuery struct {
	District string `form:"district"`
	State    string `form:"state"`
}

// RecentQuery filters GET /survey/recent.
type RecentQuery struct {
	Limit    int    `form:"limit"`
	District string `form:"district"`
}

// ExportQuery filters GET /survey/export.
type ExportQuery struct {
	Format   string `form:"format"`
	District string `form:"district"`
	State    string `form:"state"`
}

// RecentResponse wraps the anonymized survey list.
type RecentResponse struct {
	RecentSurveys []models.SurveySummary `json:"recent_surveys"`
}
