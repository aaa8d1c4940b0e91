// internal/models/survey.go
package models

import "time"

// Survey is a stored opinion submission together with its computed sentiment.
type Survey struct {
	ID                  string          `json:"id" db:"id"`
	UserPincode         string          `json:"user_pincode" db:"user_pincode"`
	VillageName         string          `json:"village_name,omitempty" db:"village_name"`
	DistrictName        string          `json:"district_name,omitempty" db:"district_name"`
	StateName           string          `json:"state_name,omitempty" db:"state_name"`
	MLAName             string          `json:"mla_name,omitempty" db:"mla_name"`
	MPName              string          `json:"mp_name,omitempty" db:"mp_name"`
	MLAOpinionText      string          `json:"mla_opinion_text,omitempty" db:"mla_opinion_text"`
	MLAOpinionSentiment *SentimentLabel `json:"mla_opinion_sentiment,omitempty" db:"mla_opinion_sentiment"`
	MLASentimentScore   *float64        `json:"mla_sentiment_score,omitempty" db:"mla_sentiment_score"`
	MPOpinionText       string          `json:"mp_opinion_text,omitempty" db:"mp_opinion_text"`
	MPOpinionSentiment  *SentimentLabel `json:"mp_opinion_sentiment,omitempty" db:"mp_opinion_sentiment"`
	MPSentimentScore    *float64        `json:"mp_sentiment_score,omitempty" db:"mp_sentiment_score"`
	SatisfactionScore   *int            `json:"satisfaction_score,omitempty" db:"satisfaction_score"`
	PreferredLanguage   Language        `json:"preferred_language" db:"preferred_language"`
	Channel             Channel         `json:"channel" db:"channel"`
	Consent             bool            `json:"consent" db:"consent"`
	Latitude            *float64        `json:"latitude,omitempty" db:"latitude"`
	Longitude           *float64        `json:"longitude,omitempty" db:"longitude"`
	Timestamp           time.Time       `json:"timestamp" db:"timestamp"`
}

// HasNegativeOpinion reports whether either representative received a
// negative opinion.
func (s *Survey) HasNegativeOpinion() bool {
	return (s.MLAOpinionSentiment != nil && *s.MLAOpinionSentiment == SentimentNegative) ||
		(s.MPOpinionSentiment != nil && *s.MPOpinionSentiment == SentimentNegative)
}

// SurveyStats aggregates surveys for a district/state filter.
type SurveyStats struct {
	TotalSurveys             int            `json:"total_surveys"`
	MLASentimentDistribution map[string]int `json:"mla_sentiment_distribution"`
	MPSentimentDistribution  map[string]int `json:"mp_sentiment_distribution"`
	AverageSatisfactionScore float64        `json:"average_satisfaction_score"`
	LanguageDistribution     map[string]int `json:"language_distribution"`
	ChannelDistribution      map[string]int `json:"channel_distribution"`
	DistrictFilter           string         `json:"district_filter,omitempty"`
	StateFilter              string         `json:"state_filter,omitempty"`
	Timestamp                time.Time      `json:"timestamp"`
}

// SurveySubmission is a citizen's completed survey as received.
type SurveySubmission struct {
	UserPincode       string   `json:"user_pincode"`
	VillageName       string   `json:"village_name,omitempty"`
	DistrictName      string   `json:"district_name,omitempty"`
	StateName         string   `json:"state_name,omitempty"`
	MLAName           string   `json:"mla_name,omitempty"`
	MPName            string   `json:"mp_name,omitempty"`
	MLAOpinionText    string   `json:"mla_opinion_text,omitempty"`
	MPOpinionText     string   `json:"mp_opinion_text,omitempty"`
	SatisfactionScore *int     `json:"satisfaction_score,omitempty"`
	PreferredLanguage string   `json:"preferred_language,omitempty"`
	Channel           string   `json:"channel,omitempty"`
	Consent           *bool    `json:"consent,omitempty"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
}

// SurveyResponse acknowledges a stored survey.
type SurveyResponse struct {
	Success      bool            `json:"success"`
	Message      string          `json:"message"`
	SurveyID     string          `json:"survey_id,omitempty"`
	MLASentiment *SentimentLabel `json:"mla_sentiment,omitempty"`
	MPSentiment  *SentimentLabel `json:"mp_sentiment,omitempty"`
	Language     Language        `json:"language"`
	NextSteps    []string        `json:"next_steps"`
	Timestamp    time.Time       `json:"timestamp"`
}

// SurveyStep is one question of the survey flow.
type SurveyStep struct {
	Step     int    `json:"step"`
	Question string `json:"question"`
	Type     string `json:"type"`
	Scale    string `json:"scale,omitempty"`
	Required bool   `json:"required"`
}

// SurveyIntro opens a survey session.
type SurveyIntro struct {
	Message  string       `json:"message"`
	Language Language     `json:"language"`
	Channel  Channel      `json:"channel"`
	Steps    []SurveyStep `json:"steps"`
}

// SurveySummary is the anonymized view of a recent survey. Names and
// opinion text are never included.
type SurveySummary struct {
	ID                string          `json:"id"`
	District          string          `json:"district,omitempty"`
	State             string          `json:"state,omitempty"`
	MLASentiment      *SentimentLabel `json:"mla_sentiment"`
	MPSentiment       *SentimentLabel `json:"mp_sentiment"`
	SatisfactionScore *int            `json:"satisfaction_score"`
	Language          string          `json:"language"`
	Channel           string          `json:"channel"`
	Timestamp         time.Time       `json:"timestamp"`
}

// SurveyExportRecord is one anonymized row of a survey export.
type SurveyExportRecord struct {
	SurveyID          string          `json:"survey_id"`
	Pincode           string          `json:"pincode"`
	District          string          `json:"district,omitempty"`
	State             string          `json:"state,omitempty"`
	MLASentiment      *SentimentLabel `json:"mla_sentiment"`
	MLASentimentScore *float64        `json:"mla_sentiment_score"`
	MPSentiment       *SentimentLabel `json:"mp_sentiment"`
	MPSentimentScore  *float64        `json:"mp_sentiment_score"`
	SatisfactionScore *int            `json:"satisfaction_score"`
	Language          string          `json:"language"`
	Channel           string          `json:"channel"`
	Timestamp         time.Time       `json:"timestamp"`
}

// SurveyFilter narrows survey queries. Matching is case-insensitive and
// partial.
type SurveyFilter struct {
	District string `json:"district,omitempty"`
	State    string `json:"state,omitempty"`
}
