// internal/workers/survey/submit-survey/store.go
package submitsurvey

import (
	"context"
	"database/sql"
	"strings"

	"rural-assist/internal/models"
)

const insertSurvey = `
	INSERT INTO surveys (
		id, user_pincode, village_name, district_name, state_name,
		mla_name, mp_name,
		mla_opinion_text, mla_opinion_sentiment, mla_sentiment_score,
		mp_opinion_text, mp_opinion_sentiment, mp_sentiment_score,
		satisfaction_score, preferred_language, channel, consent,
		latitude, longitude, timestamp
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

// Store writes surveys to postgres.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Insert(ctx context.Context, sv *models.Survey) error {
	_, err := s.db.ExecContext(ctx, insertSurvey,
		sv.ID,
		sv.UserPincode,
		nullString(sv.VillageName),
		nullString(sv.DistrictName),
		nullString(sv.StateName),
		nullString(sv.MLAName),
		nullString(sv.MPName),
		nullString(sv.MLAOpinionText),
		sv.MLAOpinionSentiment,
		sv.MLASentimentScore,
		nullString(sv.MPOpinionText),
		sv.MPOpinionSentiment,
		sv.MPSentimentScore,
		sv.SatisfactionScore,
		string(sv.PreferredLanguage),
		string(sv.Channel),
		sv.Consent,
		sv.Latitude,
		sv.Longitude,
		sv.Timestamp,
	)
	return err
}

func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}
