// internal/workers/survey/survey-stats/queries/surveys.go
package queries

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"rural-assist/internal/models"
)

const (
	DefaultRecentLimit = 10
	MaxRecentLimit     = 100
)

// Stats aggregates surveys matching the filter.
func Stats(ctx context.Context, db *sql.DB, f models.SurveyFilter) (*models.SurveyStats, error) {
	clause, args := where(f)
	rows, err := db.QueryContext(ctx, `
		SELECT mla_opinion_sentiment, mp_opinion_sentiment, satisfaction_score,
		       preferred_language, channel
		FROM surveys`+clause, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &models.SurveyStats{
		MLASentimentDistribution: emptyDistribution(),
		MPSentimentDistribution:  emptyDistribution(),
		LanguageDistribution:     map[string]int{},
		ChannelDistribution:      map[string]int{},
		DistrictFilter:           f.District,
		StateFilter:              f.State,
	}

	var scoreSum, scoreCount int
	for rows.Next() {
		var mla, mp, lang, channel sql.NullString
		var score sql.NullInt64
		if err := rows.Scan(&mla, &mp, &score, &lang, &channel); err != nil {
			return nil, fmt.Errorf("scan survey: %w", err)
		}

		stats.TotalSurveys++
		countLabel(stats.MLASentimentDistribution, mla)
		countLabel(stats.MPSentimentDistribution, mp)
		if score.Valid && score.Int64 > 0 {
			scoreSum += int(score.Int64)
			scoreCount++
		}
		if lang.Valid && lang.String != "" {
			stats.LanguageDistribution[lang.String]++
		}
		if channel.Valid && channel.String != "" {
			stats.ChannelDistribution[channel.String]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if scoreCount > 0 {
		stats.AverageSatisfactionScore = math.Round(float64(scoreSum)/float64(scoreCount)*100) / 100
	}
	stats.Timestamp = time.Now().UTC()
	return stats, nil
}

func emptyDistribution() map[string]int {
	return map[string]int{
		string(models.SentimentPositive): 0,
		string(models.SentimentNegative): 0,
		string(models.SentimentNeutral):  0,
	}
}

// countLabel ignores labels outside the three known ones.
func countLabel(dist map[string]int, label sql.NullString) {
	if !label.Valid {
		return
	}
	if _, ok := dist[label.String]; ok {
		dist[label.String]++
	}
}

// ClampLimit bounds the number of recent surveys returned.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultRecentLimit
	case limit > MaxRecentLimit:
		return MaxRecentLimit
	default:
		return limit
	}
}

// Recent returns the newest surveys, anonymized.
func Recent(ctx context.Context, db *sql.DB, district string, limit int) ([]models.SurveySummary, error) {
	clause, args := where(models.SurveyFilter{District: district})
	args = append(args, ClampLimit(limit))

	rows, err := db.QueryContext(ctx, `
		SELECT id, district_name, state_name, mla_opinion_sentiment, mp_opinion_sentiment,
		       satisfaction_score, preferred_language, channel, timestamp
		FROM surveys`+clause+fmt.Sprintf(`
		ORDER BY timestamp DESC
		LIMIT $%d`, len(args)), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.SurveySummary{}
	for rows.Next() {
		var (
			s                      models.SurveySummary
			district, state        sql.NullString
			mla, mp, lang, channel sql.NullString
			score                  sql.NullInt64
		)
		if err := rows.Scan(&s.ID, &district, &state, &mla, &mp, &score, &lang, &channel, &s.Timestamp); err != nil {
			return nil, fmt.Errorf("scan survey: %w", err)
		}
		s.District = district.String
		s.State = state.String
		s.MLASentiment = labelPtr(mla)
		s.MPSentiment = labelPtr(mp)
		s.SatisfactionScore = intPtr(score)
		s.Language = lang.String
		s.Channel = channel.String
		out = append(out, s)
	}
	return out, rows.Err()
}

// Export returns every matching survey, anonymized, oldest first.
func Export(ctx context.Context, db *sql.DB, f models.SurveyFilter) ([]models.SurveyExportRecord, error) {
	clause, args := where(f)
	rows, err := db.QueryContext(ctx, `
		SELECT id, user_pincode, district_name, state_name,
		       mla_opinion_sentiment, mla_sentiment_score,
		       mp_opinion_sentiment, mp_sentiment_score,
		       satisfaction_score, preferred_language, channel, timestamp
		FROM surveys`+clause+`
		ORDER BY timestamp`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.SurveyExportRecord{}
	for rows.Next() {
		var (
			r                 models.SurveyExportRecord
			district, state   sql.NullString
			mla, mp           sql.NullString
			mlaScore, mpScore sql.NullFloat64
			score             sql.NullInt64
			lang, channel     sql.NullString
		)
		if err := rows.Scan(&r.SurveyID, &r.Pincode, &district, &state,
			&mla, &mlaScore, &mp, &mpScore,
			&score, &lang, &channel, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("scan survey: %w", err)
		}
		r.District = district.String
		r.State = state.String
		r.MLASentiment = labelPtr(mla)
		r.MLASentimentScore = floatPtr(mlaScore)
		r.MPSentiment = labelPtr(mp)
		r.MPSentimentScore = floatPtr(mpScore)
		r.SatisfactionScore = intPtr(score)
		r.Language = lang.String
		r.Channel = channel.String
		out = append(out, r)
	}
	return out, rows.Err()
}

func labelPtr(v sql.NullString) *models.SentimentLabel {
	if !v.Valid || v.String == "" {
		return nil
	}
	l := models.SentimentLabel(v.String)
	return &l
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
