package surveystats

import (
	"context"
	"database/sql/driver"
	"encoding/csv"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rural-assist/internal/common/config"
	"rural-assist/internal/common/errors"
	"rural-assist/internal/common/logger"
	"rural-assist/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

var ts = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewHandler(LoadConfig(), db, logger.NewTestLogger(t)), mock
}

func statsRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"mla_opinion_sentiment", "mp_opinion_sentiment", "satisfaction_score", "preferred_language", "channel",
	}).
		AddRow("positive", "negative", 8, "english", "web").
		AddRow("negative", nil, 5, "hindi", "sms").
		AddRow(nil, "neutral", nil, "hindi", "web").
		AddRow("mixed", "positive", 6, nil, nil)
}

func exportRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_pincode", "district_name", "state_name",
		"mla_opinion_sentiment", "mla_sentiment_score",
		"mp_opinion_sentiment", "mp_sentiment_score",
		"satisfaction_score", "preferred_language", "channel", "timestamp",
	}).
		AddRow("s-1", "110001", "New Delhi", "Delhi", "positive", 0.5, nil, nil, 9, "english", "web", ts).
		AddRow("s-2", "560001", nil, "Karnataka", nil, nil, "negative", -0.75, nil, "telugu", "whatsapp", ts.Add(time.Hour))
}

// ==========================
// Stats
// ==========================

func TestHandler_Stats(t *testing.T) {
	h, mock := newTestHandler(t)
	mock.ExpectQuery(`SELECT mla_opinion_sentiment, mp_opinion_sentiment, satisfaction_score, preferred_language, channel FROM surveys WHERE district_name ILIKE \$1 AND state_name ILIKE \$2`).
		WithArgs("%Delhi%", "%Delhi%").
		WillReturnRows(statsRows())

	stats, err := h.Stats(context.Background(), models.SurveyFilter{District: "Delhi", State: "Delhi"})

	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalSurveys)
	assert.Equal(t, map[string]int{"positive": 1, "negative": 1, "neutral": 0}, stats.MLASentimentDistribution)
	assert.Equal(t, map[string]int{"positive": 1, "negative": 1, "neutral": 1}, stats.MPSentimentDistribution)
	assert.InDelta(t, 6.33, stats.AverageSatisfactionScore, 1e-9)
	assert.Equal(t, map[string]int{"english": 1, "hindi": 2}, stats.LanguageDistribution)
	assert.Equal(t, map[string]int{"web": 2, "sms": 1}, stats.ChannelDistribution)
	assert.Equal(t, "Delhi", stats.DistrictFilter)
	assert.False(t, stats.Timestamp.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Stats_Empty(t *testing.T) {
	h, mock := newTestHandler(t)
	mock.ExpectQuery(`FROM surveys`).WillReturnRows(sqlmock.NewRows([]string{
		"mla_opinion_sentiment", "mp_opinion_sentiment", "satisfaction_score", "preferred_language", "channel",
	}))

	stats, err := h.Stats(context.Background(), models.SurveyFilter{})

	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalSurveys)
	assert.Equal(t, 0.0, stats.AverageSatisfactionScore)
	assert.Equal(t, map[string]int{"positive": 0, "negative": 0, "neutral": 0}, stats.MLASentimentDistribution)
	assert.Empty(t, stats.LanguageDistribution)
}

func TestHandler_Stats_QueryFails(t *testing.T) {
	h, mock := newTestHandler(t)
	mock.ExpectQuery(`FROM surveys`).WillReturnError(stderrors.New("relation \"surveys\" does not exist"))

	_, err := h.Stats(context.Background(), models.SurveyFilter{})

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDatabaseQueryFailed, errors.AsStandardError(err).Code)
}

// ==========================
// Recent
// ==========================

func TestHandler_Recent(t *testing.T) {
	tests := []struct {
		name      string
		district  string
		limit     int
		query     string
		args      []driver.Value
		wantCount int
	}{
		{
			name:  "default limit",
			query: `FROM surveys ORDER BY timestamp DESC LIMIT \$1`,
			args:  []driver.Value{10},
		},
		{
			name:     "district and limit",
			district: "Bangalore",
			limit:    3,
			query:    `FROM surveys WHERE district_name ILIKE \$1 ORDER BY timestamp DESC LIMIT \$2`,
			args:     []driver.Value{"%Bangalore%", 3},
		},
		{
			name:  "limit clamped",
			limit: 1000,
			query: `LIMIT \$1`,
			args:  []driver.Value{100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mock := newTestHandler(t)
			rows := sqlmock.NewRows([]string{
				"id", "district_name", "state_name", "mla_opinion_sentiment", "mp_opinion_sentiment",
				"satisfaction_score", "preferred_language", "channel", "timestamp",
			}).AddRow("s-9", "Bangalore Urban", "Karnataka", "positive", nil, 7, "english", "web", ts)
			mock.ExpectQuery(tt.query).WithArgs(tt.args...).WillReturnRows(rows)

			recent, err := h.Recent(context.Background(), tt.district, tt.limit)

			require.NoError(t, err)
			require.Len(t, recent, 1)
			assert.Equal(t, "s-9", recent[0].ID)
			require.NotNil(t, recent[0].MLASentiment)
			assert.Equal(t, models.SentimentPositive, *recent[0].MLASentiment)
			assert.Nil(t, recent[0].MPSentiment)
			assert.Equal(t, 7, *recent[0].SatisfactionScore)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSurveySummary_OmitsPersonalData(t *testing.T) {
	raw, err := json.Marshal(models.SurveySummary{ID: "s-1", Timestamp: ts})
	require.NoError(t, err)

	for _, field := range []string{"mla_name", "mp_name", "mla_opinion_text", "user_pincode", "village_name"} {
		assert.NotContains(t, string(raw), field)
	}
}

// ==========================
// Export
// ==========================

func TestHandler_Export_JSON(t *testing.T) {
	h, mock := newTestHandler(t)
	mock.ExpectQuery(`FROM surveys WHERE state_name ILIKE \$1 ORDER BY timestamp`).
		WithArgs("%Karnataka%").
		WillReturnRows(exportRows())

	contentType, body, err := h.Export(context.Background(), models.SurveyFilter{State: "Karnataka"}, "")

	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)

	var doc ExportDocument
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Equal(t, 2, doc.TotalRecords)
	assert.Equal(t, "s-1", doc.Data[0].SurveyID)
	assert.InDelta(t, 0.5, *doc.Data[0].MLASentimentScore, 1e-9)
	assert.Nil(t, doc.Data[1].SatisfactionScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Export_CSV(t *testing.T) {
	h, mock := newTestHandler(t)
	mock.ExpectQuery(`FROM surveys ORDER BY timestamp`).WillReturnRows(exportRows())

	contentType, body, err := h.Export(context.Background(), models.SurveyFilter{}, "CSV")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(contentType, "text/csv"))

	records, err := csv.NewReader(strings.NewReader(string(body))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, exportColumns, records[0])
	assert.Equal(t, []string{"s-1", "110001", "New Delhi", "Delhi", "positive", "0.5", "", "", "9", "english", "web", "2024-03-01T09:00:00Z"}, records[1])
	assert.Equal(t, "-0.75", records[2][7])
	assert.Equal(t, "", records[2][8])
}

func TestHandler_Export_RejectsFormat(t *testing.T) {
	h, mock := newTestHandler(t)

	_, _, err := h.Export(context.Background(), models.SurveyFilter{}, "xml")

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.AsStandardError(err).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Execute
// ==========================

func TestHandler_Execute(t *testing.T) {
	t.Run("stats", func(t *testing.T) {
		h, mock := newTestHandler(t)
		mock.ExpectQuery(`FROM surveys`).WillReturnRows(statsRows())

		out, err := h.Execute(context.Background(), &Input{QueryType: string(QueryTypeStats)})

		require.NoError(t, err)
		assert.Equal(t, 4, out.RowCount)
		assert.GreaterOrEqual(t, out.QueryExecutionTime, int64(0))
		assert.IsType(t, &models.SurveyStats{}, out.Data)
	})

	t.Run("csv export", func(t *testing.T) {
		h, mock := newTestHandler(t)
		mock.ExpectQuery(`FROM surveys`).WillReturnRows(exportRows())

		out, err := h.Execute(context.Background(), &Input{QueryType: string(QueryTypeExport), Format: "csv"})

		require.NoError(t, err)
		assert.Equal(t, 2, out.RowCount)
		body, ok := out.Data.(string)
		require.True(t, ok)
		assert.True(t, strings.HasPrefix(body, "survey_id,pincode"))
	})

	t.Run("unknown query type", func(t *testing.T) {
		h, _ := newTestHandler(t)

		_, err := h.Execute(context.Background(), &Input{QueryType: "drop_tables"})

		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeInvalidInput, errors.AsStandardError(err).Code)
	})

	t.Run("bad export format", func(t *testing.T) {
		h, mock := newTestHandler(t)

		_, err := h.Execute(context.Background(), &Input{QueryType: string(QueryTypeExport), Format: "pdf"})

		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nil input", func(t *testing.T) {
		h, _ := newTestHandler(t)

		_, err := h.Execute(context.Background(), nil)

		assert.Error(t, err)
	})
}

func TestConfigFromApp(t *testing.T) {
	app := &config.Config{
		Survey:  config.SurveyConfig{RecentLimit: 25},
		Workers: map[string]config.WorkerConfig{TaskType: {Timeout: 800}},
	}

	c := ConfigFromApp(app)

	assert.Equal(t, 25, c.RecentLimit)
	assert.Equal(t, 800*time.Millisecond, c.Timeout)
	assert.Equal(t, LoadConfig(), ConfigFromApp(nil))
}
