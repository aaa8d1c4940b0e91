package bootstrap

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rural-assist/internal/common/config"
	"rural-assist/internal/common/database"
	"rural-assist/internal/common/logger"
	"rural-assist/internal/models"
	answerquestion "rural-assist/internal/workers/chat/answer-question"
)

// ==========================
// Test Helper Functions
// ==========================

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Sources.RateLimitPerMinute = 100
	cfg.Sources.Timeout = 2000
	cfg.Responses.RandomSeed = 7
	cfg.Cache.Enabled = true
	cfg.Cache.TTL = 60000
	cfg.Session.TTL = 60000
	return cfg
}

func testClients(t *testing.T) (Clients, *miniredis.Miniredis) {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	mr := miniredis.RunT(t)

	c := Clients{
		Postgres: database.NewPostgresFromDB(db),
		Redis:    database.NewRedis(config.RedisConfig{Address: mr.Addr()}),
	}
	t.Cleanup(c.Close)
	return c, mr
}

// ==========================
// Wiring
// ==========================

func TestNew_RegistersEveryJobType(t *testing.T) {
	clients, _ := testClients(t)

	app, err := New(testConfig(), clients, nil, logger.NewTestLogger(t))
	require.NoError(t, err)

	var types []string
	for taskType := range app.JobHandlers() {
		types = append(types, taskType)
	}
	sort.Strings(types)

	assert.Equal(t, []string{
		"analyze-sentiment", "answer-question", "detect-intent", "generate-response",
		"resolve-data", "search-faq", "submit-survey", "survey-stats",
	}, types)
}

func TestNew_WithoutPostgres(t *testing.T) {
	mr := miniredis.RunT(t)
	clients := Clients{Redis: database.NewRedis(config.RedisConfig{Address: mr.Addr()})}
	defer clients.Close()

	app, err := New(testConfig(), clients, nil, logger.NewTestLogger(t))
	require.NoError(t, err)

	assert.Nil(t, app.SubmitSurvey)
	assert.Nil(t, app.SurveyStats)
	assert.Len(t, app.JobHandlers(), 6)
}

func TestApp_AnswersAndKeepsSession(t *testing.T) {
	clients, mr := testClients(t)
	app, err := New(testConfig(), clients, nil, logger.NewTestLogger(t))
	require.NoError(t, err)

	out, err := app.Orchestrator.Answer(context.Background(), &answerquestion.Input{
		Question:  "Who is my MLA?",
		Context:   map[string]interface{}{"district": "New Delhi"},
		SessionID: "sess-1",
	})

	require.NoError(t, err)
	assert.Equal(t, models.IntentSurveyMLA, out.Intent)
	assert.Equal(t, models.SourceMock, out.DataSource)
	assert.NotEmpty(t, out.Response)
	assert.NotEmpty(t, mr.Keys())
}

func TestApp_SupportedIntents(t *testing.T) {
	clients, _ := testClients(t)
	app, err := New(testConfig(), clients, nil, logger.NewTestLogger(t))
	require.NoError(t, err)

	intents := app.SupportedIntents()

	assert.Len(t, intents, 7)
	for _, info := range intents {
		assert.NotEmpty(t, info.Examples, info.Name)
	}
}

// ==========================
// Clients
// ==========================

func TestClients_PingersAndWaitReady(t *testing.T) {
	mr := miniredis.RunT(t)
	clients := Clients{Redis: database.NewRedis(config.RedisConfig{Address: mr.Addr()})}
	defer clients.Close()

	assert.Equal(t, []string{"redis"}, database.Names(clients.Pingers()...))

	policy := database.RetryPolicy{Attempts: 1, Base: time.Millisecond}
	require.NoError(t, clients.WaitReady(context.Background(), policy, logger.NewTestLogger(t)))

	mr.Close()
	assert.Error(t, clients.WaitReady(context.Background(), policy, logger.NewTestLogger(t)))
}

func TestConnect_OptionalStores(t *testing.T) {
	cfg := testConfig()
	cfg.Database.Postgres = config.PostgresConfig{Host: "localhost", Port: 5432, Database: "rural", User: "rural", SSLMode: "disable"}
	cfg.Database.Redis.Address = "localhost:6379"

	clients, err := Connect(context.Background(), cfg, logger.NewTestLogger(t))
	require.NoError(t, err)
	defer clients.Close()

	assert.NotNil(t, clients.Postgres)
	assert.NotNil(t, clients.Redis)
	assert.Nil(t, clients.Elasticsearch)
	assert.Nil(t, clients.SNS)
	assert.Nil(t, clients.SES)
	assert.Len(t, clients.Pingers(), 2)
}
