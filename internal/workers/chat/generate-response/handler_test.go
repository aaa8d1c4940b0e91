package generateresponse

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rural-assist/internal/common/config"
	"rural-assist/internal/common/logger"
	"rural-assist/internal/models"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	cfg := LoadConfig()
	cfg.RandomSeed = 7
	h, err := NewHandler(cfg, nil, logger.NewTestLogger(t))
	require.NoError(t, err)
	return h
}

// ==========================
// Execute
// ==========================

func TestHandler_Execute_FromVariables(t *testing.T) {
	h := newTestHandler(t)

	vars := `{
		"intent": {"name": "ask_pincode_help", "confidence": 0.4, "entities": {"pincode": "110001"}},
		"result": {
			"type": "pincode_info",
			"source": "mock",
			"data": {"pincode": "110001", "post_office": "Connaught Place", "district": "New Delhi", "state": "Delhi", "region": "Delhi"}
		},
		"language": "english"
	}`
	var input Input
	require.NoError(t, json.Unmarshal([]byte(vars), &input))

	out, err := h.Execute(context.Background(), &input)

	require.NoError(t, err)
	assert.Equal(t, models.SourceMock, out.Source)
	assert.Equal(t, models.LanguageEnglish, out.Language)
	assert.Contains(t, out.Message, "110001")
	assert.True(t, strings.HasSuffix(out.Message, h.Generator().Table().MockDisclaimer(models.LanguageEnglish)))
	assert.Equal(t, "New Delhi", out.Metadata["district"])
}

func TestHandler_Execute_InvalidInput(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Execute(context.Background(), nil)
	assert.Error(t, err)

	_, err = h.Execute(context.Background(), &Input{})
	assert.Error(t, err)
}

func TestHandler_Execute_NormalizesLanguage(t *testing.T) {
	h := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		Intent:   models.Intent{Name: models.IntentFallback},
		Result:   models.DataSourceResult{Type: models.ResultFallback, Source: models.SourceFallback},
		Language: "Klingon",
	})

	require.NoError(t, err)
	assert.Equal(t, models.LanguageEnglish, out.Language)
	assert.Equal(t, models.SourceFallback, out.Source)
	assert.Equal(t, "intent_not_handled", out.Metadata["fallback_reason"])
}

func TestNewHandler_RejectsBadTable(t *testing.T) {
	_, err := LoadTemplateTable([]byte(`{"languages": {}}`))
	require.Error(t, err)

	table, err := DefaultTemplateTable()
	require.NoError(t, err)
	h, err := NewHandler(LoadConfig(), table, logger.NewTestLogger(t))
	require.NoError(t, err)
	assert.Same(t, table, h.Generator().Table())
}

func TestConfigFromApp(t *testing.T) {
	app := &config.Config{
		Responses: config.ResponsesConfig{RandomSeed: 99},
		Workers:   map[string]config.WorkerConfig{TaskType: {Timeout: 1500}},
	}

	c := ConfigFromApp(app)

	assert.Equal(t, int64(99), c.RandomSeed)
	assert.Equal(t, 1500*time.Millisecond, c.Timeout)
	assert.Equal(t, LoadConfig(), ConfigFromApp(nil))
}
