package analyzesentiment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rural-assist/internal/common/config"
	"rural-assist/internal/common/logger"
	"rural-assist/internal/lexicon"
	"rural-assist/internal/models"
)

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), lexicon.MustNew(), logger.NewTestLogger(t))
}

func TestHandler_Execute_Single(t *testing.T) {
	h := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{Text: "The MLA is doing good work", Explain: true})
	require.NoError(t, err)

	assert.Equal(t, models.LanguageEnglish, out.Language)
	require.NotNil(t, out.Sentiment)
	assert.Equal(t, models.SentimentPositive, out.Sentiment.Label)
	require.NotNil(t, out.Explanation)
	assert.NotEmpty(t, out.Explanation.ContributingFactors)
	assert.Nil(t, out.Summary)
}

func TestHandler_Execute_DetectsLanguage(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name     string
		input    *Input
		expected models.Language
	}{
		{"devanagari text", &Input{Text: "बहुत अच्छा"}, models.LanguageHindi},
		{"auto keyword", &Input{Text: "good", Language: "auto"}, models.LanguageEnglish},
		{"explicit language wins", &Input{Text: "बहुत अच्छा", Language: "telugu"}, models.LanguageTelugu},
		{"batch samples first text", &Input{Texts: []string{"నమస్కారం", "good"}}, models.LanguageTelugu},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.Execute(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out.Language)
		})
	}
}

func TestHandler_Execute_Batch(t *testing.T) {
	h := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		Texts:    []string{"excellent work", "pathetic", "fine"},
		Language: "english",
	})
	require.NoError(t, err)

	require.Len(t, out.Sentiments, 3)
	assert.Nil(t, out.Sentiment)
	require.NotNil(t, out.Summary)
	assert.Equal(t, 3, out.Summary.TotalCount)
	assert.Equal(t, 1, out.Summary.PositiveCount)
	assert.Equal(t, 1, out.Summary.NegativeCount)
	assert.Equal(t, 1, out.Summary.NeutralCount)
}

func TestHandler_Execute_NilInput(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Execute(context.Background(), nil)
	assert.Error(t, err)
}

func TestConfigFromApp(t *testing.T) {
	app := &config.Config{
		Sentiment: config.SentimentConfig{NeutralFloor: 0.2, BatchConcurrency: 2},
		Workers:   map[string]config.WorkerConfig{TaskType: {Timeout: 1500}},
	}

	c := ConfigFromApp(app)

	assert.Equal(t, 0.2, c.NeutralFloor)
	assert.Equal(t, 2, c.BatchConcurrency)
	assert.Equal(t, 1.5, c.IntensifierWeight)
	assert.Equal(t, 3, c.NegationWindow)
	assert.Equal(t, 1500*time.Millisecond, c.Timeout)
}
