package analyzesentiment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rural-assist/internal/common/logger"
	"rural-assist/internal/lexicon"
	"rural-assist/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestAnalyzer(t *testing.T) *Analyzer {
	return NewAnalyzer(LoadConfig(), lexicon.MustNew(), logger.NewTestLogger(t))
}

// ==========================
// Scoring
// ==========================

func TestAnalyzer_Analyze(t *testing.T) {
	a := newTestAnalyzer(t)

	tests := []struct {
		name       string
		text       string
		lang       models.Language
		label      models.SentimentLabel
		score      float64
		confidence float64
	}{
		{"plain positive", "The service is good", models.LanguageEnglish, models.SentimentPositive, 0.5, 0.5},
		{"negated positive", "This is not good", models.LanguageEnglish, models.SentimentNegative, -0.5, 0.5},
		{"trailing punctuation", "Great!", models.LanguageEnglish, models.SentimentPositive, 0.5, 0.5},
		{"lexical and context agree", "good service", models.LanguageEnglish, models.SentimentPositive, 1.0, 1.0},
		{"context phrase only", "not working", models.LanguageEnglish, models.SentimentNegative, -0.5, 0.5},
		{"neutral word", "It is okay", models.LanguageEnglish, models.SentimentNeutral, 0, 0.5},
		{"no sentiment words", "hello there", models.LanguageEnglish, models.SentimentNeutral, 0, 0},
		{"empty", "   ", models.LanguageEnglish, models.SentimentNeutral, 0, 0},
		{"intensifier tips the balance", "very good but bad", models.LanguageEnglish, models.SentimentPositive, 0.3, 0.1},
		{"tie prefers positive", "good but bad", models.LanguageEnglish, models.SentimentPositive, 0.25, 0},
		{"negator outside window", "not at all very good", models.LanguageEnglish, models.SentimentPositive, 0.5, 0.5},
		{"hindi", "बहुत अच्छा काम", models.LanguageHindi, models.SentimentPositive, 0.5, 0.5},
		{"unknown language uses english", "terrible", models.Language("french"), models.SentimentNegative, -0.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := a.Analyze(tt.text, tt.lang)

			assert.Equal(t, tt.label, s.Label)
			assert.InDelta(t, tt.score, s.Score, 1e-9)
			assert.InDelta(t, tt.confidence, s.Confidence, 1e-9)
		})
	}
}

func TestAnalyzer_Analyze_RecoversFromPanic(t *testing.T) {
	a := NewAnalyzer(LoadConfig(), nil, logger.NewTestLogger(t))

	s := a.Analyze("good", models.LanguageEnglish)

	assert.Equal(t, models.NeutralSentiment(), s)
}

func TestPreprocess(t *testing.T) {
	assert.Equal(t, "hello, world!", preprocess("  Hello,\t\tWORLD! @#$ "))
	assert.Equal(t, "well-known snake_case", preprocess("Well-known snake_case"))
	assert.Equal(t, "अच्छा काम", preprocess("अच्छा   काम"))
}

// ==========================
// Batch & Summary
// ==========================

func TestAnalyzer_AnalyzeBatch(t *testing.T) {
	a := newTestAnalyzer(t)
	texts := []string{"good", "bad", "okay", ""}

	results := a.AnalyzeBatch(context.Background(), texts, models.LanguageEnglish)

	require.Len(t, results, 4)
	assert.Equal(t, models.SentimentPositive, results[0].Label)
	assert.Equal(t, models.SentimentNegative, results[1].Label)
	assert.Equal(t, models.SentimentNeutral, results[2].Label)
	assert.Equal(t, models.SentimentNeutral, results[3].Label)

	summary := Summarize(results)
	assert.Equal(t, 4, summary.TotalCount)
	assert.Equal(t, 1, summary.PositiveCount)
	assert.Equal(t, 1, summary.NegativeCount)
	assert.Equal(t, 2, summary.NeutralCount)
	assert.InDelta(t, 25.0, summary.PositivePercentage, 1e-9)
	assert.InDelta(t, 50.0, summary.NeutralPercentage, 1e-9)
	assert.InDelta(t, 0.0, summary.AverageScore, 1e-9)
	assert.InDelta(t, 0.375, summary.ConfidenceAverage, 1e-9)
}

func TestAnalyzer_AnalyzeBatch_CancelledContext(t *testing.T) {
	a := newTestAnalyzer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := a.AnalyzeBatch(ctx, []string{"good", "bad"}, models.LanguageEnglish)

	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, models.NeutralSentiment(), r)
	}
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}

// ==========================
// Language Detection & Explanation
// ==========================

func TestAnalyzer_DetectLanguage(t *testing.T) {
	a := newTestAnalyzer(t)

	tests := []struct {
		text     string
		expected models.Language
	}{
		{"मेरा नाम राम है", models.LanguageHindi},
		{"నమస్కారం", models.LanguageTelugu},
		{"yeh kaam accha hai", models.LanguageHindi},
		{"the hai is tall", models.LanguageEnglish},
		{"Hello world", models.LanguageEnglish},
		{"", models.LanguageEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.expected, a.DetectLanguage(tt.text))
		})
	}
}

func TestAnalyzer_Explain(t *testing.T) {
	a := newTestAnalyzer(t)
	text := "very good service but poor"
	s := a.Analyze(text, models.LanguageEnglish)

	exp := a.Explain(text, s, models.LanguageEnglish)

	assert.Equal(t, s.Label, exp.DetectedSentiment)
	assert.Contains(t, exp.ContributingFactors, Factor{Word: "good", Sentiment: models.SentimentPositive, Type: FactorLexical})
	assert.Contains(t, exp.ContributingFactors, Factor{Word: "poor", Sentiment: models.SentimentNegative, Type: FactorLexical})
	assert.Contains(t, exp.ContributingFactors, Factor{
		Pattern:   "good service",
		Sentiment: models.SentimentPositive,
		Type:      FactorContextual,
		Context:   lexicon.ContextServiceQuality,
	})
}

func TestAnalyzer_SupportedLanguages(t *testing.T) {
	a := newTestAnalyzer(t)

	assert.Equal(t, []models.Language{models.LanguageEnglish, models.LanguageHindi, models.LanguageTelugu}, a.SupportedLanguages())
}
