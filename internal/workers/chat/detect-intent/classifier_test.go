package detectintent

import (
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

func newTestClassifier(t *testing.T) *Classifier {
	return NewClassifier(LoadConfig(), lexicon.MustNew(), logger.NewTestLogger(t))
}

// ==========================
// Detection
// ==========================

func TestClassifier_Detect(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name     string
		text     string
		expected models.IntentName
		entities map[string]interface{}
	}{
		{
			name:     "mla question",
			text:     "Who is my MLA?",
			expected: models.IntentSurveyMLA,
		},
		{
			name:     "mla question with city",
			text:     "Who is my MLA in Delhi?",
			expected: models.IntentSurveyMLA,
			entities: map[string]interface{}{models.EntityLocation: "Delhi"},
		},
		{
			name:     "devanagari mla question",
			text:     "मेरे विधायक कौन हैं",
			expected: models.IntentSurveyMLA,
		},
		{
			name:     "commodity price",
			text:     "What is the price of wheat today?",
			expected: models.IntentCommodityPrice,
			entities: map[string]interface{}{
				models.EntityCommodity:     "wheat",
				models.EntityCommodityName: "wheat",
			},
		},
		{
			name:     "scheme info",
			text:     "Tell me about PMAY scheme",
			expected: models.IntentSchemeInfo,
			entities: map[string]interface{}{
				models.EntityScheme:     "PMAY",
				models.EntitySchemeName: "pmay",
			},
		},
		{
			name:     "health facility",
			text:     "Find hospitals near me in Delhi",
			expected: models.IntentPHCLocation,
			entities: map[string]interface{}{
				models.EntityFacilityType: "hospital",
				models.EntityLocation:     "Delhi",
			},
		},
		{
			name:     "onion price",
			text:     "onion price today",
			expected: models.IntentCommodityPrice,
			entities: map[string]interface{}{
				models.EntityCommodityName: "onion",
				models.EntityCommodity:     "onion",
			},
		},
		{
			name:     "potato price in mandi",
			text:     "potato price in mandi",
			expected: models.IntentCommodityPrice,
			entities: map[string]interface{}{models.EntityCommodityName: "potato"},
		},
		{
			name:     "plural tomato",
			text:     "What is the price of tomatoes",
			expected: models.IntentCommodityPrice,
			entities: map[string]interface{}{models.EntityCommodityName: "tomato"},
		},
		{
			name:     "sugar price",
			text:     "What is the price of sugar",
			expected: models.IntentCommodityPrice,
			entities: map[string]interface{}{models.EntityCommodityName: "sugar"},
		},
		{
			name:     "pincode lookup",
			text:     "Information about pincode 110001",
			expected: models.IntentPincodeHelp,
			entities: map[string]interface{}{models.EntityPincode: "110001"},
		},
		{
			name:     "opinion with representative name",
			text:     "My opinion about Ravi Kumar as MLA is good",
			expected: models.IntentOpinionMLA,
			entities: map[string]interface{}{models.EntityRepresentativeName: "Ravi Kumar"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := c.Detect(tt.text, nil)

			assert.Equal(t, tt.expected, intent.Name)
			assert.Greater(t, intent.Confidence, 0.0)
			assert.LessOrEqual(t, intent.Confidence, 1.0)
			for k, v := range tt.entities {
				assert.Equal(t, v, intent.Entities[k], k)
			}
		})
	}
}

func TestClassifier_Detect_Score(t *testing.T) {
	c := newTestClassifier(t)

	intent := c.Detect("What is the price of wheat today?", nil)

	// price and wheat out of 11 keywords, first of 4 patterns
	assert.InDelta(t, 0.6*2.0/11.0+0.4*1.0/4.0, intent.Confidence, 1e-9)
}

func TestClassifier_Detect_Fallback(t *testing.T) {
	c := newTestClassifier(t)

	intent := c.Detect("xyz qwerty", nil)

	assert.Equal(t, models.IntentFallback, intent.Name)
	assert.Equal(t, 0.1, intent.Confidence)
	assert.Empty(t, intent.Entities)
}

func TestClassifier_Detect_TieKeepsDeclarationOrder(t *testing.T) {
	c := newTestClassifier(t)

	intent := c.Detect("I want to give feedback", nil)

	assert.Equal(t, models.IntentOpinionMLA, intent.Name)
}

func TestClassifier_Detect_ContextMerge(t *testing.T) {
	c := newTestClassifier(t)

	intent := c.Detect("Who is my MLA?", map[string]interface{}{
		models.EntityLocation: "Pune",
		models.EntityPincode:  "",
		"flag":                false,
		"missing":             nil,
	})

	assert.Equal(t, "Pune", intent.Entities[models.EntityLocation])
	assert.NotContains(t, intent.Entities, models.EntityPincode)
	assert.NotContains(t, intent.Entities, "flag")
	assert.NotContains(t, intent.Entities, "missing")

	extracted := c.Detect("Who is my MLA in Delhi?", map[string]interface{}{
		models.EntityLocation: "Pune",
	})
	assert.Equal(t, "Delhi", extracted.Entities[models.EntityLocation])
}

func TestClassifier_Detect_RecoversFromPanic(t *testing.T) {
	c := NewClassifier(LoadConfig(), nil, logger.NewTestLogger(t))

	intent := c.Detect("Who is my MLA?", nil)

	assert.Equal(t, models.IntentFallback, intent.Name)
	assert.Equal(t, 0.0, intent.Confidence)
}

func TestContainsKeyword(t *testing.T) {
	tests := []struct {
		text     string
		kw       string
		expected bool
	}{
		{"my mp is here", "mp", true},
		{"mp details", "mp", true},
		{"company address", "mp", false},
		{"hospitals nearby", "hospital", true},
		{"the price", "rice", false},
		{"मेरेविधायक", "विधायक", true},
		{"", "mla", false},
	}

	for _, tt := range tests {
		t.Run(tt.text+"/"+tt.kw, func(t *testing.T) {
			assert.Equal(t, tt.expected, containsKeyword(tt.text, tt.kw))
		})
	}
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		text     string
		kw       string
		expected bool
	}{
		{"the price of onion", "rice", false},
		{"rice price", "rice", true},
		{"won a medal", "dal", false},
		{"dal rate", "dal", true},
		{"onions today", "onion", true},
		{"potatoes", "potato", true},
		{"potatoland", "potato", false},
		{"nearest health center", "health center", true},
		{"प्याज की कीमत", "प्याज", true},
		{"", "rice", false},
	}

	for _, tt := range tests {
		t.Run(tt.text+"/"+tt.kw, func(t *testing.T) {
			assert.Equal(t, tt.expected, containsWord(tt.text, tt.kw))
		})
	}
}

func TestClassifier_Detect_Idempotent(t *testing.T) {
	c := newTestClassifier(t)

	texts := []string{
		"Who is my MLA?",
		"onion price today",
		"Find hospitals near me in Delhi",
		"xyz qwerty",
	}
	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			first := c.Detect(text, nil)
			second := c.Detect(text, nil)

			assert.Equal(t, first.Name, second.Name)
			assert.Equal(t, first.Confidence, second.Confidence)
			assert.Equal(t, first.Entities, second.Entities)
		})
	}
}

// ==========================
// Missing Entities & Clarification
// ==========================

func TestClassifier_MissingEntities(t *testing.T) {
	c := newTestClassifier(t)

	missing := c.MissingEntities(c.Detect("Who is my MLA?", nil))
	assert.Equal(t, []string{models.EntityLocation}, missing)

	none := c.MissingEntities(c.Detect("Who is my MLA in Delhi?", nil))
	assert.Empty(t, none)

	assert.Empty(t, c.MissingEntities(models.Intent{Name: models.IntentSchemeInfo}))
}

func TestClassifier_ClarificationQuestion(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name     string
		missing  []string
		lang     models.Language
		expected string
	}{
		{
			name:     "english location",
			missing:  []string{models.EntityLocation},
			lang:     models.LanguageEnglish,
			expected: "Could you please tell me your location (pincode, district, or state)?",
		},
		{
			name:     "hindi pincode",
			missing:  []string{models.EntityPincode, models.EntityLocation},
			lang:     models.LanguageHindi,
			expected: "कृपया अपना 6 अंकों का पिन कोड दें।",
		},
		{
			name:     "telugu uses english prompts",
			missing:  []string{models.EntitySchemeName},
			lang:     models.LanguageTelugu,
			expected: "Which government scheme would you like to know about?",
		},
		{
			name:     "unknown entity",
			missing:  []string{"constituency"},
			lang:     models.LanguageHindi,
			expected: "कृपया अधिक जानकारी दें।",
		},
		{
			name:     "nothing missing",
			missing:  nil,
			lang:     models.LanguageEnglish,
			expected: "How can I help you further?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.ClarificationQuestion(models.IntentSurveyMLA, tt.missing, tt.lang))
		})
	}
}

// ==========================
// Suggestions, Validation, Statistics
// ==========================

func TestClassifier_Suggestions(t *testing.T) {
	c := newTestClassifier(t)

	suggestions := c.Suggestions("price of wheat in mandi")
	require.Len(t, suggestions, 1)
	assert.Equal(t, models.IntentCommodityPrice, suggestions[0].Intent)
	assert.InDelta(t, 3.0/11.0, suggestions[0].Score, 1e-9)
	assert.Equal(t, "Check current commodity prices in mandis", suggestions[0].Description)

	tied := c.Suggestions("feedback")
	require.Len(t, tied, 2)
	assert.Equal(t, models.IntentOpinionMLA, tied[0].Intent)
	assert.Equal(t, models.IntentOpinionMP, tied[1].Intent)

	assert.Empty(t, c.Suggestions("xyz"))
}

func TestClassifier_Validate(t *testing.T) {
	c := newTestClassifier(t)

	assert.True(t, c.Validate(models.Intent{Confidence: 0.5}))
	assert.True(t, c.Validate(models.Intent{Confidence: 0.9}))
	assert.False(t, c.Validate(models.Intent{Confidence: 0.49}))
}

func TestClassifier_Statistics(t *testing.T) {
	c := newTestClassifier(t)

	stats := c.Statistics()

	assert.Equal(t, 10, stats.TotalIntents)
	assert.Equal(t, 0.5, stats.ConfidenceThreshold)
	assert.Contains(t, stats.SupportedLanguages, models.LanguageEnglish)
	assert.Equal(t, IntentStat{KeywordsCount: 5, PatternsCount: 3, EntitiesCount: 2}, stats.Intents[models.IntentSurveyMLA])
}
