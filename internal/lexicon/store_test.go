package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rural-assist/internal/models"
)

func TestNew_CompilesEverything(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	intents := s.Intents()
	require.Len(t, intents, 10)
	assert.Equal(t, models.IntentSurveyMLA, intents[0].Name)
	assert.Equal(t, models.IntentFallback, intents[len(intents)-1].Name)

	for _, def := range intents {
		assert.NotEmpty(t, def.Keywords, def.Name)
		assert.NotEmpty(t, def.Patterns, def.Name)
	}

	userFacing := 0
	for _, def := range intents {
		if def.UserFacing() {
			userFacing++
			assert.Len(t, def.Examples, 2, def.Name)
		}
	}
	assert.Equal(t, 7, userFacing)
}

func TestIntents_ReturnsCopy(t *testing.T) {
	s := MustNew()
	first := s.Intents()
	first[0] = IntentDefinition{Name: "mutated"}

	def, ok := s.Intent(models.IntentSurveyMLA)
	require.True(t, ok)
	assert.Equal(t, models.IntentSurveyMLA, s.Intents()[0].Name)
	assert.Equal(t, models.IntentSurveyMLA, def.Name)
}

func TestPatterns_WorkOnDevanagari(t *testing.T) {
	s := MustNew()
	def, ok := s.Intent(models.IntentSurveyMLA)
	require.True(t, ok)

	matched := 0
	for _, re := range def.Patterns {
		if re.MatchString("मेरे विधायक की details") {
			matched++
		}
	}
	assert.Equal(t, 1, matched, "the name/details pattern should fire")
}

func TestPatterns_RespectWordEnd(t *testing.T) {
	s := MustNew()
	def, _ := s.Intent(models.IntentSurveyMP)

	for _, re := range def.Patterns {
		assert.False(t, re.MatchString("my complaint about roads"), re.String())
	}
	assert.True(t, def.Patterns[2].MatchString("who is my mp"))
}

func TestPincodePattern(t *testing.T) {
	s := MustNew()
	def, _ := s.Intent(models.IntentPincodeHelp)
	last := def.Patterns[len(def.Patterns)-1]

	assert.True(t, last.MatchString("110001 information"))
	assert.True(t, last.MatchString("tell me 560001 area details"))
	assert.False(t, last.MatchString("1100011 information"))
}

func TestSentimentLexicon(t *testing.T) {
	s := MustNew()

	tests := []struct {
		lang  models.Language
		token string
		want  models.SentimentLabel
	}{
		{models.LanguageEnglish, "excellent", models.SentimentPositive},
		{models.LanguageEnglish, "corrupt", models.SentimentNegative},
		{models.LanguageEnglish, "okay", models.SentimentNeutral},
		{models.LanguageHindi, "खराब", models.SentimentNegative},
		{models.LanguageTelugu, "మంచి", models.SentimentPositive},
	}

	for _, tt := range tests {
		t.Run(string(tt.lang)+"/"+tt.token, func(t *testing.T) {
			got, ok := s.Sentiment(tt.lang).Polarity(tt.token)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, models.LanguageEnglish, s.Sentiment("klingon").Language())
	assert.True(t, s.Sentiment(models.LanguageEnglish).IsNegator("not"))
	assert.True(t, s.Sentiment(models.LanguageHindi).IsIntensifier("बहुत"))
}

func TestEntityPatterns(t *testing.T) {
	s := MustNew()
	byKey := map[string]EntityPattern{}
	for _, p := range s.EntityPatterns() {
		byKey[p.Key] = p
	}

	m := byKey[models.EntityPincode].Pattern.FindStringSubmatch("pin 110001 please")
	require.Len(t, m, 2)
	assert.Equal(t, "110001", m[1])
	assert.Nil(t, byKey[models.EntityPincode].Pattern.FindStringSubmatch("call 9876543210"))

	m = byKey[models.EntityLocation].Pattern.FindStringSubmatch("hospitals in Delhi")
	require.Len(t, m, 2)
	assert.Equal(t, "Delhi", m[1])
}

func TestRequiredEntities(t *testing.T) {
	s := MustNew()
	assert.Equal(t, []string{models.EntityPincode}, s.RequiredEntities(models.IntentPincodeHelp))
	assert.Empty(t, s.RequiredEntities(models.IntentSchemeInfo))
	assert.Empty(t, s.RequiredEntities(models.IntentFallback))
}

func TestLanguages(t *testing.T) {
	s := MustNew()
	assert.Equal(t, []models.Language{models.LanguageEnglish, models.LanguageHindi, models.LanguageTelugu}, s.Languages())
	assert.True(t, s.IsFunctionWord("hai"))
	assert.False(t, s.IsFunctionWord("the"))
}
