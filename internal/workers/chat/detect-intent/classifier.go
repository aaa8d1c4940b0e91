// internal/workers/chat/detect-intent/classifier.go
package detectintent

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"rural-assist/internal/common/logger"
	"rural-assist/internal/lexicon"
	"rural-assist/internal/models"
)

const maxSuggestions = 5

var clarificationPrompts = map[models.Language]map[string]string{
	models.LanguageEnglish: {
		models.EntityLocation:           "Could you please tell me your location (pincode, district, or state)?",
		models.EntityPincode:            "Please provide your 6-digit pincode.",
		models.EntityCommodityName:      "Which commodity price would you like to know about? (wheat, rice, dal, etc.)",
		models.EntityRepresentativeName: "Could you please tell me the name of your representative?",
		models.EntitySchemeName:         "Which government scheme would you like to know about?",
	},
	models.LanguageHindi: {
		models.EntityLocation:           "कृपया अपना स्थान बताएं (पिन कोड, जिला, या राज्य)?",
		models.EntityPincode:            "कृपया अपना 6 अंकों का पिन कोड दें।",
		models.EntityCommodityName:      "आप किस वस्तु की कीमत जानना चाहते हैं? (गेहूं, चावल, दाल, आदि)",
		models.EntityRepresentativeName: "कृपया अपने प्रतिनिधि का नाम बताएं।",
		models.EntitySchemeName:         "आप किस सरकारी योजना के बारे में जानना चाहते हैं?",
	},
}

var defaultPrompts = map[models.Language]string{
	models.LanguageEnglish: "Could you please provide more information?",
	models.LanguageHindi:   "कृपया अधिक जानकारी दें।",
}

const noMissingPrompt = "How can I help you further?"

// Classifier scores text against the intent vocabulary. It holds no mutable
// state and is safe for concurrent use.
type Classifier struct {
	config *Config
	store  *lexicon.Store
	logger logger.Logger
}

func NewClassifier(config *Config, store *lexicon.Store, log logger.Logger) *Classifier {
	return &Classifier{
		config: config,
		store:  store,
		logger: log,
	}
}

// Detect returns the best-scoring intent for text with its entities. It never
// fails: unmatched text is fallback_handoff and an internal fault is
// fallback_handoff with zero confidence.
func (c *Classifier) Detect(text string, ctx map[string]interface{}) (intent models.Intent) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("intent detection panicked", map[string]interface{}{"panic": r})
			intent = models.Intent{Name: models.IntentFallback, Confidence: 0, Entities: models.Entities{}}
		}
	}()

	original := norm.NFC.String(text)
	lowered := strings.ToLower(original)

	var (
		best      *lexicon.IntentDefinition
		bestScore float64
	)
	defs := c.store.Intents()
	for i := range defs {
		score := c.score(lowered, &defs[i])
		if score > bestScore {
			best, bestScore = &defs[i], score
		}
	}

	if best == nil {
		return models.Intent{
			Name:       models.IntentFallback,
			Confidence: c.config.FallbackConfidence,
			Entities:   models.Entities{},
		}
	}

	return models.Intent{
		Name:       best.Name,
		Confidence: bestScore,
		Entities:   c.extractEntities(original, lowered, best.Name, ctx),
	}
}

func (c *Classifier) score(lowered string, def *lexicon.IntentDefinition) float64 {
	var score float64

	if len(def.Keywords) > 0 {
		matched := 0
		for _, kw := range def.Keywords {
			if containsKeyword(lowered, kw) {
				matched++
			}
		}
		score += c.config.KeywordWeight * float64(matched) / float64(len(def.Keywords))
	}

	if len(def.Patterns) > 0 {
		matched := 0
		for _, re := range def.Patterns {
			if re.MatchString(lowered) {
				matched++
			}
		}
		score += c.config.PatternWeight * float64(matched) / float64(len(def.Patterns))
	}

	return math.Min(score, 1.0)
}

// containsKeyword matches Latin keywords at the start of a word and
// native-script keywords anywhere, since Indic suffixes attach directly.
func containsKeyword(text, kw string) bool {
	if kw == "" {
		return false
	}
	if !isLatin(kw) {
		return strings.Contains(text, kw)
	}

	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], kw)
		if i < 0 {
			return false
		}
		at := offset + i
		if at == 0 {
			return true
		}
		prev, _ := utf8.DecodeLastRuneInString(text[:at])
		if !isWordRune(prev) {
			return true
		}
		offset = at + 1
	}
	return false
}

func isLatin(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r) || r == '_'
}

func (c *Classifier) extractEntities(original, lowered string, name models.IntentName, ctx map[string]interface{}) models.Entities {
	entities := models.Entities{}

	for _, ep := range c.store.EntityPatterns() {
		if m := ep.Pattern.FindStringSubmatch(original); len(m) > 1 {
			entities[ep.Key] = m[1]
		}
	}

	switch name {
	case models.IntentSurveyMLA, models.IntentSurveyMP, models.IntentOpinionMLA, models.IntentOpinionMP:
		for _, re := range c.store.RepresentativeNamePatterns() {
			if m := re.FindStringSubmatch(original); len(m) > 1 {
				entities[models.EntityRepresentativeName] = m[1]
				break
			}
		}
	case models.IntentSchemeInfo:
		setFirstWord(entities, models.EntitySchemeName, lowered, c.store.SchemeKeywords())
	case models.IntentCommodityPrice:
		setFirstWord(entities, models.EntityCommodityName, lowered, c.store.CommodityKeywords())
	case models.IntentPHCLocation:
		setFirstWord(entities, models.EntityFacilityType, lowered, c.store.FacilityKeywords())
	}

	for k, v := range ctx {
		if _, exists := entities[k]; !exists && !isEmptyValue(v) {
			entities[k] = v
		}
	}
	return entities
}

func setFirstWord(entities models.Entities, key, lowered string, candidates []string) {
	for _, kw := range candidates {
		if containsWord(lowered, kw) {
			entities[key] = kw
			return
		}
	}
}

// containsWord is containsKeyword with a word-end check for Latin
// keywords. A plural "s" or "es" may follow.
func containsWord(text, kw string) bool {
	if kw == "" {
		return false
	}
	if !isLatin(kw) {
		return strings.Contains(text, kw)
	}

	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], kw)
		if i < 0 {
			return false
		}
		at := offset + i
		offset = at + 1

		if at > 0 {
			if prev, _ := utf8.DecodeLastRuneInString(text[:at]); isWordRune(prev) {
				continue
			}
		}
		after := text[at+len(kw):]
		for _, suffix := range []string{"", "s", "es"} {
			if !strings.HasPrefix(after, suffix) {
				continue
			}
			rest := after[len(suffix):]
			if next, _ := utf8.DecodeRuneInString(rest); rest == "" || !isWordRune(next) {
				return true
			}
		}
	}
	return false
}

func isEmptyValue(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case bool:
		return !t
	case float64:
		return t == 0
	case int:
		return t == 0
	case []interface{}:
		return len(t) == 0
	case map[string]interface{}:
		return len(t) == 0
	default:
		return false
	}
}

// RequiredEntities lists the entities an intent needs before it can be answered.
func (c *Classifier) RequiredEntities(name models.IntentName) []string {
	return c.store.RequiredEntities(name)
}

// MissingEntities returns the required entities the intent lacks, in order.
func (c *Classifier) MissingEntities(intent models.Intent) []string {
	missing := []string{}
	for _, key := range c.RequiredEntities(intent.Name) {
		if isEmptyValue(intent.Entities[key]) {
			missing = append(missing, key)
		}
	}
	return missing
}

// ClarificationQuestion asks for the first missing entity.
func (c *Classifier) ClarificationQuestion(name models.IntentName, missing []string, lang models.Language) string {
	if len(missing) == 0 {
		return noMissingPrompt
	}

	prompts, ok := clarificationPrompts[lang]
	if !ok {
		prompts = clarificationPrompts[models.LanguageEnglish]
		lang = models.LanguageEnglish
	}
	if q, ok := prompts[missing[0]]; ok {
		return q
	}
	return defaultPrompts[lang]
}

// Suggestions ranks intents by the share of their keywords found in text.
func (c *Classifier) Suggestions(text string) []models.IntentSuggestion {
	lowered := strings.ToLower(norm.NFC.String(text))

	var out []models.IntentSuggestion
	for _, def := range c.store.Intents() {
		if len(def.Keywords) == 0 {
			continue
		}
		matched := 0
		for _, kw := range def.Keywords {
			if containsKeyword(lowered, kw) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		out = append(out, models.IntentSuggestion{
			Intent:      def.Name,
			Score:       float64(matched) / float64(len(def.Keywords)),
			Description: def.Description,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// Validate reports whether the intent is confident enough to act on.
func (c *Classifier) Validate(intent models.Intent) bool {
	return intent.Confidence >= c.config.ValidationThreshold
}

func (c *Classifier) Statistics() Statistics {
	defs := c.store.Intents()
	stats := Statistics{
		TotalIntents:        len(defs),
		Intents:             make(map[models.IntentName]IntentStat, len(defs)),
		ConfidenceThreshold: c.config.ValidationThreshold,
		SupportedLanguages:  c.store.Languages(),
	}
	for _, def := range defs {
		stats.Intents[def.Name] = IntentStat{
			KeywordsCount: len(def.Keywords),
			PatternsCount: len(def.Patterns),
			EntitiesCount: len(def.Entities),
		}
	}
	return stats
}
