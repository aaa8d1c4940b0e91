// Package lexicon holds the keyword, pattern and sentiment vocabularies used
// by intent classification and sentiment scoring. A Store is built once at
// startup and is read-only afterwards, so one instance may be shared by every
// request goroutine.
package lexicon

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"rural-assist/internal/models"
)

// IntentDefinition is the compiled form of one intent's vocabulary.
type IntentDefinition struct {
	Name        models.IntentName
	Description string
	Summary     string
	Examples    []string
	Keywords    []string
	Patterns    []*regexp.Regexp
	Entities    []string
}

// UserFacing reports whether the intent is advertised to clients.
func (d IntentDefinition) UserFacing() bool {
	return d.Summary != ""
}

// EntityPattern extracts one generic entity. The first capture group is the value.
type EntityPattern struct {
	Key     string
	Pattern *regexp.Regexp
}

// ContextPhrase is a multi-word cue that votes for a sentiment label.
type ContextPhrase struct {
	Category string
	Label    models.SentimentLabel
	Phrase   string
}

// SentimentLexicon is the word list of one language.
type SentimentLexicon struct {
	language     models.Language
	labels       map[string]models.SentimentLabel
	intensifiers map[string]struct{}
	negators     map[string]struct{}
}

// Language returns the language this lexicon was built for.
func (l *SentimentLexicon) Language() models.Language { return l.language }

// Polarity returns the label of a lexicon word.
func (l *SentimentLexicon) Polarity(token string) (models.SentimentLabel, bool) {
	label, ok := l.labels[token]
	return label, ok
}

func (l *SentimentLexicon) IsIntensifier(token string) bool {
	_, ok := l.intensifiers[token]
	return ok
}

func (l *SentimentLexicon) IsNegator(token string) bool {
	_, ok := l.negators[token]
	return ok
}

// Size returns the number of labelled words.
func (l *SentimentLexicon) Size() int { return len(l.labels) }

// Store is the immutable vocabulary set.
type Store struct {
	intents        []IntentDefinition
	intentIndex    map[models.IntentName]int
	sentiment      map[models.Language]*SentimentLexicon
	contextPhrases []ContextPhrase
	functionWords  map[string]struct{}
	entityPatterns []EntityPattern
	namePatterns   []*regexp.Regexp
	required       map[models.IntentName][]string
}

// New compiles the built-in vocabularies.
func New() (*Store, error) {
	s := &Store{
		intentIndex:   make(map[models.IntentName]int, len(intentVocab)),
		sentiment:     make(map[models.Language]*SentimentLexicon, len(sentimentSpecs)),
		functionWords: toSet(romanizedHindiFunctionWords),
		required:      requiredEntities,
	}

	for _, entry := range intentVocab {
		def := IntentDefinition{
			Name:        entry.name,
			Description: entry.description,
			Summary:     entry.summary,
			Examples:    entry.examples,
			Keywords:    lowerAll(entry.keywords),
			Entities:    entry.entities,
		}
		for _, p := range entry.patterns {
			re, err := regexp.Compile(`(?i)` + p)
			if err != nil {
				return nil, fmt.Errorf("intent %s: compile pattern %q: %w", entry.name, p, err)
			}
			def.Patterns = append(def.Patterns, re)
		}
		if len(def.Keywords) == 0 && len(def.Patterns) == 0 {
			return nil, fmt.Errorf("intent %s has no keywords or patterns", entry.name)
		}
		s.intentIndex[entry.name] = len(s.intents)
		s.intents = append(s.intents, def)
	}

	for lang, entry := range sentimentSpecs {
		lex := &SentimentLexicon{
			language:     lang,
			labels:       make(map[string]models.SentimentLabel),
			intensifiers: toSet(entry.intensifiers),
			negators:     toSet(entry.negators),
		}
		// positive, then negative, then neutral: the first list claiming a word keeps it
		for _, group := range []struct {
			label models.SentimentLabel
			words []string
		}{
			{models.SentimentPositive, entry.positive},
			{models.SentimentNegative, entry.negative},
			{models.SentimentNeutral, entry.neutral},
		} {
			for _, w := range group.words {
				if _, exists := lex.labels[w]; !exists {
					lex.labels[w] = group.label
				}
			}
		}
		s.sentiment[lang] = lex
	}
	if _, ok := s.sentiment[models.LanguageEnglish]; !ok {
		return nil, fmt.Errorf("english sentiment lexicon is required")
	}

	for _, entry := range contextSpecs {
		for _, p := range entry.positive {
			s.contextPhrases = append(s.contextPhrases, ContextPhrase{Category: entry.category, Label: models.SentimentPositive, Phrase: p})
		}
		for _, p := range entry.negative {
			s.contextPhrases = append(s.contextPhrases, ContextPhrase{Category: entry.category, Label: models.SentimentNegative, Phrase: p})
		}
	}

	for _, entry := range entityPatternSpecs {
		re, err := regexp.Compile(entry.pattern)
		if err != nil {
			return nil, fmt.Errorf("entity %s: compile pattern: %w", entry.key, err)
		}
		if re.NumSubexp() < 1 {
			return nil, fmt.Errorf("entity %s: pattern needs a capture group", entry.key)
		}
		s.entityPatterns = append(s.entityPatterns, EntityPattern{Key: entry.key, Pattern: re})
	}
	for _, p := range representativeNamePatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("representative name pattern: %w", err)
		}
		s.namePatterns = append(s.namePatterns, re)
	}

	return s, nil
}

// MustNew is New for package-level initialization; it panics on a broken vocabulary.
func MustNew() *Store {
	s, err := New()
	if err != nil {
		panic(err)
	}
	return s
}

// Intents returns the definitions in declaration order.
func (s *Store) Intents() []IntentDefinition {
	return slices.Clone(s.intents)
}

// Intent looks up one definition by name.
func (s *Store) Intent(name models.IntentName) (IntentDefinition, bool) {
	i, ok := s.intentIndex[name]
	if !ok {
		return IntentDefinition{}, false
	}
	return s.intents[i], true
}

// Sentiment returns the lexicon for lang, falling back to english.
func (s *Store) Sentiment(lang models.Language) *SentimentLexicon {
	if lex, ok := s.sentiment[lang]; ok {
		return lex
	}
	return s.sentiment[models.LanguageEnglish]
}

// Languages lists the languages that have a sentiment lexicon, in canonical order.
func (s *Store) Languages() []models.Language {
	out := make([]models.Language, 0, len(s.sentiment))
	for _, lang := range models.SupportedLanguages {
		if _, ok := s.sentiment[lang]; ok {
			out = append(out, lang)
		}
	}
	return out
}

func (s *Store) ContextPhrases() []ContextPhrase {
	return slices.Clone(s.contextPhrases)
}

// IsFunctionWord reports whether token is a romanized Hindi function word.
func (s *Store) IsFunctionWord(token string) bool {
	_, ok := s.functionWords[token]
	return ok
}

func (s *Store) EntityPatterns() []EntityPattern {
	return slices.Clone(s.entityPatterns)
}

func (s *Store) RepresentativeNamePatterns() []*regexp.Regexp {
	return slices.Clone(s.namePatterns)
}

func (s *Store) SchemeKeywords() []string    { return slices.Clone(schemeKeywords) }
func (s *Store) CommodityKeywords() []string { return slices.Clone(commodityKeywords) }
func (s *Store) FacilityKeywords() []string  { return slices.Clone(facilityKeywords) }

// RequiredEntities lists the entities an intent needs before it can be answered.
func (s *Store) RequiredEntities(name models.IntentName) []string {
	return slices.Clone(s.required[name])
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func lowerAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}
