// internal/workers/chat/analyze-sentiment/analyzer.go
package analyzesentiment

import (
	"context"
	"math"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"rural-assist/internal/common/logger"
	"rural-assist/internal/common/metrics"
	"rural-assist/internal/lexicon"
	"rural-assist/internal/models"
)

const tokenPunct = ".!?,"

// Analyzer scores free text with the lexicon of one language. It is safe
// for concurrent use.
type Analyzer struct {
	config *Config
	store  *lexicon.Store
	logger logger.Logger
}

func NewAnalyzer(config *Config, store *lexicon.Store, log logger.Logger) *Analyzer {
	return &Analyzer{
		config: config,
		store:  store,
		logger: log,
	}
}

type buckets struct {
	positive float64
	negative float64
	neutral  float64
}

func (b buckets) total() float64 { return b.positive + b.negative + b.neutral }

func (b *buckets) add(label models.SentimentLabel, w float64) {
	switch label {
	case models.SentimentPositive:
		b.positive += w
	case models.SentimentNegative:
		b.negative += w
	default:
		b.neutral += w
	}
}

// Analyze never fails. Empty text and internal faults both score neutral.
func (a *Analyzer) Analyze(text string, lang models.Language) (result models.Sentiment) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("sentiment analysis panicked", map[string]interface{}{"panic": r})
			result = models.NeutralSentiment()
		}
		metrics.SentimentLabels.WithLabelValues(string(result.Label)).Inc()
	}()

	if strings.TrimSpace(text) == "" {
		return models.NeutralSentiment()
	}

	clean := preprocess(text)
	scores := a.lexicalScores(strings.Fields(clean), a.store.Sentiment(lang))
	ctx := a.contextScores(clean)

	scores.positive = (scores.positive + ctx.positive) / 2
	scores.negative = (scores.negative + ctx.negative) / 2
	scores.neutral = (scores.neutral + ctx.neutral) / 2

	return a.decide(scores)
}

func preprocess(text string) string {
	lowered := strings.ToLower(norm.NFC.String(text))
	stripped := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsMark(r), unicode.IsDigit(r), unicode.IsSpace(r):
			return r
		case r == '_' || r == '-' || strings.ContainsRune(tokenPunct, r):
			return r
		default:
			return -1
		}
	}, lowered)
	return strings.Join(strings.Fields(stripped), " ")
}

func trimToken(tok string) string {
	return strings.TrimRight(tok, tokenPunct)
}

func (a *Analyzer) lexicalScores(tokens []string, lex *lexicon.SentimentLexicon) buckets {
	words := make([]string, len(tokens))
	for i, tok := range tokens {
		words[i] = trimToken(tok)
	}

	var matches buckets
	for i, word := range words {
		label, ok := lex.Polarity(word)
		if !ok {
			continue
		}

		negated := false
		for j := max(0, i-a.config.NegationWindow); j < i; j++ {
			if lex.IsNegator(words[j]) {
				negated = true
				break
			}
		}

		weight := 1.0
		for j := max(0, i-a.config.IntensifierWindow); j < i; j++ {
			if lex.IsIntensifier(words[j]) {
				weight = a.config.IntensifierWeight
				break
			}
		}

		if negated {
			switch label {
			case models.SentimentPositive:
				label = models.SentimentNegative
			case models.SentimentNegative:
				label = models.SentimentPositive
			}
		}
		matches.add(label, weight)
	}

	total := matches.total()
	if total == 0 {
		return buckets{}
	}
	return buckets{
		positive: matches.positive / total,
		negative: matches.negative / total,
		neutral:  matches.neutral / total,
	}
}

func (a *Analyzer) contextScores(clean string) buckets {
	var pos, neg float64
	for _, cp := range a.store.ContextPhrases() {
		if !strings.Contains(clean, cp.Phrase) {
			continue
		}
		if cp.Label == models.SentimentPositive {
			pos++
		} else {
			neg++
		}
	}

	total := pos + neg
	if total == 0 {
		return buckets{}
	}
	b := buckets{positive: pos / total, negative: neg / total}
	b.neutral = 1 - (b.positive + b.negative)
	return b
}

func (a *Analyzer) decide(s buckets) models.Sentiment {
	top := math.Max(s.positive, math.Max(s.negative, s.neutral))
	if top < a.config.NeutralFloor {
		return models.Sentiment{Label: models.SentimentNeutral, Confidence: top}
	}

	var label models.SentimentLabel
	switch top {
	case s.positive:
		label = models.SentimentPositive
	case s.negative:
		label = models.SentimentNegative
	default:
		label = models.SentimentNeutral
	}

	sorted := []float64{s.positive, s.negative, s.neutral}
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	confidence := math.Min(math.Max(sorted[0]-sorted[1], 0), 1)

	var score float64
	switch label {
	case models.SentimentPositive:
		score = s.positive
	case models.SentimentNegative:
		score = -s.negative
	}

	return models.Sentiment{Label: label, Score: score, Confidence: confidence}
}

// AnalyzeBatch scores texts concurrently. The result order matches texts.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, texts []string, lang models.Language) []models.Sentiment {
	out := make([]models.Sentiment, len(texts))
	for i := range out {
		out[i] = models.NeutralSentiment()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, a.config.BatchConcurrency))
	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			out[i] = a.Analyze(text, lang)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// DetectLanguage guesses the language from script, then from romanized
// Hindi function words.
func (a *Analyzer) DetectLanguage(text string) models.Language {
	for _, r := range text {
		switch {
		case r >= 0x0900 && r <= 0x097F:
			return models.LanguageHindi
		case r >= 0x0C00 && r <= 0x0C7F:
			return models.LanguageTelugu
		}
	}

	seen := map[string]struct{}{}
	for _, tok := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	}) {
		if a.store.IsFunctionWord(tok) {
			seen[tok] = struct{}{}
		}
	}
	if len(seen) >= 2 {
		return models.LanguageHindi
	}
	return models.LanguageEnglish
}

func (a *Analyzer) SupportedLanguages() []models.Language {
	return a.store.Languages()
}

// Summarize aggregates label counts and averages.
func Summarize(sentiments []models.Sentiment) Summary {
	s := Summary{TotalCount: len(sentiments)}
	if len(sentiments) == 0 {
		return s
	}

	var scoreSum, confSum float64
	for _, st := range sentiments {
		switch st.Label {
		case models.SentimentPositive:
			s.PositiveCount++
		case models.SentimentNegative:
			s.NegativeCount++
		default:
			s.NeutralCount++
		}
		scoreSum += st.Score
		confSum += st.Confidence
	}

	n := float64(len(sentiments))
	s.PositivePercentage = float64(s.PositiveCount) / n * 100
	s.NegativePercentage = float64(s.NegativeCount) / n * 100
	s.NeutralPercentage = float64(s.NeutralCount) / n * 100
	s.AverageScore = scoreSum / n
	s.ConfidenceAverage = confSum / n
	return s
}

// Explain lists the lexicon words and context phrases found in text.
func (a *Analyzer) Explain(text string, sentiment models.Sentiment, lang models.Language) Explanation {
	exp := Explanation{
		DetectedSentiment:   sentiment.Label,
		Confidence:          sentiment.Confidence,
		Score:               sentiment.Score,
		ContributingFactors: []Factor{},
	}

	clean := preprocess(text)
	lex := a.store.Sentiment(lang)
	for _, tok := range strings.Fields(clean) {
		word := trimToken(tok)
		if label, ok := lex.Polarity(word); ok {
			exp.ContributingFactors = append(exp.ContributingFactors, Factor{
				Word:      word,
				Sentiment: label,
				Type:      FactorLexical,
			})
		}
	}

	for _, cp := range a.store.ContextPhrases() {
		if strings.Contains(clean, cp.Phrase) {
			exp.ContributingFactors = append(exp.ContributingFactors, Factor{
				Pattern:   cp.Phrase,
				Sentiment: cp.Label,
				Type:      FactorContextual,
				Context:   cp.Category,
			})
		}
	}
	return exp
}
