// internal/workers/chat/answer-question/orchestrator.go
package answerquestion

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"rural-assist/internal/common/errors"
	"rural-assist/internal/common/logger"
	"rural-assist/internal/common/metrics"
	"rural-assist/internal/common/observability"
	"rural-assist/internal/lexicon"
	"rural-assist/internal/models"
	detectintent "rural-assist/internal/workers/chat/detect-intent"
	generateresponse "rural-assist/internal/workers/chat/generate-response"
	resolvedata "rural-assist/internal/workers/chat/resolve-data"
)

const serviceUnavailable = "Service temporarily unavailable"

var errorSuggestions = []string{"Try asking about government schemes", "Ask for health facilities near you"}

// SupportedIntents lists the user-facing intents with examples, in
// declaration order.
func SupportedIntents(store *lexicon.Store) []IntentInfo {
	var out []IntentInfo
	for _, def := range store.Intents() {
		if !def.UserFacing() {
			continue
		}
		out = append(out, IntentInfo{
			Name:        def.Name,
			Description: def.Summary,
			Examples:    append([]string(nil), def.Examples...),
		})
	}
	return out
}

// Orchestrator runs classify, resolve and assemble for one question.
type Orchestrator struct {
	config     *Config
	classifier *detectintent.Classifier
	resolver   *resolvedata.Resolver
	generator  *generateresponse.Generator
	fallback   resolvedata.FallbackSource
	sessions   *SessionStore
	obs        *observability.Observability
	now        func() time.Time
	logger     logger.Logger
}

// NewOrchestrator wires the pipeline. sessions and obs may be nil.
func NewOrchestrator(
	config *Config,
	classifier *detectintent.Classifier,
	resolver *resolvedata.Resolver,
	generator *generateresponse.Generator,
	fallback resolvedata.FallbackSource,
	sessions *SessionStore,
	obs *observability.Observability,
	log logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		config:     config,
		classifier: classifier,
		resolver:   resolver,
		generator:  generator,
		fallback:   fallback,
		sessions:   sessions,
		obs:        obs,
		now:        time.Now,
		logger:     log.WithFields(map[string]interface{}{"component": "orchestrator"}),
	}
}

// ValidateQuestion trims the question and checks its length.
func (o *Orchestrator) ValidateQuestion(question string) (string, error) {
	q := strings.TrimSpace(question)
	if q == "" {
		return "", errors.NewInvalidInputError("question is required")
	}
	if utf8.RuneCountInString(q) > o.config.MaxQuestionLength {
		return "", errors.NewInvalidInputError(fmt.Sprintf("question exceeds %d characters", o.config.MaxQuestionLength))
	}
	return q, nil
}

// Answer validates the question and runs the pipeline. Only invalid input
// is an error; pipeline faults produce the fallback reply.
func (o *Orchestrator) Answer(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewInvalidInputError("request body is required")
	}
	question, err := o.ValidateQuestion(input.Question)
	if err != nil {
		return nil, err
	}
	lang := models.NormalizeLanguage(input.Language)
	return o.run(ctx, question, lang, input), nil
}

func (o *Orchestrator) run(ctx context.Context, question string, lang models.Language, input *Input) (out *Output) {
	start := o.now()

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("chat pipeline panicked", map[string]interface{}{"panic": fmt.Sprint(r)})
			out = o.fallbackOutput(lang)
		}
		metrics.ChatRequests.WithLabelValues(string(out.Intent), string(out.DataSource)).Inc()
		metrics.ChatRequestDuration.Observe(time.Since(start).Seconds())
	}()

	sess := o.loadSession(ctx, input.SessionID, input.UserID)
	merged := mergeContext(sess, input.Context)

	stage := time.Now()
	intent := o.classifier.Detect(question, merged)
	o.obs.RecordStage(ctx, "classify", time.Since(stage))

	stage = time.Now()
	result := o.resolver.Resolve(ctx, intent, question, merged)
	o.obs.RecordStage(ctx, "resolve", time.Since(stage))

	stage = time.Now()
	resp := o.generator.Generate(intent, result, lang, merged)
	o.obs.RecordStage(ctx, "assemble", time.Since(stage))

	if sess != nil {
		sess.Location = sessionLocation(merged, intent.Entities)
		sess.UpdateActivity(intent.Name)
		if err := o.sessions.Save(ctx, sess); err != nil {
			o.logger.Warn("session save failed", map[string]interface{}{"sessionId": sess.ID, "error": err.Error()})
		}
	}

	o.logger.Info("question answered", map[string]interface{}{
		"intent":     intent.Name,
		"confidence": intent.Confidence,
		"dataSource": resp.Source,
		"language":   lang,
	})

	return &Output{
		Response:    resp.Message,
		Intent:      intent.Name,
		Confidence:  intent.Confidence,
		DataSource:  resp.Source,
		Language:    lang,
		Suggestions: resp.Suggestions,
		Metadata:    resp.Metadata,
		Timestamp:   o.now().UTC(),
	}
}

// loadSession returns nil when there is no session id or no store. A new
// session is started when none is stored or the store fails.
func (o *Orchestrator) loadSession(ctx context.Context, id, userID string) *models.Session {
	if o.sessions == nil || strings.TrimSpace(id) == "" {
		return nil
	}

	sess, err := o.sessions.Load(ctx, id)
	if err != nil {
		o.logger.Warn("session load failed", map[string]interface{}{"sessionId": id, "error": err.Error()})
	}
	if sess == nil {
		now := o.now().UTC()
		sess = &models.Session{ID: id, UserID: userID, CreatedAt: now, LastActivity: now}
	}
	return sess
}

func (o *Orchestrator) fallbackOutput(lang models.Language) *Output {
	msg := "I'm sorry, I couldn't process your question right now."
	if o.fallback != nil {
		if fb := o.fallback.Fallback(); fb != nil && fb.Message != "" {
			msg = fb.Message
		}
	}
	return &Output{
		Response:    msg,
		Intent:      models.IntentFallback,
		Confidence:  0,
		DataSource:  models.SourceMock,
		Language:    lang,
		Suggestions: append([]string(nil), errorSuggestions...),
		Metadata:    map[string]interface{}{"error": serviceUnavailable},
		Timestamp:   o.now().UTC(),
	}
}
