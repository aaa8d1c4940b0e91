// internal/workers/survey/submit-survey/handler.go
package submitsurvey

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"rural-assist/internal/common/camunda"
	"rural-assist/internal/common/errors"
	"rural-assist/internal/common/logger"
	"rural-assist/internal/common/metrics"
	"rural-assist/internal/common/validation"
	"rural-assist/internal/models"
	"rural-assist/internal/sources"
)

const TaskType = "submit-survey"

const maxOpinionLength = 2000

// SubmissionSchema validates a raw survey submission document.
const SubmissionSchema = `{
	"type": "object",
	"required": ["user_pincode"],
	"properties": {
		"user_pincode": {"type": "string", "pattern": "^[0-9]{6}$"},
		"village_name": {"type": ["string", "null"], "maxLength": 100},
		"district_name": {"type": ["string", "null"], "maxLength": 100},
		"state_name": {"type": ["string", "null"], "maxLength": 100},
		"mla_name": {"type": ["string", "null"], "maxLength": 200},
		"mp_name": {"type": ["string", "null"], "maxLength": 200},
		"mla_opinion_text": {"type": ["string", "null"], "maxLength": 2000},
		"mp_opinion_text": {"type": ["string", "null"], "maxLength": 2000},
		"satisfaction_score": {"type": ["integer", "null"], "minimum": 1, "maximum": 10},
		"preferred_language": {"type": ["string", "null"]},
		"channel": {"type": ["string", "null"]},
		"consent": {"type": ["boolean", "null"]},
		"latitude": {"type": ["number", "null"], "minimum": -90, "maximum": 90},
		"longitude": {"type": ["number", "null"], "minimum": -180, "maximum": 180}
	}
}`

// SentimentScorer scores opinion text.
type SentimentScorer interface {
	Analyze(text string, lang models.Language) models.Sentiment
}

// SurveyWriter persists a scored survey.
type SurveyWriter interface {
	Insert(ctx context.Context, sv *models.Survey) error
}

type Handler struct {
	config   *Config
	store    SurveyWriter
	scorer   SentimentScorer
	notifier Notifier
	now      func() time.Time
	newID    func() string
	logger   logger.Logger
}

// NewHandler builds the survey submitter. notifier may be nil.
func NewHandler(config *Config, store SurveyWriter, scorer SentimentScorer, notifier Notifier, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		store:    store,
		scorer:   scorer,
		notifier: notifier,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		logger:   log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := h.parseInput(job)
	if err == nil {
		var output *Output
		output, err = h.Execute(ctx, input)
		if err == nil {
			camunda.CompleteJob(ctx, client, job, output, h.logger)
			metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
			metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
			return
		}
	}

	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.AsStandardError(err).Code)).Inc()
	errors.NewErrorHandler(h.logger).HandleJobError(ctx, client, job, err)
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	vars, err := job.GetVariablesAsMap()
	if err != nil {
		return nil, errors.NewInvalidInputError(err.Error())
	}
	if res := validation.ValidateInput(vars, SubmissionSchema); !res.Valid {
		return nil, errors.NewValidationFailedError(strings.Join(res.GetErrorMessages(), "; "))
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, errors.NewInvalidInputError(fmt.Sprintf("decode variables: %v", err))
	}
	return &input, nil
}

// Validate applies the submission rules to an already decoded survey.
func Validate(input *Input) error {
	if input == nil {
		return errors.NewInvalidInputError("survey is required")
	}
	if !sources.ValidPincode(input.UserPincode) {
		return errors.NewPincodeInvalidError(input.UserPincode)
	}
	if utf8.RuneCountInString(input.MLAOpinionText) > maxOpinionLength ||
		utf8.RuneCountInString(input.MPOpinionText) > maxOpinionLength {
		return errors.NewInvalidInputError(fmt.Sprintf("opinion text exceeds %d characters", maxOpinionLength))
	}
	if s := input.SatisfactionScore; s != nil && (*s < 1 || *s > 10) {
		return errors.NewInvalidInputError("satisfaction_score must be between 1 and 10")
	}
	return nil
}

// Execute scores the opinions, stores the survey and raises an alert for
// negative feedback. Alert failures are logged only.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := Validate(input); err != nil {
		return nil, err
	}

	sv := h.build(input)

	if err := h.store.Insert(ctx, sv); err != nil {
		return nil, errors.NewDatabaseInsertFailedError(err)
	}
	metrics.SurveySubmissions.WithLabelValues(string(sv.Channel)).Inc()

	h.logger.Info("survey stored", map[string]interface{}{
		"surveyId":     sv.ID,
		"pincode":      sv.UserPincode,
		"channel":      sv.Channel,
		"mlaSentiment": labelOrEmpty(sv.MLAOpinionSentiment),
		"mpSentiment":  labelOrEmpty(sv.MPOpinionSentiment),
	})

	if h.config.NotifyNegative && h.notifier != nil && sv.HasNegativeOpinion() {
		if err := h.notifier.NotifyNegative(ctx, sv); err != nil {
			h.logger.Warn("negative survey alert failed", map[string]interface{}{
				"surveyId": sv.ID,
				"error":    err.Error(),
			})
		}
	}

	return &Output{
		Success:      true,
		Message:      thankYou(sv.PreferredLanguage, sv.MLAName, sv.MPName),
		SurveyID:     sv.ID,
		MLASentiment: sv.MLAOpinionSentiment,
		MPSentiment:  sv.MPOpinionSentiment,
		Language:     sv.PreferredLanguage,
		NextSteps:    append([]string(nil), nextSteps...),
		Timestamp:    sv.Timestamp,
	}, nil
}

func (h *Handler) build(input *Input) *models.Survey {
	lang := models.NormalizeLanguage(input.PreferredLanguage)
	consent := true
	if input.Consent != nil {
		consent = *input.Consent
	}

	sv := &models.Survey{
		ID:                h.newID(),
		UserPincode:       input.UserPincode,
		VillageName:       strings.TrimSpace(input.VillageName),
		DistrictName:      strings.TrimSpace(input.DistrictName),
		StateName:         strings.TrimSpace(input.StateName),
		MLAName:           strings.TrimSpace(input.MLAName),
		MPName:            strings.TrimSpace(input.MPName),
		MLAOpinionText:    input.MLAOpinionText,
		MPOpinionText:     input.MPOpinionText,
		SatisfactionScore: input.SatisfactionScore,
		PreferredLanguage: lang,
		Channel:           models.NormalizeChannel(input.Channel),
		Consent:           consent,
		Latitude:          input.Latitude,
		Longitude:         input.Longitude,
		Timestamp:         h.now().UTC(),
	}

	sv.MLAOpinionSentiment, sv.MLASentimentScore = h.score(input.MLAOpinionText, lang)
	sv.MPOpinionSentiment, sv.MPSentimentScore = h.score(input.MPOpinionText, lang)
	return sv
}

// score returns nil values for an empty opinion.
func (h *Handler) score(text string, lang models.Language) (*models.SentimentLabel, *float64) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	s := h.scorer.Analyze(text, lang)
	label, score := s.Label, s.Score
	return &label, &score
}

func labelOrEmpty(l *models.SentimentLabel) string {
	if l == nil {
		return ""
	}
	return string(*l)
}
