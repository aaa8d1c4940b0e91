// internal/workers/chat/detect-intent/handler.go
package detectintent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"rural-assist/internal/common/camunda"
	"rural-assist/internal/common/errors"
	"rural-assist/internal/common/logger"
	"rural-assist/internal/common/metrics"
	"rural-assist/internal/common/validation"
	"rural-assist/internal/lexicon"
	"rural-assist/internal/models"
)

const TaskType = "detect-intent"

const inputSchema = `{
	"type": "object",
	"required": ["text"],
	"properties": {
		"text": {"type": "string", "minLength": 1, "maxLength": 1000},
		"context": {"type": "object"},
		"language": {"type": "string"}
	}
}`

type Handler struct {
	config     *Config
	classifier *Classifier
	logger     logger.Logger
}

func NewHandler(config *Config, store *lexicon.Store, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		classifier: NewClassifier(config, store, l),
		logger:     l,
	}
}

// Classifier exposes the underlying classifier to in-process callers.
func (h *Handler) Classifier() *Classifier {
	return h.classifier
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
	if res := validation.ValidateInput(vars, inputSchema); !res.Valid {
		return nil, errors.NewValidationFailedError(strings.Join(res.GetErrorMessages(), "; "))
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, errors.NewInvalidInputError(fmt.Sprintf("decode variables: %v", err))
	}
	return &input, nil
}

// Execute classifies the text and reports what is still needed to answer it.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || strings.TrimSpace(input.Text) == "" {
		return nil, errors.NewInvalidInputError("text is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.NewInternalError(err)
	}

	intent := h.classifier.Detect(input.Text, input.Context)
	missing := h.classifier.MissingEntities(intent)
	lang := models.NormalizeLanguage(input.Language)

	out := &Output{
		Intent:          intent.Name,
		Confidence:      intent.Confidence,
		Entities:        intent.Entities,
		Valid:           h.classifier.Validate(intent),
		MissingEntities: missing,
	}
	if len(missing) > 0 {
		out.ClarificationQuestion = h.classifier.ClarificationQuestion(intent.Name, missing, lang)
	}

	h.logger.Debug("intent detected", map[string]interface{}{
		"intent":     intent.Name,
		"confidence": intent.Confidence,
		"missing":    missing,
	})
	return out, nil
}
