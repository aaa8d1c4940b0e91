// internal/workers/chat/analyze-sentiment/handler.go
package analyzesentiment

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

const TaskType = "analyze-sentiment"

const inputSchema = `{
	"type": "object",
	"properties": {
		"text": {"type": "string"},
		"texts": {"type": "array", "items": {"type": "string"}, "maxItems": 500},
		"language": {"type": "string"},
		"explain": {"type": "boolean"}
	},
	"anyOf": [
		{"required": ["text"]},
		{"required": ["texts"]}
	]
}`

type Handler struct {
	config   *Config
	analyzer *Analyzer
	logger   logger.Logger
}

func NewHandler(config *Config, store *lexicon.Store, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		analyzer: NewAnalyzer(config, store, l),
		logger:   l,
	}
}

func (h *Handler) Analyzer() *Analyzer {
	return h.analyzer
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

// Execute scores a single text or a batch. Batches also get a summary.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewInvalidInputError("input is required")
	}

	lang := h.language(input)
	out := &Output{Language: lang}

	if len(input.Texts) > 0 {
		out.Sentiments = h.analyzer.AnalyzeBatch(ctx, input.Texts, lang)
		summary := Summarize(out.Sentiments)
		out.Summary = &summary
		h.logger.Debug("batch analyzed", map[string]interface{}{
			"count":    len(input.Texts),
			"positive": summary.PositiveCount,
			"negative": summary.NegativeCount,
		})
		return out, nil
	}

	s := h.analyzer.Analyze(input.Text, lang)
	out.Sentiment = &s
	if input.Explain {
		exp := h.analyzer.Explain(input.Text, s, lang)
		out.Explanation = &exp
	}
	return out, nil
}

func (h *Handler) language(input *Input) models.Language {
	code := strings.TrimSpace(input.Language)
	if code != "" && code != "auto" {
		return models.NormalizeLanguage(code)
	}
	sample := input.Text
	if sample == "" && len(input.Texts) > 0 {
		sample = input.Texts[0]
	}
	return h.analyzer.DetectLanguage(sample)
}
