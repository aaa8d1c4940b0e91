// internal/workers/chat/generate-response/handler.go
package generateresponse

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
	"rural-assist/internal/models"
)

const TaskType = "generate-response"

const inputSchema = `{
	"type": "object",
	"required": ["intent", "result"],
	"properties": {
		"intent": {
			"type": "object",
			"required": ["name"],
			"properties": {
				"name": {"type": "string", "minLength": 1},
				"confidence": {"type": "number", "minimum": 0, "maximum": 1}
			}
		},
		"result": {
			"type": "object",
			"required": ["type", "source"],
			"properties": {
				"type": {"type": "string"},
				"source": {"type": "string"}
			}
		},
		"language": {"type": "string"},
		"context": {"type": ["object", "null"]}
	}
}`

type Handler struct {
	config    *Config
	generator *Generator
	logger    logger.Logger
}

// NewHandler fails when the template table does not validate.
func NewHandler(config *Config, table *TemplateTable, log logger.Logger) (*Handler, error) {
	if table == nil {
		var err error
		if table, err = DefaultTemplateTable(); err != nil {
			return nil, err
		}
	}
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		generator: NewGenerator(table, NewRand(config.RandomSeed), l),
		logger:    l,
	}, nil
}

// Generator exposes the assembler for in-process callers.
func (h *Handler) Generator() *Generator {
	return h.generator
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

// Execute assembles the reply. Assembly faults are reported in the reply
// itself, so only missing input is an error.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || input.Intent.Name == "" {
		return nil, errors.NewInvalidInputError("intent is required")
	}

	lang := models.NormalizeLanguage(input.Language)
	resp := h.generator.Generate(input.Intent, input.Result, lang, input.Context)

	return &Output{
		Message:     resp.Message,
		Source:      resp.Source,
		Suggestions: resp.Suggestions,
		Metadata:    resp.Metadata,
		Language:    lang,
	}, nil
}
