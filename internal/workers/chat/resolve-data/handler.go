// internal/workers/chat/resolve-data/handler.go
package resolvedata

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

const TaskType = "resolve-data"

const inputSchema = `{
	"type": "object",
	"required": ["intent"],
	"properties": {
		"intent": {"type": "string", "minLength": 1},
		"entities": {"type": ["object", "null"]},
		"question": {"type": "string", "maxLength": 1000},
		"context": {"type": ["object", "null"]}
	}
}`

type Handler struct {
	config   *Config
	resolver *Resolver
	logger   logger.Logger
}

func NewHandler(config *Config, resolver *Resolver, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		resolver: resolver,
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
	if res := validation.ValidateInput(vars, inputSchema); !res.Valid {
		return nil, errors.NewValidationFailedError(strings.Join(res.GetErrorMessages(), "; "))
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, errors.NewInvalidInputError(fmt.Sprintf("decode variables: %v", err))
	}
	return &input, nil
}

// Execute resolves data for an already classified intent. Validation
// failures come back as a result with the validation source, not an error.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || strings.TrimSpace(string(input.Intent)) == "" {
		return nil, errors.NewInvalidInputError("intent is required")
	}

	intent := models.Intent{Name: input.Intent, Entities: input.Entities}
	result := h.resolver.Resolve(ctx, intent, input.Question, input.Context)

	h.logger.Debug("data resolved", map[string]interface{}{
		"intent": input.Intent,
		"type":   result.Type,
		"source": result.Source,
	})
	return &Output{Result: result, DataSource: result.Source}, nil
}
