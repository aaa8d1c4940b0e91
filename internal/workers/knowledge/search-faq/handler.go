// internal/workers/knowledge/search-faq/handler.go
package searchfaq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"

	"rural-assist/internal/common/camunda"
	"rural-assist/internal/common/errors"
	"rural-assist/internal/common/logger"
	"rural-assist/internal/common/metrics"
)

const TaskType = "search-faq"

type Handler struct {
	config *Config
	kb     *KnowledgeBase
	logger logger.Logger
}

func NewHandler(config *Config, es *elasticsearch.Client, fallback FAQSource, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		kb:     NewKnowledgeBase(config, es, fallback, l),
		logger: l,
	}
}

// KnowledgeBase exposes the searcher for in-process callers.
func (h *Handler) KnowledgeBase() *KnowledgeBase {
	return h.kb
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout+time.Second)
	defer cancel()

	var input Input
	err := json.Unmarshal([]byte(job.Variables), &input)
	if err != nil {
		err = errors.NewInvalidInputError(fmt.Sprintf("decode variables: %v", err))
	} else {
		var output *Output
		output, err = h.Execute(ctx, &input)
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || strings.TrimSpace(input.Question) == "" {
		return nil, errors.NewInvalidInputError("question is required")
	}
	return &Output{Result: h.kb.Answer(ctx, input.Question)}, nil
}
