// internal/workers/survey/survey-stats/handler.go
package surveystats

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
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
	"rural-assist/internal/workers/survey/survey-stats/queries"
)

const TaskType = "survey-stats"

const inputSchema = `{
	"type": "object",
	"required": ["queryType"],
	"properties": {
		"queryType": {"type": "string", "enum": ["survey_stats", "recent_surveys", "export_surveys"]},
		"district": {"type": ["string", "null"]},
		"state": {"type": ["string", "null"]},
		"limit": {"type": ["integer", "null"], "minimum": 0},
		"format": {"type": ["string", "null"]}
	}
}`

type Handler struct {
	config *Config
	db     *sql.DB
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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

// Execute runs one registered survey query. A csv export returns the
// encoded document as a string.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewInvalidInputError("input cannot be nil")
	}

	queryType := QueryType(input.QueryType)
	if _, exists := queries.Registry[queryType]; !exists {
		return nil, errors.NewInvalidInputError(fmt.Sprintf("unknown query type: %s", input.QueryType))
	}

	format := FormatJSON
	if queryType == QueryTypeExport {
		f, err := NormalizeFormat(input.Format)
		if err != nil {
			return nil, err
		}
		format = f
	}

	params := queries.Params{
		Filter: models.SurveyFilter{District: input.District, State: input.State},
		Limit:  h.limit(input.Limit),
	}

	data, rowCount, execTime, err := queries.Execute(ctx, h.db, queryType, params)
	if err != nil {
		return nil, h.queryError(ctx, queryType, err)
	}

	if format == FormatCSV {
		_, body, err := Encode(data.([]models.SurveyExportRecord), FormatCSV)
		if err != nil {
			return nil, err
		}
		data = string(body)
	}

	return &Output{
		Data:               data,
		RowCount:           rowCount,
		QueryExecutionTime: execTime,
	}, nil
}

// Stats aggregates surveys for the filter.
func (h *Handler) Stats(ctx context.Context, filter models.SurveyFilter) (*models.SurveyStats, error) {
	stats, err := queries.Stats(ctx, h.db, filter)
	if err != nil {
		return nil, h.queryError(ctx, QueryTypeStats, err)
	}
	return stats, nil
}

// Recent lists the newest surveys without personal details.
func (h *Handler) Recent(ctx context.Context, district string, limit int) ([]models.SurveySummary, error) {
	recent, err := queries.Recent(ctx, h.db, district, h.limit(limit))
	if err != nil {
		return nil, h.queryError(ctx, QueryTypeRecent, err)
	}
	return recent, nil
}

// Export encodes the matching surveys. The format is checked before the
// database is touched.
func (h *Handler) Export(ctx context.Context, filter models.SurveyFilter, format string) (string, []byte, error) {
	f, err := NormalizeFormat(format)
	if err != nil {
		return "", nil, err
	}
	records, err := queries.Export(ctx, h.db, filter)
	if err != nil {
		return "", nil, h.queryError(ctx, QueryTypeExport, err)
	}
	return Encode(records, f)
}

func (h *Handler) limit(requested int) int {
	if requested <= 0 {
		requested = h.config.RecentLimit
	}
	return queries.ClampLimit(requested)
}

func (h *Handler) queryError(ctx context.Context, queryType QueryType, err error) error {
	h.logger.Error("survey query failed", map[string]interface{}{
		"queryType": queryType,
		"error":     err.Error(),
	})
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.NewUpstreamTimeoutError("postgres")
	}
	return errors.NewDatabaseQueryFailedError(string(queryType), err)
}
