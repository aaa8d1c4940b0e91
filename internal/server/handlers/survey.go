package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rural-assist/internal/common/errors"
	"rural-assist/internal/common/logger"
	"rural-assist/internal/common/validation"
	"rural-assist/internal/models"
	"rural-assist/internal/server/dto"
	submitsurvey "rural-assist/internal/workers/survey/submit-survey"
	surveystats "rural-assist/internal/workers/survey/survey-stats"
)

// SurveySubmitter stores one survey submission.
type SurveySubmitter interface {
	Execute(ctx context.Context, input *submitsurvey.Input) (*submitsurvey.Output, error)
}

// SurveyReader serves aggregated and anonymized survey data.
type SurveyReader interface {
	Stats(ctx context.Context, filter models.SurveyFilter) (*models.SurveyStats, error)
	Recent(ctx context.Context, district string, limit int) ([]models.SurveySummary, error)
	Export(ctx context.Context, filter models.SurveyFilter, format string) (string, []byte, error)
}

// SurveyHandler handles the survey endpoints
type SurveyHandler struct {
	submitter SurveySubmitter
	reader    SurveyReader
	logger    logger.Logger
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(submitter SurveySubmitter, reader SurveyReader, log logger.Logger) *SurveyHandler {
	return &SurveyHandler{
		submitter: submitter,
		reader:    reader,
		logger:    log.WithFields(map[string]interface{}{"handler": "survey"}),
	}
}

// Start handles POST /survey/start. The body is optional.
func (h *SurveyHandler) Start(c *gin.Context) {
	var req dto.StartSurveyRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, submitsurvey.Start(req))
}

// Submit handles POST /survey/submit. The raw body is schema-checked
// before it is decoded.
func (h *SurveyHandler) Submit(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		badRequest(c, err)
		return
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		badRequest(c, err)
		return
	}
	if res := validation.ValidateInput(doc, submitsurvey.SubmissionSchema); !res.Valid {
		respondError(c, errors.NewValidationFailedError(strings.Join(res.GetErrorMessages(), "; ")))
		return
	}

	var input submitsurvey.Input
	if err := json.Unmarshal(raw, &input); err != nil {
		badRequest(c, err)
		return
	}

	out, err := h.submitter.Execute(c.Request.Context(), &input)
	if err != nil {
		h.logger.Error("survey submission failed", map[string]interface{}{"error": err.Error()})
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Stats handles GET /survey/stats
func (h *SurveyHandler) Stats(c *gin.Context) {
	var q dto.StatsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	stats, err := h.reader.Stats(c.Request.Context(), models.SurveyFilter{District: q.District, State: q.State})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Recent handles GET /survey/recent
func (h *SurveyHandler) Recent(c *gin.Context) {
	var q dto.RecentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	recent, err := h.reader.Recent(c.Request.Context(), q.District, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RecentResponse{RecentSurveys: recent})
}

// Export handles GET /survey/export
func (h *SurveyHandler) Export(c *gin.Context) {
	var q dto.ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	contentType, body, err := h.reader.Export(c.Request.Context(), models.SurveyFilter{District: q.District, State: q.State}, q.Format)
	if err != nil {
		respondError(c, err)
		return
	}

	if strings.HasPrefix(contentType, "text/csv") {
		c.Header("Content-Disposition", `attachment; filename="surveys.`+surveystats.FormatCSV+`"`)
	}
	c.Data(http.StatusOK, contentType, body)
}
