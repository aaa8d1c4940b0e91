// internal/workers/survey/survey-stats/export.go
package surveystats

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"rural-assist/internal/common/errors"
	"rural-assist/internal/models"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

var exportColumns = []string{
	"survey_id", "pincode", "district", "state",
	"mla_sentiment", "mla_sentiment_score",
	"mp_sentiment", "mp_sentiment_score",
	"satisfaction_score", "language", "channel", "timestamp",
}

// ExportDocument is the JSON export body.
type ExportDocument struct {
	Data         []models.SurveyExportRecord `json:"data"`
	TotalRecords int                         `json:"total_records"`
}

// NormalizeFormat defaults an empty format to json and rejects anything
// other than json or csv.
func NormalizeFormat(format string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", errors.NewInvalidInputError("format must be 'json' or 'csv'")
	}
}

// Encode renders records in the given format and returns the content type.
func Encode(records []models.SurveyExportRecord, format string) (string, []byte, error) {
	f, err := NormalizeFormat(format)
	if err != nil {
		return "", nil, err
	}
	if f == FormatJSON {
		body, err := json.Marshal(ExportDocument{Data: records, TotalRecords: len(records)})
		if err != nil {
			return "", nil, errors.NewInternalError(err)
		}
		return "application/json", body, nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportColumns); err != nil {
		return "", nil, errors.NewInternalError(err)
	}
	for _, r := range records {
		if err := w.Write(csvRow(r)); err != nil {
			return "", nil, errors.NewInternalError(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, errors.NewInternalError(err)
	}
	return "text/csv; charset=utf-8", buf.Bytes(), nil
}

func csvRow(r models.SurveyExportRecord) []string {
	return []string{
		r.SurveyID,
		r.Pincode,
		r.District,
		r.State,
		labelCell(r.MLASentiment),
		floatCell(r.MLASentimentScore),
		labelCell(r.MPSentiment),
		floatCell(r.MPSentimentScore),
		intCell(r.SatisfactionScore),
		r.Language,
		r.Channel,
		r.Timestamp.UTC().Format(time.RFC3339),
	}
}

func labelCell(l *models.SentimentLabel) string {
	if l == nil {
		return ""
	}
	return string(*l)
}

func floatCell(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func intCell(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}
