package surveystats

import "rural-assist/internal/workers/survey/survey-stats/queries"

type Input struct {
	QueryType string `json:"queryType"`
	District  string `json:"district,omitempty"`
	State     string `json:"state,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Format    string `json:"format,omitempty"`
}

type Output struct {
	Data               interface{} `json:"data"`
	RowCount           int         `json:"rowCount"`
	QueryExecutionTime int64       `json:"queryExecutionTime"` // milliseconds
}

type QueryType = queries.QueryType

var (
	QueryTypeStats  = queries.QueryTypeStats
	QueryTypeRecent = queries.QueryTypeRecent
	QueryTypeExport = queries.QueryTypeExport
)
