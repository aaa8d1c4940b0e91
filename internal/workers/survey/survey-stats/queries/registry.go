// internal/workers/survey/survey-stats/queries/registry.go
package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rural-assist/internal/models"
)

type QueryType string

const (
	QueryTypeStats  QueryType = "survey_stats"
	QueryTypeRecent QueryType = "recent_surveys"
	QueryTypeExport QueryType = "export_surveys"
)

var ErrUnknownQueryType = errors.New("unknown query type")

// Params carries the filters shared by all survey queries. Limit applies
// to recent surveys only.
type Params struct {
	Filter models.SurveyFilter
	Limit  int
}

// QueryFunc returns the result, its row count and the execution time in
// milliseconds.
type QueryFunc func(ctx context.Context, db *sql.DB, params Params) (interface{}, int, int64, error)

var Registry = map[QueryType]QueryFunc{
	QueryTypeStats: func(ctx context.Context, db *sql.DB, p Params) (interface{}, int, int64, error) {
		start := time.Now()
		stats, err := Stats(ctx, db, p.Filter)
		if err != nil {
			return nil, 0, 0, err
		}
		return stats, stats.TotalSurveys, time.Since(start).Milliseconds(), nil
	},
	QueryTypeRecent: func(ctx context.Context, db *sql.DB, p Params) (interface{}, int, int64, error) {
		start := time.Now()
		recent, err := Recent(ctx, db, p.Filter.District, p.Limit)
		if err != nil {
			return nil, 0, 0, err
		}
		return recent, len(recent), time.Since(start).Milliseconds(), nil
	},
	QueryTypeExport: func(ctx context.Context, db *sql.DB, p Params) (interface{}, int, int64, error) {
		start := time.Now()
		records, err := Export(ctx, db, p.Filter)
		if err != nil {
			return nil, 0, 0, err
		}
		return records, len(records), time.Since(start).Milliseconds(), nil
	},
}

func Execute(ctx context.Context, db *sql.DB, queryType QueryType, params Params) (interface{}, int, int64, error) {
	fn, exists := Registry[queryType]
	if !exists {
		return nil, 0, 0, fmt.Errorf("%w: %s", ErrUnknownQueryType, queryType)
	}
	return fn(ctx, db, params)
}
