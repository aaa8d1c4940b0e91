// internal/workers/survey/survey-stats/queries/filter.go
package queries

import (
	"fmt"
	"strings"

	"rural-assist/internal/models"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(s)) + "%"
}

// where renders the filter as a WHERE clause with positional parameters.
func where(f models.SurveyFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	add := func(column, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		args = append(args, containsPattern(value))
		conds = append(conds, fmt.Sprintf("%s ILIKE $%d", column, len(args)))
	}
	add("district_name", f.District)
	add("state_name", f.State)

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
