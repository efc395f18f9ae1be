package sqlstore

import (
	"fmt"
	"slices"
	"strings"
)

// resultSortColumns maps the public sort keys of a result listing to columns.
var resultSortColumns = map[string]string{
	"id":     "r.id",
	"email":  "u.email",
	"roles":  "u.roles",
	"result": "r.result",
	"time":   "r.time",
}

// ApplyOrdering appends an ORDER BY for field, resolved through columns.
// tiebreak is appended as a second key when it differs from the first so
// rows sharing a sort value keep a stable order.
func ApplyOrdering(query string, columns map[string]string, field, defaultField, tiebreak string) (string, error) {
	if field == "" {
		field = defaultField
	}

	column, ok := columns[field]
	if !ok {
		valid := make([]string, 0, len(columns))
		for k := range columns {
			valid = append(valid, k)
		}
		slices.Sort(valid)
		return "", fmt.Errorf("invalid order field: %s (valid fields: %s)", field, strings.Join(valid, ", "))
	}

	clauses := []string{column + " ASC"}
	if tiebreak != "" && tiebreak != column {
		clauses = append(clauses, tiebreak+" ASC")
	}
	return query + " ORDER BY " + strings.Join(clauses, ", "), nil
}

