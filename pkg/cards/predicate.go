package cards

import (
	"fmt"
	"strings"
)

// BuildPredicate renders filters and an optional free-text query into a
// SQL predicate with $N placeholders and the matching ordered argument
// list. The i-th argument always belongs to placeholder $i, so callers
// appending their own clauses (limit, offset) must number them starting
// at len(args)+1.
//
// A non-empty query produces one ILIKE condition per search field,
// OR-combined; the type filter is AND-combined with the query block.
// With nothing to constrain, the predicate is the tautology "TRUE" so it
// can be interpolated into a WHERE clause unconditionally.
func BuildPredicate(filters SearchFilters, query string) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if query != "" {
		fields := filters.Fields
		if len(fields) == 0 {
			fields = []SearchField{FieldName}
		}
		matches := make([]string, 0, len(fields))
		for _, f := range fields {
			args = append(args, "%"+query+"%")
			matches = append(matches, fmt.Sprintf("%s ILIKE $%d", f.Column(), len(args)))
		}
		conds = append(conds, "("+strings.Join(matches, " OR ")+")")
	}

	if filters.MainType != nil {
		args = append(args, string(*filters.MainType))
		conds = append(conds, fmt.Sprintf("main_type = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "TRUE", nil
	}
	return strings.Join(conds, " AND "), args
}
