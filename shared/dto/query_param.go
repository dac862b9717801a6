package dto

import (
	"fmt"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams carries the ordering of a list query. SortBy may hold a comma separated list of columns.
type QueryParams struct {
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// Ordering renders the ORDER BY clause, applying SortDir to every column in SortBy.
func (q QueryParams) Ordering() string {
	if q.SortBy == "" {
		return ""
	}

	dir := strings.ToUpper(q.SortDir)
	if dir != SortDirAsc {
		dir = SortDirDesc
	}

	columns := strings.Split(q.SortBy, ",")
	for i, col := range columns {
		columns[i] = fmt.Sprintf("%s %s", strings.TrimSpace(col), dir)
	}

	return "ORDER BY " + strings.Join(columns, ", ")
}
