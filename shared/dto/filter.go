package dto

import (
	"fmt"
	"maps"
	"strings"
)

// FilterOperatorEq is the only comparison the repositories issue. Any other operator renders no clause.
const FilterOperatorEq = "eq"

const FilterGroupOperatorAnd = "AND"

// Filter compares one column against a value bound as the named argument :Field.
type Filter struct {
	Field    string
	Value    any
	Operator string
	Table    string
}

// Eq builds an equality filter on table.field.
func Eq(table, field string, value any) Filter {
	return Filter{Field: field, Value: value, Operator: FilterOperatorEq, Table: table}
}

func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}

	if f.Operator != FilterOperatorEq {
		return "", args
	}

	column := f.Field
	if f.Table != "" {
		column = f.Table + "." + f.Field
	}

	args[f.Field] = f.Value

	return fmt.Sprintf("%s = :%s", column, f.Field), args
}

// FilterGroup joins Filters, which hold Filter or nested FilterGroup values, with Operator.
type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	whereClause := []string{}

	for _, filter := range f.Filters {
		var (
			where string
			arg   map[string]any
		)

		switch fill := filter.(type) {
		case Filter:
			where, arg = fill.GetWhereClause()
		case FilterGroup:
			where, arg = fill.GetWhereClause()
		default:
			continue
		}

		if where == "" {
			continue
		}

		whereClause = append(whereClause, where)
		maps.Copy(args, arg)
	}

	if len(whereClause) == 0 {
		return "", args
	}

	return fmt.Sprintf("(%s)", strings.Join(whereClause, " "+f.Operator+" ")), args
}
