package postgres

import (
	"context"
	"fmt"
)

const columnsQuery = `SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1`

// Columns lists the column names of table in the current schema.
func (c *Connection) Columns(ctx context.Context, table string) (map[string]bool, error) {
	if c == nil || c.Read == nil {
		return nil, errNotConnected
	}

	var names []string
	if err := c.Read.SelectContext(ctx, &names, columnsQuery, table); err != nil {
		return nil, fmt.Errorf("failed to inspect columns of %s: %w", table, err)
	}

	columns := make(map[string]bool, len(names))
	for _, name := range names {
		columns[name] = true
	}

	return columns, nil
}
