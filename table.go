package lumen

import (
	"context"
	"time"

	"github.com/lumendb/lumen-go/api"
	"github.com/lumendb/lumen-go/config"
	"github.com/lumendb/lumen-go/cursor"
)

// Table is a handle on one table: schemaful rows whose find responses
// are decoded through the projection schema the server attaches. It
// implements cursor.DataSource.
type Table struct {
	name      string
	keyspace  string
	commander api.Commander
	timeouts  config.Timeouts
}

// Name returns the qualified table name.
func (t *Table) Name() string {
	return t.keyspace + "." + t.name
}

// Commander returns the commander bound to this table's endpoint.
func (t *Table) Commander() api.Commander {
	return t.commander
}

// Find returns an idle cursor over the rows matching filter. A nil
// filter matches everything.
func (t *Table) Find(filter map[string]any, opts ...*FindOptions) *cursor.RowCursor {
	o := firstFindOptions(opts)
	return cursor.NewRowCursor(t, cursor.Params{
		Filter:            filter,
		Projection:        o.Projection,
		Sort:              o.Sort,
		Limit:             o.Limit,
		Skip:              o.Skip,
		IncludeSimilarity: o.IncludeSimilarity,
		IncludeSortVector: o.IncludeSortVector,
	}, cursorOptions(t.timeouts, o.RequestTimeout, o.Timeout, o.InitialPageState))
}

// Command sends one arbitrary command to this table's endpoint.
func (t *Table) Command(ctx context.Context, payload map[string]any, timeout ...time.Duration) (map[string]any, error) {
	return runCommand(ctx, t.commander, t.timeouts, payload, timeout)
}
