package lumen

import (
	"context"
	"time"

	"github.com/lumendb/lumen-go/api"
	"github.com/lumendb/lumen-go/config"
	"github.com/lumendb/lumen-go/cursor"
)

// Collection is a handle on one collection: schemaless documents,
// searched with find and findAndRerank. It implements
// cursor.DataSource.
type Collection struct {
	name      string
	keyspace  string
	commander api.Commander
	timeouts  config.Timeouts
}

// Name returns the qualified collection name.
func (c *Collection) Name() string {
	return c.keyspace + "." + c.name
}

// Commander returns the commander bound to this collection's endpoint.
func (c *Collection) Commander() api.Commander {
	return c.commander
}

// Find returns an idle cursor over the documents matching filter. A nil
// filter matches everything. The cursor performs no network activity
// until first consumed.
func (c *Collection) Find(filter map[string]any, opts ...*FindOptions) *cursor.DocumentCursor {
	o := firstFindOptions(opts)
	return cursor.NewDocumentCursor(c, cursor.Params{
		Filter:            filter,
		Projection:        o.Projection,
		Sort:              o.Sort,
		Limit:             o.Limit,
		Skip:              o.Skip,
		IncludeSimilarity: o.IncludeSimilarity,
		IncludeSortVector: o.IncludeSortVector,
	}, cursorOptions(c.timeouts, o.RequestTimeout, o.Timeout, o.InitialPageState))
}

// FindAndRerank returns an idle cursor over hybrid search results:
// documents found by the subsearches of the sort clause, reranked into
// a single ordering.
func (c *Collection) FindAndRerank(filter map[string]any, opts ...*FindAndRerankOptions) *cursor.HybridCursor {
	o := firstRerankOptions(opts)
	return cursor.NewHybridCursor(c, cursor.Params{
		Filter:            filter,
		Sort:              o.Sort,
		Limit:             o.Limit,
		HybridProjection:  o.Projection,
		HybridLimits:      o.HybridLimits,
		RerankOn:          o.RerankOn,
		RerankQuery:       o.RerankQuery,
		IncludeScores:     o.IncludeScores,
		IncludeSortVector: o.IncludeSortVector,
	}, cursorOptions(c.timeouts, o.RequestTimeout, o.Timeout, o.InitialPageState))
}

// Command sends one arbitrary command to this collection's endpoint,
// for operations the typed surface does not cover. The optional timeout
// overrides the configured general-method budget.
func (c *Collection) Command(ctx context.Context, payload map[string]any, timeout ...time.Duration) (map[string]any, error) {
	return runCommand(ctx, c.commander, c.timeouts, payload, timeout)
}

// cursorOptions derives a cursor's timeout pair from the configured
// defaults and the per-call overrides.
func cursorOptions(timeouts config.Timeouts, request, overall time.Duration, initialPageState *string) cursor.Options {
	opts := cursor.Options{InitialPageState: initialPageState}
	if request <= 0 {
		request = timeouts.Request
	}
	if request > 0 {
		opts.RequestTimeout = request
		opts.RequestTimeoutLabel = "requestTimeout"
	}
	if overall > 0 {
		opts.OverallTimeout = overall
		opts.OverallTimeoutLabel = "timeout"
	}
	return opts
}

// runCommand is the shared one-shot command path of Collection and
// Table.
func runCommand(ctx context.Context, commander api.Commander, timeouts config.Timeouts, payload map[string]any, timeout []time.Duration) (map[string]any, error) {
	overall := timeouts.GeneralMethod
	label := "generalMethodTimeout"
	if len(timeout) > 0 && timeout[0] > 0 {
		overall = timeout[0]
		label = "timeout"
	}
	budget := api.NewBudget(overall, label)
	tc, err := budget.Remaining(timeouts.Request, "requestTimeout")
	if err != nil {
		return nil, err
	}
	return commander.Request(ctx, payload, tc)
}
