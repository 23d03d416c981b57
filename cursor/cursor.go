package cursor

import (
	"context"
	"fmt"
	"time"

	"github.com/lumendb/lumen-go/api"
	"github.com/lumendb/lumen-go/ecode"
	"github.com/lumendb/lumen-go/types"
)

// State is the lifecycle state of a cursor.
type State string

const (
	// StateIdle means no fetch has happened yet; the cursor can still
	// be reconfigured.
	StateIdle State = "idle"
	// StateStarted means consumption is under way: at least one item
	// has been yielded.
	StateStarted State = "started"
	// StateClosed means the cursor is exhausted or was closed; it holds
	// no buffered items and will never fetch again.
	StateClosed State = "closed"
)

// Alive reports whether the cursor can still yield items.
func (s State) Alive() bool {
	return s != StateClosed
}

// Cursor is a lazily-paginated, resumable sequence of results from one
// find-family command. R is the raw item type as decoded from the wire,
// T the type yielded to the caller after the mapping chain; the two
// coincide until Map is applied.
//
// A cursor starts idle, moves to started when the first item is
// consumed and ends closed when the sequence is exhausted (or on
// Close).
// Query parameters are frozen at construction: the With* methods return
// a fresh idle cursor instead of mutating the receiver.
type Cursor[R, T any] struct {
	src       DataSource
	params    Params
	opts      Options
	newEngine engineFactory[R]
	engine    queryEngine[R]
	mapper    func(R) T

	state          State
	buffer         []R
	pagesRetrieved int
	consumed       int
	nextPageState  *string
	lastStatus     map[string]any
	budget         *api.Budget
}

// DocumentCursor iterates collection documents.
type DocumentCursor = Cursor[types.Document, types.Document]

// RowCursor iterates table rows.
type RowCursor = Cursor[types.Row, types.Row]

// HybridCursor iterates findAndRerank results.
type HybridCursor = Cursor[RerankedResult[types.Document], RerankedResult[types.Document]]

// NewDocumentCursor creates an idle cursor over a collection find.
func NewDocumentCursor(src DataSource, params Params, opts Options) *DocumentCursor {
	return newCursor(src, newDocumentEngine, params, opts)
}

// NewRowCursor creates an idle cursor over a table find.
func NewRowCursor(src DataSource, params Params, opts Options) *RowCursor {
	return newCursor(src, newTableEngine, params, opts)
}

// NewHybridCursor creates an idle cursor over a findAndRerank.
func NewHybridCursor(src DataSource, params Params, opts Options) *HybridCursor {
	return newCursor(src, newHybridEngine, params, opts)
}

func newCursor[R any](src DataSource, factory engineFactory[R], params Params, opts Options) *Cursor[R, R] {
	c := &Cursor[R, R]{
		src:       src,
		params:    params,
		opts:      opts,
		newEngine: factory,
	}
	c.engine = factory(src, params)
	c.reset()
	return c
}

// reset puts the cursor back into the pristine idle state, discarding
// all retrieval progress and restarting the overall time budget.
func (c *Cursor[R, T]) reset() {
	c.state = StateIdle
	c.buffer = nil
	c.pagesRetrieved = 0
	c.consumed = 0
	c.nextPageState = c.opts.InitialPageState
	c.lastStatus = nil
	c.budget = api.NewBudget(c.opts.OverallTimeout, c.opts.OverallTimeoutLabel)
}

// copyWith builds a fresh idle cursor sharing this cursor's source,
// engine factory and mapper, around amended parameters and options.
func (c *Cursor[R, T]) copyWith(params Params, opts Options) *Cursor[R, T] {
	n := &Cursor[R, T]{
		src:       c.src,
		params:    params,
		opts:      opts,
		newEngine: c.newEngine,
		mapper:    c.mapper,
	}
	n.engine = n.newEngine(n.src, n.params)
	n.reset()
	return n
}

func (c *Cursor[R, T]) ensureIdle() error {
	if c.state != StateIdle {
		return errNotIdle(c.state)
	}
	return nil
}

func (c *Cursor[R, T]) ensureAlive() error {
	if !c.state.Alive() {
		return errNotAlive(c.state)
	}
	return nil
}

// WithFilter returns a fresh idle cursor with the given filter.
// Reconfiguration is only admitted while the cursor is idle.
func (c *Cursor[R, T]) WithFilter(filter map[string]any) (*Cursor[R, T], error) {
	if err := c.ensureIdle(); err != nil {
		return nil, err
	}
	p := c.params
	p.Filter = filter
	return c.copyWith(p, c.opts), nil
}

// WithProjection returns a fresh idle cursor with the given projection.
// Accepts a field-name list, a map of booleans or a full wire-form map.
// Not admitted after Map: a mapper already in place was written against
// the current item shape.
func (c *Cursor[R, T]) WithProjection(projection any) (*Cursor[R, T], error) {
	if err := c.ensureIdle(); err != nil {
		return nil, err
	}
	if c.mapper != nil {
		return nil, &StateError{State: c.state, Reason: "cannot change projection of a cursor with a mapping applied"}
	}
	p := c.params
	p.Projection = projection
	p.HybridProjection = projection
	return c.copyWith(p, c.opts), nil
}

// WithSort returns a fresh idle cursor with the given sort criterion.
func (c *Cursor[R, T]) WithSort(sort any) (*Cursor[R, T], error) {
	if err := c.ensureIdle(); err != nil {
		return nil, err
	}
	p := c.params
	p.Sort = sort
	return c.copyWith(p, c.opts), nil
}

// WithLimit returns a fresh idle cursor capped at limit total results.
// A zero limit means no limit.
func (c *Cursor[R, T]) WithLimit(limit int) (*Cursor[R, T], error) {
	if err := c.ensureIdle(); err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, fmt.Errorf("cursor limit: %s", ecode.FieldIsNegative("limit"))
	}
	p := c.params
	p.Limit = limit
	return c.copyWith(p, c.opts), nil
}

// WithSkip returns a fresh idle cursor skipping the first skip results.
func (c *Cursor[R, T]) WithSkip(skip int) (*Cursor[R, T], error) {
	if err := c.ensureIdle(); err != nil {
		return nil, err
	}
	if skip < 0 {
		return nil, fmt.Errorf("cursor skip: %s", ecode.FieldIsNegative("skip"))
	}
	p := c.params
	p.Skip = &skip
	return c.copyWith(p, c.opts), nil
}

// WithIncludeSimilarity returns a fresh idle cursor that asks the API
// to attach a $similarity value to each result of a vector sort. Not
// admitted after Map, since it changes the item shape.
func (c *Cursor[R, T]) WithIncludeSimilarity(include bool) (*Cursor[R, T], error) {
	if err := c.ensureIdle(); err != nil {
		return nil, err
	}
	if c.mapper != nil {
		return nil, &StateError{State: c.state, Reason: "cannot change includeSimilarity of a cursor with a mapping applied"}
	}
	p := c.params
	p.IncludeSimilarity = &include
	return c.copyWith(p, c.opts), nil
}

// WithIncludeSortVector returns a fresh idle cursor that asks the API
// to echo the query vector back in each page's status.
func (c *Cursor[R, T]) WithIncludeSortVector(include bool) (*Cursor[R, T], error) {
	if err := c.ensureIdle(); err != nil {
		return nil, err
	}
	p := c.params
	p.IncludeSortVector = &include
	return c.copyWith(p, c.opts), nil
}

// WithInitialPageState returns a fresh idle cursor whose first fetch
// resumes from a previously returned page state.
func (c *Cursor[R, T]) WithInitialPageState(pageState string) (*Cursor[R, T], error) {
	if err := c.ensureIdle(); err != nil {
		return nil, err
	}
	o := c.opts
	o.InitialPageState = &pageState
	return c.copyWith(c.params, o), nil
}

// WithRerankOn returns a fresh idle cursor reranking on the given
// field. Applies to findAndRerank cursors only.
func (c *Cursor[R, T]) WithRerankOn(field string) (*Cursor[R, T], error) {
	if err := c.ensureIdle(); err != nil {
		return nil, err
	}
	p := c.params
	p.RerankOn = field
	return c.copyWith(p, c.opts), nil
}

// WithRerankQuery returns a fresh idle cursor with a dedicated rerank
// query. Applies to findAndRerank cursors only.
func (c *Cursor[R, T]) WithRerankQuery(query string) (*Cursor[R, T], error) {
	if err := c.ensureIdle(); err != nil {
		return nil, err
	}
	p := c.params
	p.RerankQuery = query
	return c.copyWith(p, c.opts), nil
}

// WithHybridLimits returns a fresh idle cursor with per-subquery hit
// limits, either a single number or a map of subquery name to number.
// Applies to findAndRerank cursors only.
func (c *Cursor[R, T]) WithHybridLimits(limits any) (*Cursor[R, T], error) {
	if err := c.ensureIdle(); err != nil {
		return nil, err
	}
	p := c.params
	p.HybridLimits = limits
	return c.copyWith(p, c.opts), nil
}

// WithIncludeScores returns a fresh idle cursor that asks the API to
// attach per-stage scores to each findAndRerank result.
func (c *Cursor[R, T]) WithIncludeScores(include bool) (*Cursor[R, T], error) {
	if err := c.ensureIdle(); err != nil {
		return nil, err
	}
	p := c.params
	p.IncludeScores = &include
	return c.copyWith(p, c.opts), nil
}

// Map returns a fresh idle cursor yielding fn applied to each item of
// c, composing with any mapping already in place. It is a package
// function because the result's item type differs from the receiver's.
func Map[R, T, U any](c *Cursor[R, T], fn func(T) U) (*Cursor[R, U], error) {
	if err := c.ensureIdle(); err != nil {
		return nil, err
	}
	prev := c.mapper
	mapper := func(raw R) U {
		if prev != nil {
			return fn(prev(raw))
		}
		// No mapper yet, so T is R.
		return fn(any(raw).(T))
	}
	n := &Cursor[R, U]{
		src:       c.src,
		params:    c.params,
		opts:      c.opts,
		newEngine: c.newEngine,
		mapper:    mapper,
	}
	n.engine = n.newEngine(n.src, n.params)
	n.reset()
	return n, nil
}

// Clone returns a fresh idle cursor with the same query parameters and
// options but no mapping: the clone yields raw items. Cloning is
// admitted in any state.
func (c *Cursor[R, T]) Clone() *Cursor[R, R] {
	n := &Cursor[R, R]{
		src:       c.src,
		params:    c.params,
		opts:      c.opts,
		newEngine: c.newEngine,
	}
	n.engine = n.newEngine(n.src, n.params)
	n.reset()
	return n
}

// Rewind puts the cursor back into the idle state on its first page,
// discarding buffered items and retrieval counters. The query
// parameters are untouched.
func (c *Cursor[R, T]) Rewind() {
	c.reset()
}

// Close discards the buffer and moves the cursor to the closed state.
// Closing a closed cursor is a no-op.
func (c *Cursor[R, T]) Close() {
	c.state = StateClosed
	c.buffer = nil
}

// tryFillBuffer fetches the next page when the buffer is empty and a
// fetch is warranted: the very first fetch of an idle cursor, or a
// continuation while the server has reported more pages. It never
// changes the cursor state; a failed fetch leaves everything untouched,
// so the call can be retried.
func (c *Cursor[R, T]) tryFillBuffer(ctx context.Context) error {
	if c.state == StateClosed || len(c.buffer) > 0 {
		return nil
	}
	if c.state != StateIdle && c.nextPageState == nil {
		return nil
	}

	tc, err := c.budget.Remaining(c.opts.RequestTimeout, c.opts.RequestTimeoutLabel)
	if err != nil {
		return err
	}
	result, err := c.engine.fetchPage(ctx, c.nextPageState, tc)
	if err != nil {
		return err
	}

	c.buffer = result.items
	c.pagesRetrieved++
	c.nextPageState = result.nextPageState
	c.lastStatus = result.status
	return nil
}

// Next yields the next item. ok is false when the sequence is over; the
// cursor is then closed, and further calls keep returning ok == false
// without error. A fetch error leaves the cursor usable for a retry.
func (c *Cursor[R, T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if c.state == StateClosed {
		return zero, false, nil
	}
	if err := c.tryFillBuffer(ctx); err != nil {
		return zero, false, err
	}
	if len(c.buffer) == 0 {
		c.Close()
		return zero, false, nil
	}
	c.state = StateStarted
	raw := c.buffer[0]
	c.buffer = c.buffer[1:]
	c.consumed++
	if c.mapper != nil {
		return c.mapper(raw), true, nil
	}
	return any(raw).(T), true, nil
}

// HasNext reports whether another item is available, fetching a page if
// needed to find out. It consumes nothing, and an idle cursor stays
// idle: only actual consumption starts it. False on a closed cursor,
// without error.
func (c *Cursor[R, T]) HasNext(ctx context.Context) (bool, error) {
	if c.state == StateClosed {
		return false, nil
	}
	if err := c.tryFillBuffer(ctx); err != nil {
		return false, err
	}
	return len(c.buffer) > 0, nil
}

// ConsumeBuffer removes and returns up to n raw items from the local
// buffer without any network activity. Called without arguments it
// drains the whole buffer. Items consumed this way count as consumed
// and are never yielded again.
func (c *Cursor[R, T]) ConsumeBuffer(n ...int) ([]R, error) {
	count := len(c.buffer)
	if len(n) > 0 {
		count = n[0]
	}
	if count < 0 {
		return nil, fmt.Errorf("consume buffer: %s", ecode.FieldIsNegative("n"))
	}
	if count > len(c.buffer) {
		count = len(c.buffer)
	}
	out := make([]R, count)
	copy(out, c.buffer[:count])
	c.buffer = c.buffer[count:]
	c.consumed += count
	return out, nil
}

// ForEach invokes fn on each remaining item until fn returns false or
// the cursor is exhausted. An optional timeout bounds the whole
// traversal, replacing the cursor's overall timeout for its duration.
//
// The traversal runs on a working copy whose final state is written
// back only when no error occurred, so a failed traversal leaves the
// cursor exactly as it was and can be retried.
func (c *Cursor[R, T]) ForEach(ctx context.Context, fn func(T) bool, timeout ...time.Duration) error {
	if err := c.ensureAlive(); err != nil {
		return err
	}
	w := c.bulkCopy(timeout)
	c.imprintState(w)
	for {
		item, ok, err := w.Next(ctx)
		if err != nil {
			return err
		}
		if !ok || !fn(item) {
			break
		}
	}
	w.imprintState(c)
	return nil
}

// ToList drains the cursor into a slice. An optional timeout bounds the
// whole retrieval. Like ForEach, a failed retrieval leaves the cursor
// untouched.
func (c *Cursor[R, T]) ToList(ctx context.Context, timeout ...time.Duration) ([]T, error) {
	if err := c.ensureAlive(); err != nil {
		return nil, err
	}
	w := c.bulkCopy(timeout)
	c.imprintState(w)
	var items []T
	for {
		item, ok, err := w.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		items = append(items, item)
	}
	w.imprintState(c)
	return items, nil
}

// bulkCopy builds the working cursor for a whole-traversal operation:
// same parameters, with the timeouts revised for the given per-call
// overall timeout (if any) and a fresh budget started from it.
func (c *Cursor[R, T]) bulkCopy(timeout []time.Duration) *Cursor[R, T] {
	opts := c.opts
	if len(timeout) > 0 && timeout[0] > 0 {
		request, overall := reviseTimeouts(timeout[0], c.opts.RequestTimeout)
		opts.RequestTimeout = request
		opts.OverallTimeout = overall
		opts.OverallTimeoutLabel = "timeout"
	}
	return c.copyWith(c.params, opts)
}

// reviseTimeouts narrows the per-request timeout so it never exceeds a
// newly imposed overall timeout.
func reviseTimeouts(newOverall, request time.Duration) (time.Duration, time.Duration) {
	if newOverall > 0 && (request == 0 || newOverall < request) {
		request = newOverall
	}
	return request, newOverall
}

// imprintState copies this cursor's retrieval progress onto dst. Used
// to seed the working copy of a bulk operation and to commit its final
// state back on success.
func (c *Cursor[R, T]) imprintState(dst *Cursor[R, T]) {
	dst.state = c.state
	dst.buffer = c.buffer
	dst.pagesRetrieved = c.pagesRetrieved
	dst.consumed = c.consumed
	dst.nextPageState = c.nextPageState
	dst.lastStatus = c.lastStatus
}

// GetSortVector returns the query vector echoed back by the server,
// fetching the first page if none was fetched yet. ok is false when the
// cursor did not ask for the vector or the server did not provide one.
func (c *Cursor[R, T]) GetSortVector(ctx context.Context) (types.Vector, bool, error) {
	if err := c.tryFillBuffer(ctx); err != nil {
		return nil, false, err
	}
	if c.lastStatus == nil {
		return nil, false, nil
	}
	raw, ok := c.lastStatus["sortVector"]
	if !ok || raw == nil {
		return nil, false, nil
	}
	vector, err := types.VectorFromAny(raw)
	if err != nil {
		return nil, false, err
	}
	return vector, true, nil
}

// FetchNextPage retrieves and returns exactly one page, for callers
// driving pagination themselves. It is not meant to be interleaved with
// item-wise iteration: a cursor holding buffered items rejects the
// call.
func (c *Cursor[R, T]) FetchNextPage(ctx context.Context) (FindPage[T], error) {
	var zero FindPage[T]
	if err := c.ensureAlive(); err != nil {
		return zero, err
	}
	if len(c.buffer) > 0 {
		return zero, &StateError{State: c.state, Reason: "page retrieval cannot be mixed with item-wise cursor iteration"}
	}
	if err := c.tryFillBuffer(ctx); err != nil {
		return zero, err
	}

	nextPageState := c.nextPageState
	count := len(c.buffer)
	results := make([]T, 0, count)
	for i := 0; i < count; i++ {
		item, ok, err := c.Next(ctx)
		if err != nil {
			return zero, err
		}
		if !ok {
			break
		}
		results = append(results, item)
	}

	page := FindPage[T]{Results: results, NextPageState: nextPageState}
	if c.lastStatus != nil {
		if raw, ok := c.lastStatus["sortVector"]; ok && raw != nil {
			vector, err := types.VectorFromAny(raw)
			if err != nil {
				return zero, err
			}
			page.SortVector = vector
		}
	}
	return page, nil
}

// State returns the lifecycle state of the cursor.
func (c *Cursor[R, T]) State() State {
	return c.state
}

// Consumed returns how many items have been yielded or buffer-consumed
// so far.
func (c *Cursor[R, T]) Consumed() int {
	return c.consumed
}

// Buffered returns how many fetched items sit in the local buffer.
func (c *Cursor[R, T]) Buffered() int {
	return len(c.buffer)
}

// PagesRetrieved returns how many pages have been fetched so far.
func (c *Cursor[R, T]) PagesRetrieved() int {
	return c.pagesRetrieved
}

// DataSource returns the collection or table this cursor reads from.
func (c *Cursor[R, T]) DataSource() (DataSource, error) {
	if c.src == nil {
		return nil, ErrMissingDataSource
	}
	return c.src, nil
}

func (c *Cursor[R, T]) String() string {
	source := "(none)"
	if c.src != nil {
		source = c.src.Name()
	}
	return fmt.Sprintf("Cursor(%s, %s, consumed: %d, buffered: %d)",
		source, c.state, c.consumed, len(c.buffer))
}
