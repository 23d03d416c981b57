package cursor

import (
	"context"
	"maps"
	"time"

	"github.com/lumendb/lumen-go/api"
	"github.com/lumendb/lumen-go/log"
)

// DataSource is the collection or table a cursor reads from. It names
// itself for logging and supplies the commander its pages are fetched
// through.
type DataSource interface {
	Name() string
	Commander() api.Commander
}

// Params are the query parameters a cursor was built with. They are
// fixed for the lifetime of one cursor; the fluent With* methods build
// a fresh cursor around an amended copy. Fields past Skip apply only to
// findAndRerank cursors and are ignored by the plain find engines.
type Params struct {
	Filter     map[string]any
	Projection any
	Sort       any
	Limit      int
	Skip       *int

	IncludeSimilarity *bool
	IncludeSortVector *bool

	RerankOn         string
	RerankQuery      string
	HybridLimits     any
	HybridProjection any
	IncludeScores    *bool
}

// Options are the non-query knobs of a cursor: the timeout pair driving
// its budget and an optional page state to resume from.
type Options struct {
	// RequestTimeout caps each single page fetch. Zero means no cap.
	RequestTimeout time.Duration
	// RequestTimeoutLabel names the setting RequestTimeout came from.
	RequestTimeoutLabel string
	// OverallTimeout caps the whole lifetime of the cursor, across all
	// of its page fetches. Zero means no cap.
	OverallTimeout time.Duration
	// OverallTimeoutLabel names the setting OverallTimeout came from.
	OverallTimeoutLabel string
	// InitialPageState makes the first fetch resume from a previously
	// returned page state instead of the beginning.
	InitialPageState *string
}

// fetchResult is one decoded page as handed from an engine to its
// cursor.
type fetchResult[R any] struct {
	items         []R
	nextPageState *string
	status        map[string]any
}

// queryEngine fetches and decodes one page of results. Engines are
// stateless: the page to fetch is identified solely by pageState (nil
// for the first page).
type queryEngine[R any] interface {
	fetchPage(ctx context.Context, pageState *string, tc api.TimeoutContext) (fetchResult[R], error)
}

// engineFactory builds the engine for a given source and parameter set.
// Cursors keep their factory so fluent copies can rebuild the engine
// around amended parameters.
type engineFactory[R any] func(src DataSource, p Params) queryEngine[R]

// wireShape is the variant-specific half of an engine: it decodes the
// raw data.documents array of a response into typed items, with access
// to the full response for schema or score lookups.
type wireShape[R any] interface {
	decodeItems(resp map[string]any, docs []any) ([]R, error)
}

// wireEngine is the shared find-command engine: it assembles the
// payload from criteria and options frozen at construction time, runs
// the exchange and validates the response envelope, delegating item
// decoding to its wireShape.
type wireEngine[R any] struct {
	src      DataSource
	command  string
	criteria map[string]any
	options  map[string]any
	shape    wireShape[R]
}

func (e *wireEngine[R]) fetchPage(ctx context.Context, pageState *string, tc api.TimeoutContext) (fetchResult[R], error) {
	var zero fetchResult[R]
	if e.src == nil {
		return zero, ErrMissingDataSource
	}

	options := make(map[string]any, len(e.options)+1)
	maps.Copy(options, e.options)
	if pageState != nil && *pageState != "" {
		options["pageState"] = *pageState
	}
	body := make(map[string]any, len(e.criteria)+1)
	maps.Copy(body, e.criteria)
	body["options"] = options
	payload := map[string]any{e.command: body}

	pageLabel := "(empty page state)"
	if pageState != nil {
		pageLabel = *pageState
	}
	log.Debugf(ctx, "cursor fetching a page: %s from %s", pageLabel, e.src.Name())
	resp, err := e.src.Commander().Request(ctx, payload, tc)
	if err != nil {
		return zero, err
	}
	log.Debugf(ctx, "cursor finished fetching a page: %s from %s", pageLabel, e.src.Name())

	data, ok := resp["data"].(map[string]any)
	if !ok {
		return zero, api.NewResponseError(resp, "response from %s has no 'data'", e.command)
	}
	docs, ok := data["documents"].([]any)
	if !ok {
		return zero, api.NewResponseError(resp, "response from %s has no 'data.documents'", e.command)
	}
	npsRaw, present := data["nextPageState"]
	if !present {
		return zero, api.NewResponseError(resp, "response from %s has no 'data.nextPageState'", e.command)
	}
	var nextPageState *string
	if s, ok := npsRaw.(string); ok && s != "" {
		nextPageState = &s
	}

	items, err := e.shape.decodeItems(resp, docs)
	if err != nil {
		return zero, err
	}
	status, _ := resp["status"].(map[string]any)
	return fetchResult[R]{items: items, nextPageState: nextPageState, status: status}, nil
}

// normalizeProjection accepts the shorthand projection forms and
// returns the wire form: a list of field names becomes an
// all-inclusions map, boolean maps widen to map[string]any.
func normalizeProjection(projection any) any {
	switch p := projection.(type) {
	case nil:
		return nil
	case []string:
		out := make(map[string]any, len(p))
		for _, field := range p {
			out[field] = true
		}
		return out
	case map[string]bool:
		out := make(map[string]any, len(p))
		for field, include := range p {
			out[field] = include
		}
		return out
	default:
		return projection
	}
}

// findCriteria assembles the filter/projection/sort section shared by
// the find-family commands. Empty entries are omitted from the payload.
func findCriteria(p Params, projection any) map[string]any {
	criteria := make(map[string]any, 3)
	if len(p.Filter) > 0 {
		criteria["filter"] = p.Filter
	}
	if proj := normalizeProjection(projection); proj != nil {
		criteria["projection"] = proj
	}
	if p.Sort != nil {
		criteria["sort"] = p.Sort
	}
	return criteria
}

// findOptions assembles the options section of a plain find command.
// A zero Limit means no limit and is dropped from the payload; Skip
// stays even when zero, which the API treats as meaningful.
func findOptions(p Params) map[string]any {
	options := make(map[string]any, 4)
	if p.Limit > 0 {
		options["limit"] = p.Limit
	}
	if p.Skip != nil {
		options["skip"] = *p.Skip
	}
	if p.IncludeSimilarity != nil {
		options["includeSimilarity"] = *p.IncludeSimilarity
	}
	if p.IncludeSortVector != nil {
		options["includeSortVector"] = *p.IncludeSortVector
	}
	return options
}
