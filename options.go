package lumen

import (
	"time"
)

// FindOptions are the optional knobs of Collection.Find and Table.Find.
// Zero values mean "not set"; fields whose zero value is meaningful are
// pointers.
type FindOptions struct {
	// Projection selects the returned fields: a field-name list, a map
	// of booleans or a wire-form projection map.
	Projection any
	// Sort orders the results, e.g. map[string]any{"when": 1} or a
	// vector sort clause.
	Sort any
	// Limit caps the total number of returned results. Zero means no
	// limit.
	Limit int
	// Skip drops the first results of the (sorted) sequence.
	Skip *int
	// IncludeSimilarity attaches a $similarity value to each result of
	// a vector sort.
	IncludeSimilarity *bool
	// IncludeSortVector echoes the query vector back in the response
	// status, readable via the cursor's GetSortVector.
	IncludeSortVector *bool
	// InitialPageState resumes retrieval from a previously returned
	// page state.
	InitialPageState *string
	// RequestTimeout caps each single page fetch, overriding the
	// configured default.
	RequestTimeout time.Duration
	// Timeout caps the whole lifetime of the cursor across all of its
	// page fetches. Zero means no overall cap.
	Timeout time.Duration
}

// FindAndRerankOptions are the optional knobs of
// Collection.FindAndRerank.
type FindAndRerankOptions struct {
	// Projection selects the returned document fields.
	Projection any
	// Sort carries the hybrid search clause, e.g.
	// map[string]any{"$hybrid": "query text"}.
	Sort any
	// Limit caps the number of reranked results. Zero means the API
	// default.
	Limit int
	// HybridLimits caps the hits of each subsearch: a single number or
	// a map of subsearch name to number.
	HybridLimits any
	// RerankOn names the document field the reranker reads when the
	// lexical and vector queries are given separately.
	RerankOn string
	// RerankQuery is a dedicated query text for the reranker.
	RerankQuery string
	// IncludeScores attaches the per-stage scores to each result.
	IncludeScores *bool
	// IncludeSortVector echoes the query vector back in the response
	// status.
	IncludeSortVector *bool
	// InitialPageState resumes retrieval from a previously returned
	// page state.
	InitialPageState *string
	// RequestTimeout caps each single page fetch, overriding the
	// configured default.
	RequestTimeout time.Duration
	// Timeout caps the whole lifetime of the cursor.
	Timeout time.Duration
}

func firstFindOptions(opts []*FindOptions) *FindOptions {
	if len(opts) > 0 && opts[0] != nil {
		return opts[0]
	}
	return &FindOptions{}
}

func firstRerankOptions(opts []*FindAndRerankOptions) *FindAndRerankOptions {
	if len(opts) > 0 && opts[0] != nil {
		return opts[0]
	}
	return &FindAndRerankOptions{}
}
