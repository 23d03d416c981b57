package cursor

import (
	"github.com/lumendb/lumen-go/types"
)

// FindPage is one explicitly-fetched page of results, for callers that
// drive pagination themselves instead of iterating a cursor.
type FindPage[T any] struct {
	// Results are the items of this page, after any mapping.
	Results []T
	// NextPageState resumes retrieval after this page when passed to a
	// new cursor as its initial page state. Nil on the last page.
	NextPageState *string
	// SortVector is the query vector used for the search, echoed back
	// when the cursor asked for it via include-sort-vector.
	SortVector types.Vector
}
