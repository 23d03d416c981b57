package cursor

import (
	"encoding/json"
	"fmt"

	"github.com/lumendb/lumen-go/api"
	"github.com/lumendb/lumen-go/types"
)

// RerankedResult is one findAndRerank hit: the document together with
// the scores the reranking pipeline attached to it. Scores are absent
// unless the cursor was built with include-scores enabled.
type RerankedResult[R any] struct {
	Document R
	Scores   map[string]float64
}

// newHybridEngine builds the engine behind findAndRerank cursors.
// Hybrid search has no skip concept, so Params.Skip is not consulted.
func newHybridEngine(src DataSource, p Params) queryEngine[RerankedResult[types.Document]] {
	return &wireEngine[RerankedResult[types.Document]]{
		src:      src,
		command:  "findAndRerank",
		criteria: findCriteria(p, p.HybridProjection),
		options:  hybridOptions(p),
		shape:    hybridShape{},
	}
}

// hybridOptions assembles the options section of a findAndRerank
// command. As with find, a zero Limit is dropped.
func hybridOptions(p Params) map[string]any {
	options := make(map[string]any, 6)
	if p.Limit > 0 {
		options["limit"] = p.Limit
	}
	if p.HybridLimits != nil {
		options["hybridLimits"] = p.HybridLimits
	}
	if p.RerankOn != "" {
		options["rerankOn"] = p.RerankOn
	}
	if p.RerankQuery != "" {
		options["rerankQuery"] = p.RerankQuery
	}
	if p.IncludeScores != nil {
		options["includeScores"] = *p.IncludeScores
	}
	if p.IncludeSortVector != nil {
		options["includeSortVector"] = *p.IncludeSortVector
	}
	return options
}

// hybridShape decodes findAndRerank results by zipping data.documents
// with the parallel status.documentResponses array carrying the scores.
type hybridShape struct{}

func (hybridShape) decodeItems(resp map[string]any, docs []any) ([]RerankedResult[types.Document], error) {
	status, _ := resp["status"].(map[string]any)
	responses, ok := status["documentResponses"].([]any)
	if !ok {
		return nil, api.NewResponseError(resp, "findAndRerank response has no 'status.documentResponses'")
	}
	if len(responses) != len(docs) {
		return nil, api.NewResponseError(resp,
			"findAndRerank returned %d documents but %d documentResponses", len(docs), len(responses))
	}

	items := make([]RerankedResult[types.Document], 0, len(docs))
	for i, doc := range docs {
		document, ok := doc.(map[string]any)
		if !ok {
			return nil, api.NewResponseError(resp, "findAndRerank returned a non-object document: %T", doc)
		}
		scores, err := decodeScores(responses[i])
		if err != nil {
			return nil, api.NewResponseError(resp, "documentResponses[%d]: %v", i, err)
		}
		items = append(items, RerankedResult[types.Document]{Document: document, Scores: scores})
	}
	return items, nil
}

// decodeScores reads the scores map of one documentResponses entry.
// The entry may omit scores entirely when the cursor did not ask for
// them.
func decodeScores(response any) (map[string]float64, error) {
	entry, ok := response.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("entry is not an object: %T", response)
	}
	rawScores, present := entry["scores"]
	if !present || rawScores == nil {
		return nil, nil
	}
	scoreMap, ok := rawScores.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("scores is not an object: %T", rawScores)
	}
	scores := make(map[string]float64, len(scoreMap))
	for name, value := range scoreMap {
		switch n := value.(type) {
		case json.Number:
			f, err := n.Float64()
			if err != nil {
				return nil, err
			}
			scores[name] = f
		case float64:
			scores[name] = n
		default:
			return nil, fmt.Errorf("score %q is not numeric: %T", name, value)
		}
	}
	return scores, nil
}
