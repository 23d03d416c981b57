package cursor

import (
	"github.com/lumendb/lumen-go/api"
	"github.com/lumendb/lumen-go/types"
)

// newDocumentEngine builds the engine behind collection find cursors.
func newDocumentEngine(src DataSource, p Params) queryEngine[types.Document] {
	return &wireEngine[types.Document]{
		src:      src,
		command:  "find",
		criteria: findCriteria(p, p.Projection),
		options:  findOptions(p),
		shape:    documentShape{},
	}
}

// documentShape decodes collection documents, which need no schema: the
// raw decoded JSON objects are the items.
type documentShape struct{}

func (documentShape) decodeItems(resp map[string]any, docs []any) ([]types.Document, error) {
	items := make([]types.Document, 0, len(docs))
	for _, doc := range docs {
		document, ok := doc.(map[string]any)
		if !ok {
			return nil, api.NewResponseError(resp, "find returned a non-object document: %T", doc)
		}
		items = append(items, document)
	}
	return items, nil
}
