package cursor

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/lumendb/lumen-go/api"
	"github.com/lumendb/lumen-go/types"
)

// newTableEngine builds the engine behind table find cursors.
func newTableEngine(src DataSource, p Params) queryEngine[types.Row] {
	return &wireEngine[types.Row]{
		src:      src,
		command:  "find",
		criteria: findCriteria(p, p.Projection),
		options:  findOptions(p),
		shape:    tableShape{},
	}
}

// tableShape decodes table rows. Unlike documents, rows are typed: the
// response's status.projectionSchema describes each returned column and
// drives the conversion from wire JSON to Go values.
type tableShape struct{}

func (tableShape) decodeItems(resp map[string]any, docs []any) ([]types.Row, error) {
	status, _ := resp["status"].(map[string]any)
	schema, ok := status["projectionSchema"].(map[string]any)
	if !ok {
		return nil, api.NewResponseError(resp, "table find response has no 'status.projectionSchema'")
	}

	items := make([]types.Row, 0, len(docs))
	for _, doc := range docs {
		rawRow, ok := doc.(map[string]any)
		if !ok {
			return nil, api.NewResponseError(resp, "find returned a non-object row: %T", doc)
		}
		row := make(types.Row, len(rawRow))
		for column, value := range rawRow {
			converted, err := convertColumn(column, value, schema)
			if err != nil {
				return nil, api.NewResponseError(resp, "column %q: %v", column, err)
			}
			row[column] = converted
		}
		items = append(items, row)
	}
	return items, nil
}

// convertColumn converts one wire value according to its column type in
// the projection schema. The $similarity pseudo-column of vector sorts
// has no schema entry and is always a float.
func convertColumn(column string, value any, schema map[string]any) (any, error) {
	if column == "$similarity" {
		return floatColumn(value)
	}
	colSchema, ok := schema[column].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("column is missing from the projection schema")
	}
	colType, _ := colSchema["type"].(string)
	if value == nil {
		return nil, nil
	}

	switch colType {
	case "int", "bigint", "smallint", "tinyint", "varint", "counter":
		n, ok := value.(json.Number)
		if !ok {
			return nil, fmt.Errorf("expected a number for a %s column, got %T", colType, value)
		}
		return n.Int64()
	case "float", "double":
		return floatColumn(value)
	case "decimal":
		// Kept as json.Number so arbitrary precision survives.
		n, ok := value.(json.Number)
		if !ok {
			return nil, fmt.Errorf("expected a number for a decimal column, got %T", value)
		}
		return n, nil
	case "timestamp":
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("expected a string for a timestamp column, got %T", value)
		}
		return time.Parse(time.RFC3339, s)
	case "uuid", "timeuuid":
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("expected a string for a uuid column, got %T", value)
		}
		return uuid.Parse(s)
	case "vector":
		return types.VectorFromAny(value)
	case "blob":
		return blobColumn(value)
	default:
		// text, ascii, boolean, sets/lists/maps and anything this
		// client does not special-case pass through as decoded.
		return value, nil
	}
}

// floatColumn accepts both the numeric and the string encodings the API
// uses for floats: non-finite values travel as the strings "NaN",
// "Infinity" and "-Infinity".
func floatColumn(value any) (float64, error) {
	switch v := value.(type) {
	case json.Number:
		return v.Float64()
	case string:
		switch v {
		case "NaN":
			return math.NaN(), nil
		case "Infinity":
			return math.Inf(1), nil
		case "-Infinity":
			return math.Inf(-1), nil
		}
		return 0, fmt.Errorf("unexpected string for a float column: %q", v)
	default:
		return 0, fmt.Errorf("expected a number for a float column, got %T", value)
	}
}

// blobColumn decodes the {"$binary": <base64>} wrapper of blob columns.
func blobColumn(value any) ([]byte, error) {
	wrapper, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a $binary object for a blob column, got %T", value)
	}
	encoded, ok := wrapper["$binary"].(string)
	if !ok {
		return nil, fmt.Errorf("blob column value has no '$binary' string")
	}
	return base64.StdEncoding.DecodeString(encoded)
}
