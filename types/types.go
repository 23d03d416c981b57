package types

// Document is a schemaless item as returned by a collection find.
type Document = map[string]any

// Row is a decoded table row keyed by column name.
type Row = map[string]any
