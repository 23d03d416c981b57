// Package types provides common type definitions shared across the
// lumen-go SDK.
//
// This package includes:
//   - Aliases for the raw item shapes returned by the Data API
//     (Document, Row)
//   - Generic helpers for optional values (ToPointer, ToValue)
//   - Vector, the numeric vector type used for similarity sorts
//
// # Type Aliases
//
//	type Document = map[string]any // schemaless collection document
//	type Row      = map[string]any // decoded table row
//
// # Optional Values
//
// Several Data API options distinguish "not set" from an explicit
// zero value (e.g. includeSimilarity). Use pointers for those:
//
//	opts := lumen.FindOptions{
//	    IncludeSimilarity: types.ToPointer(true),
//	    Skip:              types.ToPointer(0),
//	}
package types
