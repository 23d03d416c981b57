// Package ctxutil provides context utilities for request-scoped values
// used by the SDK, primarily trace identifiers that tie a cursor's page
// fetches together in logs.
//
// # Trace IDs
//
//	ctx, traceID := ctxutil.EnsureTraceID(ctx)
//	// traceID travels with every log line and outbound request header
//
// All helpers are nil-safe and never mutate the supplied context.
package ctxutil
