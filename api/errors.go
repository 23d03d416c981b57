package api

import (
	"context"
	"fmt"
	"time"
)

// TimeoutError reports a Data API exchange that was not completed
// within its computed time budget. It wraps context.DeadlineExceeded
// so errors.Is(err, context.DeadlineExceeded) holds.
type TimeoutError struct {
	// Timeout is the budget that was exceeded.
	Timeout time.Duration
	// Label names the timeout setting that produced the budget, when
	// one was configured (e.g. "generalMethodTimeout").
	Label string
}

func (e *TimeoutError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("timed out after %v (%s)", e.Timeout, e.Label)
	}
	return fmt.Sprintf("timed out after %v", e.Timeout)
}

func (e *TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// ResponseError reports a structurally unusable Data API response: a
// non-success HTTP status, an API-level errors array, or a response
// body missing a required field. Raw carries the decoded response (or
// nil when the body could not be decoded) for diagnostics.
type ResponseError struct {
	Reason string
	Raw    map[string]any
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("unexpected response from Data API: %s", e.Reason)
}

// NewResponseError builds a ResponseError carrying the raw response.
func NewResponseError(raw map[string]any, format string, args ...any) *ResponseError {
	return &ResponseError{
		Reason: fmt.Sprintf(format, args...),
		Raw:    raw,
	}
}
