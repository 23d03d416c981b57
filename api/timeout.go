package api

import (
	"time"
)

// TimeoutContext is the time constraint applied to exactly one Data API
// exchange. A zero Request means "no timeout".
type TimeoutContext struct {
	// Nominal is the configured overall timeout the budget started
	// from, kept for error reporting.
	Nominal time.Duration
	// Request is the cap for the next exchange.
	Request time.Duration
	// Label names the setting that produced Request, if any.
	Label string
}

// HasTimeout reports whether this context constrains the exchange.
func (tc TimeoutContext) HasTimeout() bool {
	return tc.Request > 0
}

// Budget tracks an optional overall deadline across the multiple
// exchanges of one logical operation (e.g. all page fetches of a
// cursor) and derives the per-exchange timeout for each of them.
type Budget struct {
	overall  time.Duration
	label    string
	started  time.Time
	deadline time.Time
}

// NewBudget creates a budget. A zero overall duration means the budget
// never expires on its own; label names the originating setting for
// error messages and may be empty.
func NewBudget(overall time.Duration, label string) *Budget {
	b := &Budget{
		overall: overall,
		label:   label,
		started: time.Now(),
	}
	if overall > 0 {
		b.deadline = b.started.Add(overall)
	}
	return b
}

// Remaining derives the TimeoutContext for the next exchange: the
// remaining overall time intersected with the caller's static
// per-request cap, absence-safely (a zero operand yields the other;
// both zero yields no timeout). If the overall deadline has already
// elapsed, a TimeoutError is returned.
func (b *Budget) Remaining(cap time.Duration, capLabel string) (TimeoutContext, error) {
	if b.deadline.IsZero() {
		return TimeoutContext{Request: cap, Label: capLabel}, nil
	}
	left := time.Until(b.deadline)
	if left <= 0 {
		return TimeoutContext{}, &TimeoutError{Timeout: b.overall, Label: b.label}
	}
	if cap > 0 && cap < left {
		return TimeoutContext{Nominal: b.overall, Request: cap, Label: capLabel}, nil
	}
	return TimeoutContext{Nominal: b.overall, Request: left, Label: b.label}, nil
}
