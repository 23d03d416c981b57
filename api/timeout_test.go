package api

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestBudgetRemaining_NoDeadline verifies the per-request cap passes through
// when no overall budget is set
func TestBudgetRemaining_NoDeadline(t *testing.T) {
	b := NewBudget(0, "")
	tc, err := b.Remaining(5*time.Second, "requestTimeout")
	if err != nil {
		t.Fatalf("Remaining() error = %v", err)
	}
	if tc.Request != 5*time.Second {
		t.Errorf("Remaining().Request = %v, want %v", tc.Request, 5*time.Second)
	}
	if tc.Label != "requestTimeout" {
		t.Errorf("Remaining().Label = %v, want requestTimeout", tc.Label)
	}
}

// TestBudgetRemaining_NoTimeouts verifies absence of both operands yields
// no timeout at all
func TestBudgetRemaining_NoTimeouts(t *testing.T) {
	b := NewBudget(0, "")
	tc, err := b.Remaining(0, "")
	if err != nil {
		t.Fatalf("Remaining() error = %v", err)
	}
	if tc.HasTimeout() {
		t.Errorf("Remaining() = %v, want no timeout", tc.Request)
	}
}

// TestBudgetRemaining_OverallCapsRequest verifies the derived per-fetch
// timeout never exceeds the overall budget: with a 5000ms request cap and
// a 2000ms overall budget the result stays at or below 2000ms
func TestBudgetRemaining_OverallCapsRequest(t *testing.T) {
	b := NewBudget(2000*time.Millisecond, "generalMethodTimeout")
	tc, err := b.Remaining(5000*time.Millisecond, "requestTimeout")
	if err != nil {
		t.Fatalf("Remaining() error = %v", err)
	}
	if tc.Request > 2000*time.Millisecond {
		t.Errorf("Remaining().Request = %v, want <= 2s", tc.Request)
	}
	if tc.Label != "generalMethodTimeout" {
		t.Errorf("Remaining().Label = %v, want generalMethodTimeout", tc.Label)
	}
}

// TestBudgetRemaining_RequestCapsOverall verifies the narrower request cap
// wins while overall time remains plentiful
func TestBudgetRemaining_RequestCapsOverall(t *testing.T) {
	b := NewBudget(time.Minute, "generalMethodTimeout")
	tc, err := b.Remaining(100*time.Millisecond, "requestTimeout")
	if err != nil {
		t.Fatalf("Remaining() error = %v", err)
	}
	if tc.Request != 100*time.Millisecond {
		t.Errorf("Remaining().Request = %v, want 100ms", tc.Request)
	}
	if tc.Label != "requestTimeout" {
		t.Errorf("Remaining().Label = %v, want requestTimeout", tc.Label)
	}
}

// TestBudgetRemaining_Expired verifies an elapsed budget surfaces as a
// TimeoutError wrapping context.DeadlineExceeded
func TestBudgetRemaining_Expired(t *testing.T) {
	b := NewBudget(time.Nanosecond, "generalMethodTimeout")
	time.Sleep(time.Millisecond)
	_, err := b.Remaining(time.Second, "")
	if err == nil {
		t.Fatal("Remaining() on expired budget should return error")
	}
	var te *TimeoutError
	if !errors.As(err, &te) {
		t.Fatalf("Remaining() error = %T, want *TimeoutError", err)
	}
	if te.Label != "generalMethodTimeout" {
		t.Errorf("TimeoutError.Label = %v, want generalMethodTimeout", te.Label)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("TimeoutError should wrap context.DeadlineExceeded")
	}
}
