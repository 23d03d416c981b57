package types

import (
	"encoding/json"
	"testing"
)

// TestVectorFromAny_Numbers verifies decoding from json.Number components
func TestVectorFromAny_Numbers(t *testing.T) {
	raw := []any{json.Number("0.5"), json.Number("-1.25"), json.Number("3")}
	v, err := VectorFromAny(raw)
	if err != nil {
		t.Fatalf("VectorFromAny() error = %v", err)
	}
	want := Vector{0.5, -1.25, 3}
	if len(v) != len(want) {
		t.Fatalf("VectorFromAny() len = %d, want %d", len(v), len(want))
	}
	for i := range want {
		if v[i] != want[i] {
			t.Errorf("VectorFromAny()[%d] = %v, want %v", i, v[i], want[i])
		}
	}
}

// TestVectorFromAny_Nil verifies nil input yields nil vector without error
func TestVectorFromAny_Nil(t *testing.T) {
	v, err := VectorFromAny(nil)
	if err != nil {
		t.Fatalf("VectorFromAny(nil) error = %v", err)
	}
	if v != nil {
		t.Errorf("VectorFromAny(nil) = %v, want nil", v)
	}
}

// TestVectorFromAny_Invalid verifies non-array and non-numeric inputs are rejected
func TestVectorFromAny_Invalid(t *testing.T) {
	if _, err := VectorFromAny("not a vector"); err == nil {
		t.Error("VectorFromAny() with string should return error")
	}
	if _, err := VectorFromAny([]any{"x"}); err == nil {
		t.Error("VectorFromAny() with string component should return error")
	}
}

// TestVectorFloat64s verifies widening conversion
func TestVectorFloat64s(t *testing.T) {
	v := NewVector([]float32{1, 2.5})
	got := v.Float64s()
	if len(got) != 2 || got[0] != 1 || got[1] != 2.5 {
		t.Errorf("Float64s() = %v, want [1 2.5]", got)
	}
}
