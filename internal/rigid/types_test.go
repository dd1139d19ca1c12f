package rigid

import (
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.0, 2.0, 3.0}, true},
		{"zeros", State{0.0, 0.0}, true},
		{"with NaN", State{1.0, math.NaN()}, false},
		{"with +Inf", State{1.0, math.Inf(1)}, false},
		{"with -Inf", State{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Norm(t *testing.T) {
	tests := []struct {
		state    State
		expected float64
	}{
		{State{3, 4}, 5.0},
		{State{1, 0}, 1.0},
		{State{0, 0}, 0.0},
		{State{1, 1, 1, 1}, 2.0},
	}

	for _, tt := range tests {
		if got := tt.state.Norm(); math.Abs(got-tt.expected) > 1e-10 {
			t.Errorf("Norm(%v) = %v, want %v", tt.state, got, tt.expected)
		}
	}
}

func TestState_Clone(t *testing.T) {
	s := State{1, 2, 3}
	c := s.Clone()

	c[0] = 99
	if s[0] == 99 {
		t.Error("Clone did not create an independent copy")
	}
}

func TestAction_Clone(t *testing.T) {
	a := Action{0.5, -0.5, 0}
	c := a.Clone()

	c[1] = 7
	if a[1] == 7 {
		t.Error("Clone did not create an independent copy")
	}
}

func TestDimensionError(t *testing.T) {
	err := DimensionError{Label: "state", Want: 6, Got: 5}
	expected := "state: want length 6, got 5"
	if err.Error() != expected {
		t.Errorf("DimensionError.Error() = %q, want %q", err.Error(), expected)
	}
}

func TestIndexError(t *testing.T) {
	err := IndexError{Index: 3, Len: 2}
	expected := "body index 3 out of range [0, 2)"
	if err.Error() != expected {
		t.Errorf("IndexError.Error() = %q, want %q", err.Error(), expected)
	}
}
