package rigid

import "math"

// State is the flat generalized state of a world: all positions first,
// then all velocities. len(State) == 2 * world DOFs.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Action is a generalized force vector, one entry per DOF, applied for
// exactly one step.
type Action []float64

func (a Action) Clone() Action {
	c := make(Action, len(a))
	copy(c, a)
	return c
}

func (a Action) IsValid() bool {
	for _, v := range a {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
