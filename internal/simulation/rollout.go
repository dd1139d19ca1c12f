package simulation

import (
	"context"
	"fmt"

	"github.com/san-kum/impulse/internal/rigid"
)

// Timestep advances w through one step from an explicit state under an
// explicit action and returns the resulting state. The caller's vectors
// are never retained or mutated; the world is.
func Timestep(w *World, state rigid.State, action rigid.Action) (rigid.State, error) {
	if err := w.SetState(state); err != nil {
		return nil, err
	}
	if err := w.SetAction(action); err != nil {
		return nil, err
	}
	if err := w.Step(); err != nil {
		return nil, err
	}
	return w.State(), nil
}

// Metric observes a rollout step by step and reduces it to one number.
type Metric interface {
	Name() string
	Observe(state rigid.State, impulses []float64, t float64)
	Value() float64
	Reset()
}

// Result is the record of a rollout.
type Result struct {
	// States holds the initial state followed by one state per step.
	States []rigid.State

	// Impulses holds the generalized constraint impulses resolved at
	// each step, one vector per step.
	Impulses [][]float64

	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
}

// Rollout runs len(actions) steps from state, collecting states, times
// and resolved impulses. A nil action entry means an uncontrolled step.
// Metrics are reset first and observe every completed step; their final
// values land in Result.Metrics. Cancellation and step failures return
// the partial result alongside the error.
func Rollout(ctx context.Context, w *World, state rigid.State, actions [][]float64, metrics ...Metric) (*Result, error) {
	if err := w.SetState(state); err != nil {
		return nil, err
	}

	steps := len(actions)
	result := &Result{
		States:   make([]rigid.State, 0, steps+1),
		Impulses: make([][]float64, 0, steps),
		Times:    make([]float64, 0, steps+1),
		Metrics:  make(map[string]float64),
	}

	for _, m := range metrics {
		m.Reset()
	}

	t := 0.0
	result.States = append(result.States, w.State())
	result.Times = append(result.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if actions[i] != nil {
			if err := w.SetAction(rigid.Action(actions[i])); err != nil {
				return result, err
			}
		}

		if err := w.Step(); err != nil {
			return result, err
		}

		x := w.State()
		if !x.IsValid() {
			return result, fmt.Errorf("step %d (t=%.4f): invalid state (NaN/Inf)", i, t)
		}

		t += w.TimeStep()
		result.StepsTaken++

		impulses := w.Solver().LastImpulses()
		result.States = append(result.States, x)
		result.Impulses = append(result.Impulses, impulses)
		result.Times = append(result.Times, t)

		for _, m := range metrics {
			m.Observe(x, impulses, t)
		}
	}

	for _, m := range metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}
