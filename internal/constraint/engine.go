package constraint

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/impulse/internal/contact"
	"github.com/san-kum/impulse/internal/rigid"
)

// ErrNilEngineFunc reports an engine variant registered without a callable
// behind it. Resolve fails before touching the world.
var ErrNilEngineFunc = errors.New("constraint: engine has no callable")

// EngineError wraps a failure raised by the active engine during Resolve.
type EngineError struct {
	Cause error
}

func (e EngineError) Error() string {
	return "constraint engine failed: " + e.Cause.Error()
}

func (e EngineError) Unwrap() error { return e.Cause }

// World is the view of a simulation that a constraint engine acts on.
// *simulation.World satisfies it.
type World interface {
	// Bodies returns the simulation bodies in index order. The slice is
	// owned by the world; treat it as read-only.
	Bodies() []*rigid.Body
	NumDofs() int
	TimeStep() float64
	Gravity() mgl64.Vec2
	Contacts() []contact.Contact

	// LCPResolve runs the built-in boxed-LCP resolution against the
	// current contact set, overwriting the impulse batch.
	LCPResolve() error
}

type engineKind int

const (
	engineDefault engineKind = iota
	engineFunc
	engineWorldFunc
)

// Engine selects how constraints are resolved for one step. The zero
// value is the built-in LCP engine, so replacing an engine with
// Engine{} falls back to the default resolution.
type Engine struct {
	kind engineKind
	fn   func() error
	wfn  func(World) error
}

// Default returns the built-in boxed-LCP engine.
func Default() Engine { return Engine{} }

// Func adapts a self-contained routine. The routine sees no world; any
// state it needs must be closed over explicitly.
func Func(fn func() error) Engine {
	return Engine{kind: engineFunc, fn: fn}
}

// WorldFunc adapts a routine that receives the world it acts on. Prefer
// this over closing over a world in a Func: the dependency is visible in
// the signature.
func WorldFunc(fn func(World) error) Engine {
	return Engine{kind: engineWorldFunc, wfn: fn}
}

// Frictionless wraps inner so it runs with every body's friction
// coefficient forced to zero. The original coefficients are snapshot in
// body order and restored on every exit path, including a failing inner
// engine.
func Frictionless(inner Engine) Engine {
	return WorldFunc(func(w World) error {
		bodies := w.Bodies()
		saved := make([]float64, len(bodies))
		for i, b := range bodies {
			saved[i] = b.FrictionCoeff()
		}
		defer func() {
			for i, b := range bodies {
				b.SetFrictionCoeff(saved[i])
			}
		}()

		for _, b := range bodies {
			b.SetFrictionCoeff(0)
		}
		return invoke(inner, w)
	})
}

// validate rejects variant tags that carry no callable, before any world
// mutation happens.
func (e Engine) validate() error {
	switch e.kind {
	case engineFunc:
		if e.fn == nil {
			return ErrNilEngineFunc
		}
	case engineWorldFunc:
		if e.wfn == nil {
			return ErrNilEngineFunc
		}
	}
	return nil
}

func invoke(e Engine, w World) error {
	switch e.kind {
	case engineFunc:
		if e.fn == nil {
			return ErrNilEngineFunc
		}
		return e.fn()
	case engineWorldFunc:
		if e.wfn == nil {
			return ErrNilEngineFunc
		}
		return e.wfn(w)
	default:
		return w.LCPResolve()
	}
}
