package simulation

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/impulse/internal/constraint"
	"github.com/san-kum/impulse/internal/contact"
	"github.com/san-kum/impulse/internal/rigid"
)

// DefaultTimeStep is used when a world is built with a non-positive dt.
const DefaultTimeStep = 0.01

// World owns an ordered set of rigid bodies and everything needed to
// advance them: gravity, the timestep, a contact detector and a
// constraint solver. Body order is insertion order and fixes the layout
// of the state, action and impulse vectors.
type World struct {
	bodies []*rigid.Body
	dofs   int

	gravity mgl64.Vec2
	h       float64

	detector contact.Detector
	solver   *constraint.Solver
	contacts []contact.Contact

	action rigid.Action
}

// NewWorld builds an empty world. A non-positive dt falls back to
// DefaultTimeStep; a non-positive iteration count falls back to the
// solver default.
func NewWorld(gravity mgl64.Vec2, dt float64, iterations int) *World {
	if dt <= 0 {
		dt = DefaultTimeStep
	}
	return &World{
		gravity:  gravity,
		h:        dt,
		detector: contact.NewPlanarDetector(),
		solver:   constraint.NewSolver(iterations),
	}
}

// AddBody appends b to the world and returns its body index.
func (w *World) AddBody(b *rigid.Body) int {
	w.bodies = append(w.bodies, b)
	w.dofs += b.Dofs()
	return len(w.bodies) - 1
}

// SetDetector swaps the contact detector. A nil detector restores the
// built-in planar one.
func (w *World) SetDetector(d contact.Detector) {
	if d == nil {
		d = contact.NewPlanarDetector()
	}
	w.detector = d
}

// Bodies returns the bodies in index order. The slice is owned by the
// world; treat it as read-only.
func (w *World) Bodies() []*rigid.Body { return w.bodies }

func (w *World) NumBodies() int { return len(w.bodies) }

// NumDofs is the number of generalized coordinates across all dynamic
// bodies. The state vector has twice this length.
func (w *World) NumDofs() int { return w.dofs }

func (w *World) TimeStep() float64   { return w.h }
func (w *World) Gravity() mgl64.Vec2 { return w.gravity }

// Solver returns the constraint solver. The world retains ownership;
// callers may replace its engine but must not share it across worlds.
func (w *World) Solver() *constraint.Solver { return w.solver }

// Body returns the body at index i.
func (w *World) Body(i int) (*rigid.Body, error) {
	if i < 0 || i >= len(w.bodies) {
		return nil, rigid.IndexError{Index: i, Len: len(w.bodies)}
	}
	return w.bodies[i], nil
}

// State returns a fresh copy of the world state: the positions of every
// dynamic body in index order (x, y, angle each), then the velocities in
// the same order. len(State()) == 2*NumDofs().
func (w *World) State() rigid.State {
	s := make(rigid.State, 2*w.dofs)
	i := 0
	for _, b := range w.bodies {
		if b.Dofs() == 0 {
			continue
		}
		s[i] = b.Position.X()
		s[i+1] = b.Position.Y()
		s[i+2] = b.Angle
		s[w.dofs+i] = b.Velocity.X()
		s[w.dofs+i+1] = b.Velocity.Y()
		s[w.dofs+i+2] = b.AngularVelocity
		i += 3
	}
	return s
}

// SetState overwrites positions and velocities from s, which must have
// length 2*NumDofs(). On a dimension mismatch nothing is written.
func (w *World) SetState(s rigid.State) error {
	if len(s) != 2*w.dofs {
		return rigid.DimensionError{Label: "state", Want: 2 * w.dofs, Got: len(s)}
	}
	i := 0
	for _, b := range w.bodies {
		if b.Dofs() == 0 {
			continue
		}
		b.Position = mgl64.Vec2{s[i], s[i+1]}
		b.Angle = s[i+2]
		b.Velocity = mgl64.Vec2{s[w.dofs+i], s[w.dofs+i+1]}
		b.AngularVelocity = s[w.dofs+i+2]
		i += 3
	}
	return nil
}

// SetAction stages the generalized force vector for the next Step: per
// dynamic body a force (fx, fy) and a torque, in body index order. The
// vector must have length NumDofs(). The value is copied and is consumed
// by the step; it is not retained afterwards.
func (w *World) SetAction(a rigid.Action) error {
	if len(a) != w.dofs {
		return rigid.DimensionError{Label: "action", Want: w.dofs, Got: len(a)}
	}
	w.action = a.Clone()
	return nil
}

// Contacts returns the contact set gathered for the current resolution.
// Step refreshes it before resolving; it is empty before the first step.
func (w *World) Contacts() []contact.Contact { return w.contacts }

// DetectContacts refreshes the contact set from current body positions
// and returns it. Step does this itself; call it directly only when
// driving the solver without a full step.
func (w *World) DetectContacts() []contact.Contact {
	w.contacts = w.detector.Detect(w.bodies)
	return w.contacts
}

// LCPResolve runs the built-in boxed-LCP resolution against the current
// contact set, overwriting the impulse batch.
func (w *World) LCPResolve() error {
	return w.solver.ResolveLCP(w)
}

// Step advances the world by one timestep. The staged action and
// gravity are folded into velocities first, then contacts are detected
// and resolved into an impulse batch, the batch is folded into
// velocities, and finally positions integrate. The staged action is
// consumed even when resolution fails.
//
// On a resolution error the world is left as of just before resolution:
// action and gravity effects on velocities stay, positions do not move.
func (w *World) Step() error {
	w.applyAction()
	w.integrateForces()
	w.DetectContacts()

	if err := w.solver.Resolve(w); err != nil {
		return err
	}

	w.IntegrateVelocitiesFromImpulses()
	w.integratePositions()
	return nil
}

// applyAction moves the staged generalized forces into the per-body
// accumulators and drops the staged vector.
func (w *World) applyAction() {
	if w.action == nil {
		return
	}
	i := 0
	for _, b := range w.bodies {
		if b.Dofs() == 0 {
			continue
		}
		b.AddForce(mgl64.Vec2{w.action[i], w.action[i+1]})
		b.AddTorque(w.action[i+2])
		i += 3
	}
	w.action = nil
}

// integrateForces folds gravity and the accumulated external forces
// into velocities (semi-implicit Euler) and clears the accumulators.
func (w *World) integrateForces() {
	for _, b := range w.bodies {
		if b.Kind == rigid.BodyStatic {
			continue
		}
		b.Velocity = b.Velocity.Add(w.gravity.Mul(w.h)).Add(b.Force().Mul(w.h * b.InvMass()))
		b.AngularVelocity += w.h * b.Torque() * b.InvInertia()
		b.ClearForces()
	}
}

// IntegrateVelocitiesFromImpulses folds the accumulated impulse batch
// into velocities. The batch survives the call: applying it twice
// doubles its effect. It is cleared when the next resolution begins.
func (w *World) IntegrateVelocitiesFromImpulses() {
	for _, b := range w.bodies {
		b.ApplyImpulses()
	}
}

func (w *World) integratePositions() {
	for _, b := range w.bodies {
		if b.Kind == rigid.BodyStatic {
			continue
		}
		b.Position = b.Position.Add(b.Velocity.Mul(w.h))
		b.Angle += w.h * b.AngularVelocity
	}
}
