package rigid

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type BodyKind int

const (
	// BodyDynamic bodies carry three generalized coordinates (x, y, angle)
	// and respond to forces and impulses.
	BodyDynamic BodyKind = iota

	// BodyStatic bodies have infinite mass and never move (ground, walls).
	BodyStatic
)

type ShapeKind int

const (
	ShapeCircle ShapeKind = iota

	// ShapeGround is the half-plane y <= Position.Y() with an upward normal.
	ShapeGround
)

// DofsPerBody is the number of generalized coordinates a dynamic body
// contributes to the world state vector: x, y, angle.
const DofsPerBody = 3

// Body is a planar rigid body. Kinematic fields are exported and mutated
// in place by the stepping code; mass data is fixed at construction.
type Body struct {
	Kind  BodyKind
	Shape ShapeKind

	Position mgl64.Vec2
	Angle    float64

	Velocity        mgl64.Vec2
	AngularVelocity float64

	// Radius of the circle shape; unused for ShapeGround.
	Radius float64

	// Restitution in [0, 1]: 0 = no rebound, 1 = perfect bounce.
	Restitution float64

	mass       float64
	inertia    float64
	invMass    float64
	invInertia float64

	frictionCoeff float64

	force  mgl64.Vec2
	torque float64

	impulse        mgl64.Vec2
	angularImpulse float64
}

// NewCircle builds a dynamic circular body. Inertia follows the solid
// disc formula I = m*r*r/2.
func NewCircle(position mgl64.Vec2, radius, mass float64) *Body {
	b := &Body{
		Kind:     BodyDynamic,
		Shape:    ShapeCircle,
		Position: position,
		Radius:   radius,
		mass:     mass,
		inertia:  0.5 * mass * radius * radius,
	}
	b.invMass = 1.0 / b.mass
	b.invInertia = 1.0 / b.inertia
	return b
}

// NewGround builds the static half-plane y <= height.
func NewGround(height float64) *Body {
	return &Body{
		Kind:     BodyStatic,
		Shape:    ShapeGround,
		Position: mgl64.Vec2{0, height},
		mass:     math.Inf(1),
		inertia:  math.Inf(1),
	}
}

func (b *Body) Mass() float64       { return b.mass }
func (b *Body) Inertia() float64    { return b.inertia }
func (b *Body) InvMass() float64    { return b.invMass }
func (b *Body) InvInertia() float64 { return b.invInertia }

// Dofs is the number of state-vector slots this body occupies.
func (b *Body) Dofs() int {
	if b.Kind == BodyStatic {
		return 0
	}
	return DofsPerBody
}

// FrictionCoeff returns the Coulomb friction coefficient of the body surface.
func (b *Body) FrictionCoeff() float64 { return b.frictionCoeff }

// SetFrictionCoeff replaces the friction coefficient; negative values
// clamp to zero.
func (b *Body) SetFrictionCoeff(mu float64) {
	if mu < 0 {
		mu = 0
	}
	b.frictionCoeff = mu
}

// AddForce accumulates an external force for the next step.
func (b *Body) AddForce(f mgl64.Vec2) {
	if b.Kind != BodyStatic {
		b.force = b.force.Add(f)
	}
}

// AddTorque accumulates an external torque for the next step.
func (b *Body) AddTorque(t float64) {
	if b.Kind != BodyStatic {
		b.torque += t
	}
}

func (b *Body) Force() mgl64.Vec2 { return b.force }
func (b *Body) Torque() float64   { return b.torque }

func (b *Body) ClearForces() {
	b.force = mgl64.Vec2{}
	b.torque = 0
}

// AddImpulse accumulates a constraint impulse into the current batch.
func (b *Body) AddImpulse(j mgl64.Vec2, angular float64) {
	b.impulse = b.impulse.Add(j)
	b.angularImpulse += angular
}

// Impulse returns the accumulated constraint impulse batch.
func (b *Body) Impulse() (mgl64.Vec2, float64) {
	return b.impulse, b.angularImpulse
}

func (b *Body) ClearImpulses() {
	b.impulse = mgl64.Vec2{}
	b.angularImpulse = 0
}

// ApplyImpulses folds the accumulated constraint impulse batch into the
// velocities. The batch is NOT cleared here: applying the same batch a
// second time doubles it. The solver clears it when a new resolution
// begins.
func (b *Body) ApplyImpulses() {
	if b.Kind == BodyStatic {
		return
	}
	b.Velocity = b.Velocity.Add(b.impulse.Mul(b.invMass))
	b.AngularVelocity += b.angularImpulse * b.invInertia
}

// VelocityAt returns the velocity of the world-space point p as carried
// by this body.
func (b *Body) VelocityAt(p mgl64.Vec2) mgl64.Vec2 {
	r := p.Sub(b.Position)
	return b.Velocity.Add(mgl64.Vec2{-b.AngularVelocity * r.Y(), b.AngularVelocity * r.X()})
}

// Cross is the scalar 2D cross product a.x*b.y - a.y*b.x.
func Cross(a, b mgl64.Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// Perp rotates v by +90 degrees.
func Perp(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v.Y(), v.X()}
}
