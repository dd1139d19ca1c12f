package constraint

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/impulse/internal/contact"
	"github.com/san-kum/impulse/internal/rigid"
)

const (
	// DefaultIterations is the Gauss-Seidel sweep count when the caller
	// does not choose one. Stacks of a few bodies settle well below this.
	DefaultIterations = 16

	// Baumgarte is the fraction of penetration depth fed back into the
	// velocity target per step. Higher values separate faster but inject
	// energy into resting stacks.
	Baumgarte = 0.2

	// Slop is the penetration allowance left uncorrected so resting
	// contacts do not jitter.
	Slop = 0.005

	// RestitutionThreshold is the approach speed below which bounce is
	// suppressed; grazing contacts come to rest instead of vibrating.
	RestitutionThreshold = 0.5
)

// bodyState tracks the velocity change implied by the impulses applied
// so far without touching the body. Bodies keep their pre-resolution
// velocities until the integration step folds the batch in.
type bodyState struct {
	body *rigid.Body
	dv   mgl64.Vec2
	dw   float64
}

func (st *bodyState) velocityAt(r mgl64.Vec2) mgl64.Vec2 {
	w := st.body.AngularVelocity + st.dw
	v := st.body.Velocity.Add(st.dv)
	return v.Add(rigid.Perp(r).Mul(w))
}

// apply records the incremental impulse j acting at offset r: into the
// scratch velocity so later rows see it, and into the body batch so the
// integrator can.
func (st *bodyState) apply(j, r mgl64.Vec2) {
	st.dv = st.dv.Add(j.Mul(st.body.InvMass()))
	st.dw += rigid.Cross(r, j) * st.body.InvInertia()
	st.body.AddImpulse(j, rigid.Cross(r, j))
}

// row is one contact constraint prepared for iteration.
type row struct {
	a, b    *bodyState
	ra, rb  mgl64.Vec2
	normal  mgl64.Vec2
	tangent mgl64.Vec2

	massN float64
	massT float64

	// bias is the minimum outgoing normal speed: Baumgarte feedback on
	// penetration plus restitution bounce from the approach speed.
	bias float64

	friction float64

	lambdaN float64
	lambdaT float64
}

// ResolveLCP runs the built-in contact resolution: every contact gets a
// non-negative normal impulse and a tangential impulse clamped to the
// Coulomb cone |lambdaT| <= mu*lambdaN, solved together by projected
// Gauss-Seidel sweeps. The impulse batch is overwritten; velocities and
// positions are untouched.
func (s *Solver) ResolveLCP(w World) error {
	for _, b := range w.Bodies() {
		b.ClearImpulses()
	}

	contacts := w.Contacts()
	if len(contacts) == 0 {
		return nil
	}

	states := make(map[*rigid.Body]*bodyState, 2*len(contacts))
	state := func(b *rigid.Body) *bodyState {
		st, ok := states[b]
		if !ok {
			st = &bodyState{body: b}
			states[b] = st
		}
		return st
	}

	h := w.TimeStep()
	rows := make([]row, 0, len(contacts))
	for _, c := range contacts {
		if r, ok := prepareRow(c, state(c.A), state(c.B), h); ok {
			rows = append(rows, r)
		}
	}

	for it := 0; it < s.iterations; it++ {
		for i := range rows {
			rows[i].solveNormal()
			rows[i].solveTangent()
		}
	}
	return nil
}

func prepareRow(c contact.Contact, a, b *bodyState, h float64) (row, bool) {
	r := row{
		a:      a,
		b:      b,
		ra:     c.Point.Sub(c.A.Position),
		rb:     c.Point.Sub(c.B.Position),
		normal: c.Normal,
	}
	r.tangent = rigid.Perp(r.normal)

	kn := c.A.InvMass() + c.B.InvMass()
	raCrossN := rigid.Cross(r.ra, r.normal)
	rbCrossN := rigid.Cross(r.rb, r.normal)
	kn += raCrossN*raCrossN*c.A.InvInertia() + rbCrossN*rbCrossN*c.B.InvInertia()
	if kn < 1e-12 {
		return row{}, false
	}
	r.massN = 1.0 / kn

	kt := c.A.InvMass() + c.B.InvMass()
	raCrossT := rigid.Cross(r.ra, r.tangent)
	rbCrossT := rigid.Cross(r.rb, r.tangent)
	kt += raCrossT*raCrossT*c.A.InvInertia() + rbCrossT*rbCrossT*c.B.InvInertia()
	if kt >= 1e-12 {
		r.massT = 1.0 / kt
	}

	r.friction = math.Sqrt(c.A.FrictionCoeff() * c.B.FrictionCoeff())

	penetration := c.Depth - Slop
	if penetration > 0 {
		r.bias = Baumgarte / h * penetration
	}

	// Restitution uses the approach speed before any impulse acts.
	vn := r.b.velocityAt(r.rb).Sub(r.a.velocityAt(r.ra)).Dot(r.normal)
	if vn < -RestitutionThreshold {
		e := 0.5 * (c.A.Restitution + c.B.Restitution)
		r.bias += -e * vn
	}

	return r, true
}

func (r *row) solveNormal() {
	rel := r.b.velocityAt(r.rb).Sub(r.a.velocityAt(r.ra))
	vn := rel.Dot(r.normal)

	dLambda := (r.bias - vn) * r.massN
	next := r.lambdaN + dLambda
	if next < 0 {
		next = 0
	}
	dLambda = next - r.lambdaN
	r.lambdaN = next

	j := r.normal.Mul(dLambda)
	r.a.apply(j.Mul(-1), r.ra)
	r.b.apply(j, r.rb)
}

func (r *row) solveTangent() {
	if r.massT == 0 {
		return
	}

	rel := r.b.velocityAt(r.rb).Sub(r.a.velocityAt(r.ra))
	vt := rel.Dot(r.tangent)

	dLambda := -vt * r.massT
	limit := r.friction * r.lambdaN
	next := r.lambdaT + dLambda
	if next > limit {
		next = limit
	} else if next < -limit {
		next = -limit
	}
	dLambda = next - r.lambdaT
	r.lambdaT = next

	j := r.tangent.Mul(dLambda)
	r.a.apply(j.Mul(-1), r.ra)
	r.b.apply(j, r.rb)
}
