package metrics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/impulse/internal/rigid"
	"github.com/san-kum/impulse/internal/simulation"
)

// Energy reports the mean mechanical energy (kinetic plus gravitational
// potential) of the dynamic bodies over a rollout. Masses are cached at
// construction, so the metric stays valid only while the world's body
// set does.
type Energy struct {
	name        string
	masses      []float64
	inertias    []float64
	gravity     mgl64.Vec2
	samples     int
	totalEnergy float64
}

func NewEnergy(w *simulation.World) *Energy {
	e := &Energy{
		name:    "energy",
		gravity: w.Gravity(),
	}
	for _, b := range w.Bodies() {
		if b.Dofs() == 0 {
			continue
		}
		e.masses = append(e.masses, b.Mass())
		e.inertias = append(e.inertias, b.Inertia())
	}
	return e
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(x rigid.State, impulses []float64, t float64) {
	if len(x) != 6*len(e.masses) {
		return
	}
	e.totalEnergy += mechanicalEnergy(x, e.masses, e.inertias, e.gravity)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift reports the largest relative deviation of mechanical
// energy from its value at the first observation.
type EnergyDrift struct {
	name          string
	masses        []float64
	inertias      []float64
	gravity       mgl64.Vec2
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(w *simulation.World) *EnergyDrift {
	e := &EnergyDrift{
		name:    "energy_drift",
		gravity: w.Gravity(),
	}
	for _, b := range w.Bodies() {
		if b.Dofs() == 0 {
			continue
		}
		e.masses = append(e.masses, b.Mass())
		e.inertias = append(e.inertias, b.Inertia())
	}
	return e
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x rigid.State, impulses []float64, t float64) {
	if len(x) != 6*len(e.masses) {
		return
	}

	energy := mechanicalEnergy(x, e.masses, e.inertias, e.gravity)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// mechanicalEnergy sums kinetic and gravitational potential energy over
// the dynamic bodies. x is laid out positions first, velocities second.
func mechanicalEnergy(x rigid.State, masses, inertias []float64, gravity mgl64.Vec2) float64 {
	dofs := 3 * len(masses)
	total := 0.0
	for k, m := range masses {
		px, py := x[3*k], x[3*k+1]
		vx, vy := x[dofs+3*k], x[dofs+3*k+1]
		omega := x[dofs+3*k+2]

		ke := 0.5*m*(vx*vx+vy*vy) + 0.5*inertias[k]*omega*omega
		pe := -m * (gravity.X()*px + gravity.Y()*py)
		total += ke + pe
	}
	return total
}
