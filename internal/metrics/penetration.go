package metrics

import (
	"math"

	"github.com/san-kum/impulse/internal/rigid"
	"github.com/san-kum/impulse/internal/simulation"
)

// Penetration reports the deepest contact overlap seen during a
// rollout; it reads the contact set off the world it was built for.
type Penetration struct {
	name     string
	world    *simulation.World
	maxDepth float64
}

func NewPenetration(w *simulation.World) *Penetration {
	return &Penetration{
		name:  "penetration",
		world: w,
	}
}

func (p *Penetration) Name() string {
	return p.name
}

func (p *Penetration) Observe(x rigid.State, impulses []float64, t float64) {
	for _, c := range p.world.Contacts() {
		p.maxDepth = math.Max(p.maxDepth, c.Depth)
	}
}

func (p *Penetration) Value() float64 {
	return p.maxDepth
}

func (p *Penetration) Reset() {
	p.maxDepth = 0
}
