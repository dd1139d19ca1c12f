package metrics

import (
	"github.com/san-kum/impulse/internal/rigid"
	"github.com/san-kum/impulse/internal/simulation"
)

// LowestPoint reports the lowest surface height any dynamic body
// reached: min over bodies and steps of (center y - radius).
type LowestPoint struct {
	name    string
	radii   []float64
	lowest  float64
	samples int
}

func NewLowestPoint(w *simulation.World) *LowestPoint {
	l := &LowestPoint{name: "lowest_point"}
	for _, b := range w.Bodies() {
		if b.Dofs() == 0 {
			continue
		}
		l.radii = append(l.radii, b.Radius)
	}
	return l
}

func (l *LowestPoint) Name() string {
	return l.name
}

func (l *LowestPoint) Observe(x rigid.State, impulses []float64, t float64) {
	if len(l.radii) == 0 || len(x) != 6*len(l.radii) {
		return
	}
	for k, r := range l.radii {
		low := x[3*k+1] - r
		if l.samples == 0 && k == 0 {
			l.lowest = low
		} else if low < l.lowest {
			l.lowest = low
		}
	}
	l.samples++
}

func (l *LowestPoint) Value() float64 {
	if l.samples == 0 {
		return 0
	}
	return l.lowest
}

func (l *LowestPoint) Reset() {
	l.lowest = 0
	l.samples = 0
}
