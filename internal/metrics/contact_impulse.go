package metrics

import (
	"math"

	"github.com/san-kum/impulse/internal/rigid"
)

type ContactImpulse struct {
	name    string
	sum     float64
	samples int
}

func NewContactImpulse() *ContactImpulse {
	return &ContactImpulse{
		name: "contact_impulse",
	}
}

func (c *ContactImpulse) Name() string {
	return c.name
}

func (c *ContactImpulse) Observe(x rigid.State, impulses []float64, t float64) {
	for _, val := range impulses {
		c.sum += math.Abs(val)
	}
	c.samples++
}

func (c *ContactImpulse) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ContactImpulse) Reset() {
	c.sum = 0
	c.samples = 0
}
