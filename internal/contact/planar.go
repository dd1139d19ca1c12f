package contact

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/impulse/internal/rigid"
)

// PlanarDetector is a brute-force O(n²) pair test over circles and ground
// half-planes, enough for the scene sizes this engine targets.
type PlanarDetector struct{}

func NewPlanarDetector() *PlanarDetector {
	return &PlanarDetector{}
}

func (d *PlanarDetector) Detect(bodies []*rigid.Body) []Contact {
	var contacts []Contact

	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			if a.Kind == rigid.BodyStatic && b.Kind == rigid.BodyStatic {
				continue
			}

			if c, ok := collide(a, b); ok {
				contacts = append(contacts, c)
			}
		}
	}

	return contacts
}

func collide(a, b *rigid.Body) (Contact, bool) {
	switch {
	case a.Shape == rigid.ShapeCircle && b.Shape == rigid.ShapeCircle:
		return circleCircle(a, b)
	case a.Shape == rigid.ShapeGround && b.Shape == rigid.ShapeCircle:
		return groundCircle(a, b)
	case a.Shape == rigid.ShapeCircle && b.Shape == rigid.ShapeGround:
		c, ok := groundCircle(b, a)
		if !ok {
			return Contact{}, false
		}
		// Keep the ground as A so the normal always points up into the circle.
		return c, true
	}
	return Contact{}, false
}

func circleCircle(a, b *rigid.Body) (Contact, bool) {
	d := b.Position.Sub(a.Position)
	dist := d.Len()
	depth := a.Radius + b.Radius - dist
	if depth < 0 {
		return Contact{}, false
	}

	normal := mgl64.Vec2{0, 1}
	if dist > 1e-12 {
		normal = d.Mul(1.0 / dist)
	}

	point := a.Position.Add(normal.Mul(a.Radius - depth*0.5))
	return Contact{A: a, B: b, Point: point, Normal: normal, Depth: depth}, true
}

// groundCircle takes the half-plane as A so the contact normal is the
// plane's upward normal.
func groundCircle(ground, circle *rigid.Body) (Contact, bool) {
	depth := ground.Position.Y() + circle.Radius - circle.Position.Y()
	if depth < 0 {
		return Contact{}, false
	}

	point := mgl64.Vec2{circle.Position.X(), circle.Position.Y() - circle.Radius}
	return Contact{A: ground, B: circle, Point: point, Normal: mgl64.Vec2{0, 1}, Depth: depth}, true
}
