// Package contact holds the collision boundary of the engine. Detection is
// consumed through the [Detector] interface so a richer narrow phase can be
// swapped in without touching the solver; [PlanarDetector] is the built-in
// circle/half-plane implementation.
package contact

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/impulse/internal/rigid"
)

// Contact is one touching or penetrating point pair between two bodies.
// Normal points from A into B; Depth >= 0 is the penetration along it.
type Contact struct {
	A, B   *rigid.Body
	Point  mgl64.Vec2
	Normal mgl64.Vec2
	Depth  float64
}

// Detector finds the active contacts for the current body configuration.
type Detector interface {
	Detect(bodies []*rigid.Body) []Contact
}
