package simulation

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/impulse/internal/rigid"
)

func BenchmarkStepResting(b *testing.B) {
	w := restingWorld()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = w.Step()
	}
}

func BenchmarkStepStack(b *testing.B) {
	w := NewWorld(mgl64.Vec2{0, -9.8}, 0.01, 0)
	w.AddBody(rigid.NewGround(-0.5))
	for i := 0; i < 5; i++ {
		w.AddBody(rigid.NewCircle(mgl64.Vec2{0, float64(i)}, 0.5, 1.0))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = w.Step()
	}
}

func BenchmarkStateRoundTrip(b *testing.B) {
	w := restingWorld()
	s := w.State()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = w.SetState(s)
		s = w.State()
	}
}
