package constraint_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/impulse/internal/constraint"
	"github.com/san-kum/impulse/internal/simulation"
)

var _ = Describe("Solver", func() {
	var world *simulation.World

	BeforeEach(func() {
		world = approachWorld()
	})

	It("starts with no recorded impulses", func() {
		Expect(world.Solver().LastImpulses()).To(BeNil())
	})

	It("hands out copies of the recorded impulses", func() {
		Expect(world.Solver().Resolve(world)).To(Succeed())

		first := world.Solver().LastImpulses()
		first[0] = 999

		second := world.Solver().LastImpulses()
		Expect(second[0]).NotTo(Equal(999.0))
	})

	It("records impulses only for successful resolutions", func() {
		Expect(world.Solver().Resolve(world)).To(Succeed())
		before := world.Solver().LastImpulses()

		world.Solver().ReplaceEngine(constraint.Func(nil))
		Expect(world.Solver().Resolve(world)).NotTo(Succeed())

		Expect(world.Solver().LastImpulses()).To(Equal(before))
	})

	It("clears the previous batch before the engine runs", func() {
		Expect(world.Solver().Resolve(world)).To(Succeed())

		world.Solver().ReplaceEngine(constraint.WorldFunc(func(w constraint.World) error {
			for _, b := range w.Bodies() {
				j, ang := b.Impulse()
				Expect(j.X()).To(BeZero())
				Expect(j.Y()).To(BeZero())
				Expect(ang).To(BeZero())
			}
			return nil
		}))
		Expect(world.Solver().Resolve(world)).To(Succeed())
	})

	It("keeps the engine it started a resolution with", func() {
		replacedRuns := 0
		replacement := constraint.Func(func() error {
			replacedRuns++
			return nil
		})

		world.Solver().ReplaceEngine(constraint.WorldFunc(func(w constraint.World) error {
			// Swapping mid-resolution must only affect the next call.
			world.Solver().ReplaceEngine(replacement)
			return w.LCPResolve()
		}))

		Expect(world.Solver().Resolve(world)).To(Succeed())
		Expect(replacedRuns).To(Equal(0))

		Expect(world.Solver().Resolve(world)).To(Succeed())
		Expect(replacedRuns).To(Equal(1))
	})

	It("falls back to the default iteration count", func() {
		s := constraint.NewSolver(0)
		Expect(s.Iterations()).To(Equal(constraint.DefaultIterations))

		s = constraint.NewSolver(8)
		Expect(s.Iterations()).To(Equal(8))
	})
})
