package constraint_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/impulse/internal/constraint"
	"github.com/san-kum/impulse/internal/simulation"
)

var _ = Describe("Engine variants", func() {
	var world *simulation.World

	BeforeEach(func() {
		world = approachWorld()
	})

	Describe("Func", func() {
		It("runs exactly once per resolution", func() {
			count := 0
			world.Solver().ReplaceEngine(constraint.Func(func() error {
				count++
				return nil
			}))

			Expect(world.Solver().Resolve(world)).To(Succeed())
			Expect(count).To(Equal(1))

			Expect(world.Solver().Resolve(world)).To(Succeed())
			Expect(count).To(Equal(2))
		})

		It("propagates failures wrapped in EngineError", func() {
			boom := errors.New("boom")
			world.Solver().ReplaceEngine(constraint.Func(func() error { return boom }))

			err := world.Solver().Resolve(world)
			Expect(err).To(MatchError(boom))

			var engErr constraint.EngineError
			Expect(errors.As(err, &engErr)).To(BeTrue())
			Expect(engErr.Cause).To(Equal(boom))
		})
	})

	Describe("WorldFunc", func() {
		It("receives the world being resolved, once per call", func() {
			count := 0
			var seen constraint.World
			world.Solver().ReplaceEngine(constraint.WorldFunc(func(w constraint.World) error {
				count++
				seen = w
				return nil
			}))

			Expect(world.Solver().Resolve(world)).To(Succeed())
			Expect(count).To(Equal(1))
			Expect(seen).To(BeIdenticalTo(world))
		})

		It("may delegate to the built-in resolution", func() {
			world.Solver().ReplaceEngine(constraint.WorldFunc(func(w constraint.World) error {
				return w.LCPResolve()
			}))

			Expect(world.Solver().Resolve(world)).To(Succeed())

			impulses := world.Solver().LastImpulses()
			Expect(impulses).To(HaveLen(3))
			Expect(impulses[1]).To(BeNumerically("~", 1.0, 1e-9))
		})
	})

	DescribeTable("nil functions are rejected before the world is touched",
		func(engine constraint.Engine) {
			Expect(world.Solver().Resolve(world)).To(Succeed())
			before := world.Solver().LastImpulses()
			circle, err := world.Body(1)
			Expect(err).NotTo(HaveOccurred())
			jBefore, angBefore := circle.Impulse()

			world.Solver().ReplaceEngine(engine)
			resolveErr := world.Solver().Resolve(world)
			Expect(resolveErr).To(MatchError(constraint.ErrNilEngineFunc))

			jAfter, angAfter := circle.Impulse()
			Expect(jAfter).To(Equal(jBefore))
			Expect(angAfter).To(Equal(angBefore))
			Expect(world.Solver().LastImpulses()).To(Equal(before))
		},
		Entry("Func(nil)", constraint.Func(nil)),
		Entry("WorldFunc(nil)", constraint.WorldFunc(nil)),
	)

	Describe("the zero value", func() {
		It("is the built-in resolution", func() {
			plain := approachWorld()
			Expect(plain.Solver().Resolve(plain)).To(Succeed())

			zeroed := approachWorld()
			zeroed.Solver().ReplaceEngine(constraint.Engine{})
			Expect(zeroed.Solver().Resolve(zeroed)).To(Succeed())

			explicit := approachWorld()
			explicit.Solver().ReplaceEngine(constraint.Default())
			Expect(explicit.Solver().Resolve(explicit)).To(Succeed())

			Expect(zeroed.Solver().LastImpulses()).To(Equal(plain.Solver().LastImpulses()))
			Expect(explicit.Solver().LastImpulses()).To(Equal(plain.Solver().LastImpulses()))
		})
	})
})

var _ = Describe("Frictionless", func() {
	It("zeroes every coefficient while the inner engine runs and restores afterwards", func() {
		world := slidingWorld()

		var seen []float64
		inner := constraint.WorldFunc(func(w constraint.World) error {
			for _, b := range w.Bodies() {
				seen = append(seen, b.FrictionCoeff())
			}
			return nil
		})

		world.Solver().ReplaceEngine(constraint.Frictionless(inner))
		Expect(world.Solver().Resolve(world)).To(Succeed())

		Expect(seen).To(HaveLen(2))
		Expect(seen[0]).To(BeZero())
		Expect(seen[1]).To(BeZero())

		for _, b := range world.Bodies() {
			Expect(b.FrictionCoeff()).To(Equal(0.4))
		}
	})

	It("restores coefficients when the inner engine fails", func() {
		world := slidingWorld()

		boom := errors.New("boom")
		world.Solver().ReplaceEngine(constraint.Frictionless(constraint.Func(func() error {
			return boom
		})))

		err := world.Solver().Resolve(world)
		Expect(err).To(MatchError(boom))

		for _, b := range world.Bodies() {
			Expect(b.FrictionCoeff()).To(Equal(0.4))
		}
	})

	It("surfaces a malformed inner engine with coefficients restored", func() {
		world := slidingWorld()

		world.Solver().ReplaceEngine(constraint.Frictionless(constraint.Func(nil)))

		err := world.Solver().Resolve(world)
		Expect(err).To(MatchError(constraint.ErrNilEngineFunc))

		var engErr constraint.EngineError
		Expect(errors.As(err, &engErr)).To(BeTrue())

		for _, b := range world.Bodies() {
			Expect(b.FrictionCoeff()).To(Equal(0.4))
		}
	})

	It("suppresses tangential impulses on a sliding contact", func() {
		world := slidingWorld()
		Expect(world.Solver().Resolve(world)).To(Succeed())

		withFriction := world.Solver().LastImpulses()
		Expect(withFriction[0]).To(BeNumerically("~", -0.4*0.098, 1e-9))
		Expect(withFriction[1]).To(BeNumerically("~", 0.098, 1e-9))

		Expect(world.SetState(slidingState())).To(Succeed())
		world.Solver().ReplaceEngine(constraint.Frictionless(constraint.Default()))
		Expect(world.Solver().Resolve(world)).To(Succeed())

		frictionless := world.Solver().LastImpulses()
		Expect(frictionless[0]).To(BeNumerically("~", 0, 1e-12))
		Expect(frictionless[1]).To(BeNumerically("~", 0.098, 1e-9))
		Expect(frictionless[2]).To(BeNumerically("~", 0, 1e-12))
	})

	It("resolves identically when applied twice from the same state", func() {
		world := slidingWorld()
		world.Solver().ReplaceEngine(constraint.Frictionless(constraint.Default()))

		Expect(world.Solver().Resolve(world)).To(Succeed())
		first := world.Solver().LastImpulses()

		Expect(world.SetState(slidingState())).To(Succeed())
		Expect(world.Solver().Resolve(world)).To(Succeed())
		second := world.Solver().LastImpulses()

		Expect(second).To(Equal(first))
	})
})
