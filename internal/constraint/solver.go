package constraint

// Solver owns the active constraint engine and the record of the most
// recent resolution. It is not safe for concurrent use.
type Solver struct {
	iterations int
	engine     Engine
	last       []float64
}

// NewSolver builds a solver running the default engine. Non-positive
// iteration counts fall back to DefaultIterations.
func NewSolver(iterations int) *Solver {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &Solver{iterations: iterations}
}

func (s *Solver) Iterations() int { return s.iterations }

// Engine returns the engine the next Resolve will run.
func (s *Solver) Engine() Engine { return s.engine }

// ReplaceEngine installs e for future resolutions. A resolution already
// in flight keeps the engine it started with. The zero Engine restores
// the built-in resolution.
func (s *Solver) ReplaceEngine(e Engine) {
	s.engine = e
}

// Resolve runs the active engine against w. The engine is snapshot at
// entry, so a mid-resolution ReplaceEngine (from a world-aware engine,
// say) takes effect only on the next call. Malformed engines are
// rejected before the impulse batch is touched; engine failures come
// back wrapped in EngineError with the batch in whatever state the
// engine left it.
func (s *Solver) Resolve(w World) error {
	engine := s.engine
	if err := engine.validate(); err != nil {
		return err
	}

	for _, b := range w.Bodies() {
		b.ClearImpulses()
	}

	if err := invoke(engine, w); err != nil {
		return EngineError{Cause: err}
	}

	s.captureImpulses(w)
	return nil
}

// captureImpulses records the generalized impulse vector of the batch
// the engine produced, in body/DOF order.
func (s *Solver) captureImpulses(w World) {
	n := w.NumDofs()
	if cap(s.last) < n {
		s.last = make([]float64, n)
	}
	s.last = s.last[:n]

	i := 0
	for _, b := range w.Bodies() {
		if b.Dofs() == 0 {
			continue
		}
		j, ang := b.Impulse()
		s.last[i] = j.X()
		s.last[i+1] = j.Y()
		s.last[i+2] = ang
		i += 3
	}
}

// LastImpulses returns a copy of the generalized impulses from the most
// recent successful Resolve, or nil if none has completed.
func (s *Solver) LastImpulses() []float64 {
	if s.last == nil {
		return nil
	}
	out := make([]float64, len(s.last))
	copy(out, s.last)
	return out
}
