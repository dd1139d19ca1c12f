// Package constraint implements contact resolution for the planar world.
//
// A [Solver] owns exactly one active [Engine], the strategy invoked once
// per simulation step to resolve every active constraint:
//
//   - [Default]: the built-in boxed LCP over the contact set (projected
//     Gauss-Seidel with Coulomb friction clamping)
//   - [Func]: a self-contained routine taking no arguments
//   - [WorldFunc]: a routine that receives the [World] it acts on
//   - [Frictionless]: wraps another engine, running it with every body's
//     friction coefficient forced to zero and restored afterwards
//
// # Usage
//
//	solver := w.Solver()
//	solver.ReplaceEngine(constraint.Frictionless(constraint.Default()))
//	// the next Step resolves contacts without friction
//
// An engine mutates body impulse batches only; velocities change when the
// world integrates the batch. Replacing the engine mid-resolution is not
// supported: confine a world and its solver to one goroutine, or guard
// them externally.
package constraint
