// Package simulation steps planar rigid-body worlds through time.
//
// The central type is [World]: an ordered set of bodies, gravity, a fixed
// timestep, and an exclusively-owned constraint solver. One call to
// [World.Step] advances the world by one timestep in a fixed order:
//
//  1. pending action and gravity are folded into velocities
//  2. contacts are detected and the solver's engine resolves them
//     into an impulse batch
//  3. the batch is folded into velocities
//  4. positions integrate from the post-impulse velocities
//
// [Timestep] wraps a single step as a pure state-in/state-out function,
// and [Rollout] drives repeated timesteps under a context, collecting
// states, impulses and metrics.
//
// # Thread Safety
//
// World instances are NOT thread-safe. Confine each World to one
// goroutine; run independent Worlds for parallel experiments.
package simulation
