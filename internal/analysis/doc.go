// Package analysis provides frequency analysis for recorded rollouts.
//
// The package characterizes trajectories after the fact:
//
//   - [PowerSpectrum]: magnitude spectrum of one state coordinate
//   - [DominantFrequency]: strongest non-constant component in hertz
//
// Bounce and oscillation periods show up as sharp spectral peaks, so a
// restitution scene can be checked against its expected contact rhythm:
//
//	ps := analysis.PowerSpectrum(analysis.PadPow2(heights))
//	hz, _ := analysis.DominantFrequency(ps, dt)
package analysis
