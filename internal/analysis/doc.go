// Package analysis provides chaos diagnostics for double pendulums.
//
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory separation
//   - [PowerSpectrum]: magnitude spectrum of a sampled signal
//   - [DominantFrequency]: strongest non-DC frequency of a signal
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda, err := analysis.LyapunovExponent(p, params, false, dt, duration, 1e-8)
//	if lambda > 0 {
//	    // chaotic
//	}
package analysis
