// Package pendulum models a planar double pendulum and advances it in time.
//
// A [DoublePendulum] is two rigid, massless rods ([Segment]) chained from a
// fixed pivot at the origin, each ending in a point mass. Angles are measured
// from the downward vertical and are never wrapped.
//
// [DoublePendulum.Step] integrates the coupled equations of motion with
// semi-implicit Euler. The inner rod is advanced and placed before the outer
// rod, so the outer rod always hangs from the freshly computed inner tip.
//
// # Degenerate states
//
// The shared denominator of the acceleration terms can vanish for extreme
// mass ratios. Such steps are skipped and reported as [ErrDegenerate]; the
// pendulum keeps its previous state.
package pendulum
