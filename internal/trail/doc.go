// Package trail keeps a bounded history of pendulum tip positions.
//
// A [Buffer] is a ring of positions that drops its oldest entry once full.
// A [Timer] decides when a new sample is taken; it is advanced with real
// frame time rather than the physics timestep.
package trail
