// Package viz provides the terminal front end for the pendulum simulation.
//
// The view is a Bubble Tea program drawing onto a braille [Canvas], so each
// terminal cell holds a 2x4 grid of dots.
//
// # Key Bindings
//
//	S     - Spawn one pendulum
//	W     - Spawn a batch of pendulums
//	R     - Remove all pendulums
//	A     - Toggle trails
//	P     - Toggle pendulum rods
//	D     - Toggle damping
//	Space - Pause/Resume
//	?     - Show help
package viz
