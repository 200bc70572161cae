// Package sim owns the set of live pendulums and drives them in time.
//
// A [Simulation] runs two clocks from a single Frame call: physics advances
// in fixed dt steps consumed from an accumulator of real elapsed time, and
// trail sampling runs on its own repeating timer. Input collaborators
// [Simulation.Submit] commands, which are applied at the start of the next
// frame so that the frame owner is the only writer.
//
// Rendering collaborators implement [Renderer] and are handed segments and
// trails by [Simulation.Render].
package sim
