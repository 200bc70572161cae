package pendulum

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerate indicates the equations of motion produced a vanishing
	// denominator or a non-finite acceleration.
	ErrDegenerate = errors.New("pendulum: degenerate state (non-finite acceleration)")

	// ErrInvalidLength indicates a rod length that is not strictly positive.
	ErrInvalidLength = errors.New("pendulum: rod length must be positive and finite")

	// ErrInvalidMass indicates a bob mass that is not strictly positive.
	ErrInvalidMass = errors.New("pendulum: mass must be positive and finite")
)

// StepError describes a skipped integration step. Pendulum is the
// registry handle of the pendulum, or 0 when stepped outside a registry.
type StepError struct {
	Pendulum uint64
	Alpha1   float64
	Alpha2   float64
	Wrapped  error
}

func (e *StepError) Error() string {
	if e.Pendulum != 0 {
		return fmt.Sprintf("pendulum %d: %v (alpha1=%g, alpha2=%g)", e.Pendulum, e.Wrapped, e.Alpha1, e.Alpha2)
	}
	return fmt.Sprintf("%v (alpha1=%g, alpha2=%g)", e.Wrapped, e.Alpha1, e.Alpha2)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
