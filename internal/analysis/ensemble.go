package analysis

import (
	"context"
	"fmt"

	"github.com/san-kum/pendulums/internal/pendulum"
	"golang.org/x/sync/errgroup"
)

// LyapunovEnsemble estimates the exponent of every pendulum in ps
// concurrently. Pendulums do not interact, so each estimate runs on its own
// copies. The result is indexed like ps.
func LyapunovEnsemble(
	ctx context.Context,
	ps []*pendulum.DoublePendulum,
	params pendulum.Params,
	damping bool,
	dt, duration, perturbation float64,
) ([]float64, error) {
	out := make([]float64, len(ps))
	g, ctx := errgroup.WithContext(ctx)

	for i, p := range ps {
		i, p := i, p // per-iteration copies; module targets go 1.21
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			lambda, err := LyapunovExponent(p, params, damping, dt, duration, perturbation)
			if err != nil {
				return fmt.Errorf("pendulum %d: %w", i, err)
			}
			out[i] = lambda
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
