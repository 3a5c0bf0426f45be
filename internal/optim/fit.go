package optim

import (
	"context"
	"errors"

	"github.com/san-kum/freefall/internal/analysis"
	"github.com/san-kum/freefall/internal/experiment"
)

// FitDrag searches the drag grid for the coefficient whose simulated drop
// from height best matches an observed fall duration. Returns the best
// coefficient and its squared time error.
func FitDrag(ctx context.Context, height, mass, dt, observedTime float64, grid []float64) (float64, float64, error) {
	if observedTime <= 0 {
		return 0, 0, errors.New("optim: observed fall time must be positive")
	}
	if len(grid) == 0 {
		return 0, 0, errors.New("optim: empty drag grid")
	}

	gs := NewGridSearch([]string{"drag"}, [][]float64{grid})

	bestParams, bestLoss, err := gs.Search(ctx, func(params map[string]float64) (float64, error) {
		result, err := experiment.Drop(ctx, experiment.DropConfig{
			Height: height,
			Drag:   params["drag"],
			Mass:   mass,
			Dt:     dt,
		})
		if err != nil {
			return 0, err
		}

		impact, err := analysis.ImpactTime(result.Times, result.Column(0))
		if err != nil {
			// Degenerate run; fall back on the last recorded time.
			impact = result.Times[len(result.Times)-1]
		}

		d := impact - observedTime
		return d * d, nil
	})
	if err != nil {
		return 0, 0, err
	}
	if bestParams == nil {
		return 0, 0, errors.New("optim: no grid point produced a valid run")
	}

	return bestParams["drag"], bestLoss, nil
}
