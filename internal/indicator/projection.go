package indicator

import (
	"fmt"

	"github.com/sajari/regression"
)

// fitProjection fits an ordinary least squares line of value against row
// index and evaluates it at every index. The result is an in-sample trend
// line over the loaded window, not a forecast.
func fitProjection(values []float64) ([]float64, error) {
	if len(values) < 2 {
		return nil, fmt.Errorf("projection needs at least 2 points, got %d", len(values))
	}

	r := new(regression.Regression)
	r.SetObserved("close")
	r.SetVar(0, "index")
	for i, v := range values {
		r.Train(regression.DataPoint(v, []float64{float64(i)}))
	}
	if err := r.Run(); err != nil {
		return nil, fmt.Errorf("fit trend line: %w", err)
	}

	out := make([]float64, len(values))
	for i := range values {
		p, err := r.Predict([]float64{float64(i)})
		if err != nil {
			return nil, fmt.Errorf("evaluate trend line at %d: %w", i, err)
		}
		out[i] = p
	}
	return out, nil
}
