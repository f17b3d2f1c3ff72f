package calculator

import "math"

// MASeries computes the simple moving average of closes over the trailing
// period, aligned to the input. Positions with fewer than period observations
// are NaN.
func MASeries(closes []float64, period int) []float64 {
	if period <= 0 || len(closes) == 0 {
		return nil
	}
	out := make([]float64, len(closes))
	var sum float64
	for i := range closes {
		sum += closes[i]
		if i >= period {
			sum -= closes[i-period]
		}
		if i < period-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(period)
	}
	return out
}
