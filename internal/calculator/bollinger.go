package calculator

import "math"

// BandWidthSeries computes the relative Bollinger band width 2*k*std/mid,
// aligned to closes. Positions with an unfilled window, or where the mid band
// is zero, are NaN.
func BandWidthSeries(closes []float64, period int, k float64) []float64 {
	if period <= 0 || len(closes) == 0 {
		return nil
	}
	out := make([]float64, len(closes))
	for i := range out {
		out[i] = math.NaN()
	}
	for i := period - 1; i < len(closes); i++ {
		window := closes[i-period+1 : i+1]
		var sum float64
		for _, v := range window {
			sum += v
		}
		mean := sum / float64(period)
		var variance float64
		for _, v := range window {
			variance += (v - mean) * (v - mean)
		}
		variance /= float64(period)
		if mean == 0 {
			continue
		}
		out[i] = 2 * k * math.Sqrt(variance) / mean
	}
	return out
}
