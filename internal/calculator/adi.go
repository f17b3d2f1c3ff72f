package calculator

import "IDXScreener/internal/model"

// ADISeries computes the Accumulation/Distribution Index: the cumulative sum
// of close-location value times volume over the whole series. Bars where
// high equals low contribute zero.
func ADISeries(bars []model.OHLCV) []float64 {
	out := make([]float64, len(bars))
	var cum float64
	for i, b := range bars {
		clv := 0.0
		if b.High != b.Low {
			clv = ((b.Close - b.Low) - (b.High - b.Close)) / (b.High - b.Low)
		}
		cum += clv * b.Volume
		out[i] = cum
	}
	return out
}
