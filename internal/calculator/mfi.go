package calculator

import (
	"math"

	"IDXScreener/internal/model"
)

// MFISeries computes the Money Flow Index over the given period, aligned to
// bars. Positions before the window fills are NaN. A window with zero total
// money flow (flat typical price throughout) resolves to a neutral 50.
func MFISeries(bars []model.OHLCV, period int) []float64 {
	if period <= 0 || len(bars) == 0 {
		return nil
	}
	n := len(bars)
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	if n < period+1 {
		return out
	}

	typical := make([]float64, n)
	for i, b := range bars {
		typical[i] = (b.High + b.Low + b.Close) / 3.0
	}

	// Flow direction compares consecutive typical prices, so flows start at
	// index 1 and the first defined MFI needs period flows.
	posFlow := make([]float64, n)
	negFlow := make([]float64, n)
	for i := 1; i < n; i++ {
		raw := typical[i] * bars[i].Volume
		switch {
		case typical[i] > typical[i-1]:
			posFlow[i] = raw
		case typical[i] < typical[i-1]:
			negFlow[i] = raw
		}
	}

	var posSum, negSum float64
	for i := 1; i < n; i++ {
		posSum += posFlow[i]
		negSum += negFlow[i]
		if i > period {
			posSum -= posFlow[i-period]
			negSum -= negFlow[i-period]
		}
		if i < period {
			continue
		}
		total := posSum + negSum
		if total == 0 {
			out[i] = 50.0
			continue
		}
		out[i] = 100.0 * posSum / total
	}
	return out
}
