package calculator

import (
	"math"

	"IDXScreener/internal/model"
)

// ADXSeries computes the Average Directional Index over the given period,
// aligned to bars. Directional movement and true range start at the second
// bar, the directional indexes need a full window on top of that, and ADX
// needs another window of DX values, so roughly the first 2*period positions
// are NaN. Zero denominators (flat range, no directional movement) resolve to
// 0, never NaN.
func ADXSeries(bars []model.OHLCV, period int) []float64 {
	n := len(bars)
	if period <= 0 || n == 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	if n < 2 {
		return out
	}

	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	tr := make([]float64, n)
	for i := 1; i < n; i++ {
		upMove := bars[i].High - bars[i-1].High
		downMove := bars[i-1].Low - bars[i].Low
		if upMove > 0 {
			plusDM[i] = upMove
		}
		if downMove > 0 {
			minusDM[i] = downMove
		}
		tr[i] = math.Max(bars[i].High-bars[i].Low,
			math.Max(math.Abs(bars[i].High-bars[i-1].Close),
				math.Abs(bars[i].Low-bars[i-1].Close)))
	}

	dx := make([]float64, n)
	for i := range dx {
		dx[i] = math.NaN()
	}
	var pdmSum, mdmSum, trSum float64
	for i := 1; i < n; i++ {
		pdmSum += plusDM[i]
		mdmSum += minusDM[i]
		trSum += tr[i]
		if i > period {
			pdmSum -= plusDM[i-period]
			mdmSum -= minusDM[i-period]
			trSum -= tr[i-period]
		}
		if i < period {
			continue
		}
		var plusDI, minusDI float64
		if trSum > 0 {
			plusDI = 100.0 * pdmSum / trSum
			minusDI = 100.0 * mdmSum / trSum
		}
		if plusDI+minusDI == 0 {
			dx[i] = 0
			continue
		}
		dx[i] = 100.0 * math.Abs(plusDI-minusDI) / (plusDI + minusDI)
	}

	// ADX is the rolling mean of DX once a full window of DX values exists.
	var dxSum float64
	for i := period; i < n; i++ {
		dxSum += dx[i]
		if i > 2*period-1 {
			dxSum -= dx[i-period]
		}
		if i < 2*period-1 {
			continue
		}
		out[i] = dxSum / float64(period)
	}
	return out
}
