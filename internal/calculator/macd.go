package calculator

// MACDSeries computes the MACD line (fast EMA minus slow EMA) and its signal
// line (EMA of the MACD line), both aligned to closes. Because EMAs are seeded
// from the first observation, both sequences are defined from index 0; the
// early values are simply not yet settled.
func MACDSeries(closes []float64, fast, slow, signal int) (macd, signalLine []float64) {
	if fast <= 0 || slow <= 0 || signal <= 0 || len(closes) == 0 {
		return nil, nil
	}
	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)
	macd = make([]float64, len(closes))
	for i := range closes {
		macd[i] = emaFast[i] - emaSlow[i]
	}
	signalLine = EMA(macd, signal)
	return macd, signalLine
}
