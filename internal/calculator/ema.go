package calculator

// EMA computes the exponential moving average of values with a span-derived
// smoothing factor alpha = 2/(span+1), seeded from the first observation.
// The result is aligned to the input and defined from index 0.
func EMA(values []float64, span int) []float64 {
	if span <= 0 || len(values) == 0 {
		return nil
	}
	alpha := 2.0 / float64(span+1)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}
