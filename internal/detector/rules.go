package detector

// Evaluate runs one detector against a computed frame. Insufficient history
// and undefined indicator values always yield false, never an error.
func Evaluate(id ID, f *Frame) bool {
	switch id {
	case RSIOversold:
		return rsiOversold(f)
	case RSIExitOversold:
		return rsiExitOversold(f)
	case RSIBullishDivergence:
		return rsiBullishDivergence(f)
	case MACDBullishCross:
		return macdBullishCross(f)
	case MACDStrongBullish:
		return macdStrongBullish(f)
	case VolumeSpike:
		return volumeSpike(f)
	case GoldenCross:
		return goldenCross(f)
	case Accumulation:
		return accumulation(f)
	case Distribution:
		return distribution(f)
	case Consolidation:
		return consolidation(f)
	case MFIExtreme:
		return mfiExtreme(f)
	case PriceAboveMA:
		return priceAboveMA(f)
	default:
		return false
	}
}

// EvaluateAll runs the requested detectors; unrequested IDs are absent from
// the result, which reads as false.
func EvaluateAll(f *Frame, ids []ID) Result {
	res := make(Result, len(ids))
	for _, id := range ids {
		res[id] = Evaluate(id, f)
	}
	return res
}

func rsiOversold(f *Frame) bool {
	rsi, ok := at(f.RSI, 0)
	return ok && rsi < 30
}

func rsiExitOversold(f *Frame) bool {
	prev, ok1 := at(f.RSI, 1)
	cur, ok2 := at(f.RSI, 0)
	return ok1 && ok2 && prev < 30 && cur > 30
}

// rsiBullishDivergence looks for a lower low in price between an early and a
// late sub-window while RSI makes a higher low.
func rsiBullishDivergence(f *Frame) bool {
	n := f.Series.Len()
	if n < divergenceLookback {
		return false
	}
	closes := f.Series.Closes()
	early := argminClose(closes, n-divergenceEarly, n-divergenceSplit)
	late := argminClose(closes, n-divergenceSplit, n)
	if early >= late {
		return false
	}
	rsiEarly, ok1 := at(f.RSI, n-1-early)
	rsiLate, ok2 := at(f.RSI, n-1-late)
	if !ok1 || !ok2 {
		return false
	}
	return closes[late] < closes[early] && rsiLate > rsiEarly
}

func argminClose(closes []float64, from, to int) int {
	if from < 0 {
		from = 0
	}
	min := from
	for i := from + 1; i < to; i++ {
		if closes[i] < closes[min] {
			min = i
		}
	}
	return min
}

func macdBullishCross(f *Frame) bool {
	macdPrev, ok1 := at(f.MACD, 1)
	sigPrev, ok2 := at(f.Signal, 1)
	macdCur, ok3 := at(f.MACD, 0)
	sigCur, ok4 := at(f.Signal, 0)
	if !(ok1 && ok2 && ok3 && ok4) {
		return false
	}
	if f.Series.Len() < macdSlow+macdSignal {
		return false // EMAs not settled yet
	}
	return macdPrev < sigPrev && macdCur > sigCur
}

func macdStrongBullish(f *Frame) bool {
	if !macdBullishCross(f) {
		return false
	}
	macdCur, _ := at(f.MACD, 0)
	return macdCur > 0
}

// volumeSpike is the confirmed two-day variant: the last volume clears
// 2x the trailing 10-day average, the previous day already cleared 1.5x,
// and the close sits above MA20.
func volumeSpike(f *Frame) bool {
	n := f.Series.Len()
	if n < volumeSpikeMABars {
		return false
	}
	volumes := f.Series.Volumes()
	// Average over the window preceding the spike day.
	var sum float64
	for i := n - 1 - volumeSpikeWindow; i < n-1; i++ {
		sum += volumes[i]
	}
	avg := sum / float64(volumeSpikeWindow)
	if avg <= 0 {
		return false
	}
	if volumes[n-1] <= volumeSpikeMult*avg || volumes[n-2] <= volumePriorMult*avg {
		return false
	}
	ma20, ok := at(f.MA20, 0)
	return ok && f.Series.LastClose() > ma20
}

// goldenCross fires only when the short MA crossed the long MA between the
// last two bars, not when it is merely above.
func goldenCross(f *Frame) bool {
	shortPrev, ok1 := at(f.ShortMA, 1)
	longPrev, ok2 := at(f.LongMA, 1)
	shortCur, ok3 := at(f.ShortMA, 0)
	longCur, ok4 := at(f.LongMA, 0)
	if !(ok1 && ok2 && ok3 && ok4) {
		return false
	}
	return shortPrev < longPrev && shortCur > longCur
}

func accumulation(f *Frame) bool {
	cur, ok1 := at(f.ADI, 0)
	back, ok2 := at(f.ADI, adiLookback)
	return ok1 && ok2 && cur > back
}

func distribution(f *Frame) bool {
	cur, ok1 := at(f.ADI, 0)
	back, ok2 := at(f.ADI, adiLookback)
	return ok1 && ok2 && cur < back
}

// consolidation requires both a narrow Bollinger band and a weak ADX over the
// last few bars.
func consolidation(f *Frame) bool {
	for back := 0; back < consolidationBars; back++ {
		width, ok1 := at(f.BandWidth, back)
		adx, ok2 := at(f.ADX, back)
		if !ok1 || !ok2 {
			return false
		}
		if width >= maxBandWidth || adx >= maxQuietADX {
			return false
		}
	}
	return true
}

func mfiExtreme(f *Frame) bool {
	mfi, ok := at(f.MFI, 0)
	return ok && (mfi < 20 || mfi > 80)
}

func priceAboveMA(f *Frame) bool {
	ma, ok := at(f.MA, 0)
	return ok && f.Series.LastClose() > ma
}
