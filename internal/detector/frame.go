package detector

import (
	"math"

	"IDXScreener/internal/calculator"
	"IDXScreener/internal/model"
)

// Fixed indicator parameters. The catalog pins these; only the moving-average
// periods in Params are caller-tunable.
const (
	rsiPeriod  = 14
	macdFast   = 12
	macdSlow   = 26
	macdSignal = 9
	mfiPeriod  = 14
	adxPeriod  = 14
	bollPeriod = 20
	bollStdK   = 2.0

	divergenceLookback = 15 // bars needed for the early/late low comparison
	divergenceEarly    = 10 // early sub-window starts this many bars back
	divergenceSplit    = 5  // boundary between early and late sub-windows

	volumeSpikeWindow = 10
	volumeSpikeMult   = 2.0
	volumePriorMult   = 1.5
	volumeSpikeMABars = 21 // MA20 confirmation plus the spike day

	adiLookback       = 5
	consolidationBars = 3
	maxBandWidth      = 0.05
	maxQuietADX       = 20.0
)

// Params holds the caller-tunable moving-average periods.
type Params struct {
	MAPeriod    int // price-above-MA period
	GoldenShort int
	GoldenLong  int
}

// DefaultParams returns the conventional periods: MA20 price filter and a
// 50/200 golden cross.
func DefaultParams() Params {
	return Params{MAPeriod: 20, GoldenShort: 50, GoldenLong: 200}
}

func (p Params) normalized() Params {
	d := DefaultParams()
	if p.MAPeriod <= 0 {
		p.MAPeriod = d.MAPeriod
	}
	if p.GoldenShort <= 0 {
		p.GoldenShort = d.GoldenShort
	}
	if p.GoldenLong <= p.GoldenShort {
		p.GoldenLong = d.GoldenLong
		if p.GoldenLong <= p.GoldenShort {
			p.GoldenLong = p.GoldenShort * 2
		}
	}
	return p
}

// Frame holds every indicator sequence derived from one prepared series,
// each aligned to the series' bars.
type Frame struct {
	Series *model.Series
	Params Params

	RSI       []float64
	MACD      []float64
	Signal    []float64
	MFI       []float64
	ADI       []float64
	ADX       []float64
	BandWidth []float64
	MA        []float64 // Params.MAPeriod
	MA20      []float64 // volume-spike confirmation
	ShortMA   []float64 // Params.GoldenShort
	LongMA    []float64 // Params.GoldenLong
}

// BuildFrame computes the full indicator frame for one prepared series.
func BuildFrame(s *model.Series, p Params) *Frame {
	p = p.normalized()
	closes := s.Closes()
	macd, signal := calculator.MACDSeries(closes, macdFast, macdSlow, macdSignal)
	return &Frame{
		Series:    s,
		Params:    p,
		RSI:       calculator.RSISeries(closes, rsiPeriod),
		MACD:      macd,
		Signal:    signal,
		MFI:       calculator.MFISeries(s.Bars, mfiPeriod),
		ADI:       calculator.ADISeries(s.Bars),
		ADX:       calculator.ADXSeries(s.Bars, adxPeriod),
		BandWidth: calculator.BandWidthSeries(closes, bollPeriod, bollStdK),
		MA:        calculator.MASeries(closes, p.MAPeriod),
		MA20:      calculator.MASeries(closes, 20),
		ShortMA:   calculator.MASeries(closes, p.GoldenShort),
		LongMA:    calculator.MASeries(closes, p.GoldenLong),
	}
}

// Snapshot extracts the most recent value of each indicator for reporting.
func (f *Frame) Snapshot() model.IndicatorSnapshot {
	return model.IndicatorSnapshot{
		RSI:       lastValue(f.RSI),
		MACD:      lastValue(f.MACD),
		Signal:    lastValue(f.Signal),
		MFI:       lastValue(f.MFI),
		ADI:       lastValue(f.ADI),
		ADX:       lastValue(f.ADX),
		BandWidth: lastValue(f.BandWidth),
		MA:        lastValue(f.MA),
	}
}

func lastValue(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	return vals[len(vals)-1]
}

// at returns the value `back` positions from the end and whether it is a
// defined (present and non-NaN) observation.
func at(vals []float64, back int) (float64, bool) {
	i := len(vals) - 1 - back
	if i < 0 || i >= len(vals) {
		return 0, false
	}
	v := vals[i]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
