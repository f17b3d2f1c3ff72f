package model

// IndicatorSnapshot holds the most recent value of each computed indicator
// for one symbol. Values may be NaN when the rolling window never filled.
type IndicatorSnapshot struct {
	RSI       float64
	MACD      float64
	Signal    float64
	MFI       float64
	ADI       float64
	ADX       float64
	BandWidth float64
	MA        float64 // moving average at the configured price-above period
}
