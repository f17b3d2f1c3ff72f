package model

import "time"

// OHLCV represents a single daily candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Series holds the prepared, chronologically ordered daily bars for one symbol.
type Series struct {
	Symbol string
	Bars   []OHLCV
}

// Len returns the number of bars in the series.
func (s *Series) Len() int { return len(s.Bars) }

// LastClose returns the most recent closing price, or 0 for an empty series.
func (s *Series) LastClose() float64 {
	if len(s.Bars) == 0 {
		return 0
	}
	return s.Bars[len(s.Bars)-1].Close
}

// Closes extracts the closing prices in chronological order.
func (s *Series) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Volumes extracts the daily volumes in chronological order.
func (s *Series) Volumes() []float64 {
	volumes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		volumes[i] = b.Volume
	}
	return volumes
}
