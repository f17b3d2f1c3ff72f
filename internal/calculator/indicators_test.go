package calculator

import (
	"math"
	"testing"
	"time"

	"IDXScreener/internal/model"
)

func TestEMA_SeededFromFirstObservation(t *testing.T) {
	values := []float64{10, 10, 10, 10}
	ema := EMA(values, 3)
	for i, v := range ema {
		if v != 10 {
			t.Fatalf("constant input: expected 10 at %d, got %.4f", i, v)
		}
	}

	ema = EMA([]float64{10, 20}, 3)
	if ema[0] != 10 {
		t.Errorf("expected seed equal to first observation, got %.4f", ema[0])
	}
	// alpha = 2/(3+1) = 0.5 -> 0.5*20 + 0.5*10
	if ema[1] != 15 {
		t.Errorf("expected 15, got %.4f", ema[1])
	}
}

func TestMASeries(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}
	ma := MASeries(closes, 3)
	if !math.IsNaN(ma[0]) || !math.IsNaN(ma[1]) {
		t.Error("expected NaN while window unfilled")
	}
	want := []float64{2, 3, 4}
	for i, w := range want {
		if ma[i+2] != w {
			t.Errorf("ma[%d]: expected %.1f, got %.4f", i+2, w, ma[i+2])
		}
	}
}

func TestMACDSeries_Alignment(t *testing.T) {
	closes := make([]float64, 50)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	macd, signal := MACDSeries(closes, 12, 26, 9)
	if len(macd) != 50 || len(signal) != 50 {
		t.Fatalf("expected aligned sequences, got %d/%d", len(macd), len(signal))
	}
	// A steady uptrend keeps the fast EMA above the slow EMA.
	if macd[49] <= 0 {
		t.Errorf("expected positive MACD in an uptrend, got %.4f", macd[49])
	}
}

func flatBars(n int, price, volume float64) []model.OHLCV {
	bars := make([]model.OHLCV, n)
	day := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = model.OHLCV{
			Time: day.AddDate(0, 0, i),
			Open: price, High: price, Low: price, Close: price,
			Volume: volume,
		}
	}
	return bars
}

func TestMFISeries_FlatResolvesNeutral(t *testing.T) {
	mfi := MFISeries(flatBars(30, 100, 5000), 14)
	if v := mfi[len(mfi)-1]; v != 50 {
		t.Errorf("flat typical price: expected neutral 50, got %.2f", v)
	}
	for i := 0; i < 14; i++ {
		if !math.IsNaN(mfi[i]) {
			t.Fatalf("expected NaN at %d before window fills", i)
		}
	}
}

func TestMFISeries_AllPositiveFlow(t *testing.T) {
	bars := flatBars(30, 100, 5000)
	for i := range bars {
		p := 100 + float64(i)
		bars[i].Open, bars[i].High, bars[i].Low, bars[i].Close = p, p+1, p-1, p
	}
	mfi := MFISeries(bars, 14)
	if v := mfi[len(mfi)-1]; v != 100 {
		t.Errorf("rising typical price: expected MFI 100, got %.2f", v)
	}
}

func TestADISeries(t *testing.T) {
	bars := []model.OHLCV{
		{High: 10, Low: 10, Close: 10, Volume: 1000}, // high == low contributes 0
		{High: 12, Low: 10, Close: 12, Volume: 1000}, // CLV = 1
		{High: 12, Low: 10, Close: 10, Volume: 500},  // CLV = -1
	}
	adi := ADISeries(bars)
	want := []float64{0, 1000, 500}
	for i, w := range want {
		if adi[i] != w {
			t.Errorf("adi[%d]: expected %.0f, got %.2f", i, w, adi[i])
		}
	}
}

func TestADXSeries_BoundedAfterWarmup(t *testing.T) {
	bars := make([]model.OHLCV, 80)
	day := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		p := 100 + 10*math.Sin(float64(i)/5)
		bars[i] = model.OHLCV{
			Time: day.AddDate(0, 0, i),
			Open: p, High: p + 2, Low: p - 2, Close: p + 1,
			Volume: 1000,
		}
	}
	adx := ADXSeries(bars, 14)
	if len(adx) != len(bars) {
		t.Fatalf("expected aligned output")
	}
	for i := 0; i < 27; i++ {
		if !math.IsNaN(adx[i]) {
			t.Fatalf("expected NaN during warmup at %d, got %v", i, adx[i])
		}
	}
	for i := 28; i < len(adx); i++ {
		if math.IsNaN(adx[i]) || adx[i] < 0 || adx[i] > 100 {
			t.Fatalf("ADX out of range at %d: %v", i, adx[i])
		}
	}
}

func TestADXSeries_FlatRangeResolvesZero(t *testing.T) {
	adx := ADXSeries(flatBars(60, 100, 1000), 14)
	if v := adx[len(adx)-1]; v != 0 {
		t.Errorf("flat series: expected ADX 0, got %v", v)
	}
}

func TestBandWidthSeries(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 200
	}
	width := BandWidthSeries(closes, 20, 2)
	for i := 0; i < 19; i++ {
		if !math.IsNaN(width[i]) {
			t.Fatalf("expected NaN before window fills at %d", i)
		}
	}
	if v := width[len(width)-1]; v != 0 {
		t.Errorf("constant price: expected zero width, got %v", v)
	}

	// Wider dispersion widens the band.
	for i := range closes {
		closes[i] = 200 + 20*float64(i%2)
	}
	width = BandWidthSeries(closes, 20, 2)
	if v := width[len(width)-1]; v <= 0 {
		t.Errorf("dispersed price: expected positive width, got %v", v)
	}
}
