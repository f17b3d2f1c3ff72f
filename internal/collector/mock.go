package collector

import (
	"fmt"
	"time"

	"IDXScreener/internal/model"
)

// MockFetcher serves fixed per-symbol data for development and testing.
// Symbols without an entry report an error, like a real venue would.
type MockFetcher struct {
	Data map[string][]model.OHLCV
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(symbol string, _ time.Time, _ int) ([]model.OHLCV, error) {
	bars, ok := m.Data[symbol]
	if !ok {
		return nil, fmt.Errorf("mock: no data for %s", symbol)
	}
	return bars, nil
}

// GenerateBars builds a deterministic synthetic daily series drifting from
// basePrice, useful as mock data.
func GenerateBars(basePrice float64, count int, end time.Time) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   end.AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
