package collector

import (
	"time"

	"IDXScreener/internal/model"
)

// Fetcher retrieves daily price history for one symbol. Implementations
// return at least `days` bars ending at `end` when the venue has them, in
// chronological order, or an error when the symbol is unavailable.
type Fetcher interface {
	FetchDailyBars(symbol string, end time.Time, days int) ([]model.OHLCV, error)
	Name() string
}
