package screener

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"IDXScreener/internal/model"
)

// ErrInsufficientHistory marks a symbol whose fetched history is too short to
// evaluate. The driver skips such symbols; it never aborts the run for them.
var ErrInsufficientHistory = errors.New("insufficient history")

// DefaultHorizon is the trailing analysis window kept after preparation when
// the enabled detectors do not demand more.
const DefaultHorizon = 50

// PrepareSeries normalizes a raw bar table into a Series: chronological
// order, duplicate trading days collapsed (last wins), length checked against
// minBars, then truncated to the trailing horizon. The horizon is raised to
// minBars if needed, so truncation can never starve a long-lookback detector.
func PrepareSeries(symbol string, bars []model.OHLCV, minBars, horizon int) (*model.Series, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: no bars: %w", symbol, ErrInsufficientHistory)
	}

	sorted := make([]model.OHLCV, len(bars))
	copy(sorted, bars)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	deduped := sorted[:0]
	for _, b := range sorted {
		if len(deduped) > 0 && sameDay(deduped[len(deduped)-1].Time, b.Time) {
			deduped[len(deduped)-1] = b
			continue
		}
		deduped = append(deduped, b)
	}

	if len(deduped) < minBars {
		return nil, fmt.Errorf("%s: %d bars, need %d: %w",
			symbol, len(deduped), minBars, ErrInsufficientHistory)
	}

	if horizon < minBars {
		horizon = minBars
	}
	if horizon > 0 && len(deduped) > horizon {
		deduped = deduped[len(deduped)-horizon:]
	}

	return &model.Series{Symbol: symbol, Bars: deduped}, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
