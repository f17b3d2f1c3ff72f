package screener

import (
	"context"
	"errors"
	"testing"
	"time"

	"IDXScreener/internal/collector"
	"IDXScreener/internal/detector"
	"IDXScreener/internal/model"
)

func testDriver(data map[string][]model.OHLCV) *Driver {
	d := NewDriver(&collector.MockFetcher{Data: data})
	d.Workers = 2
	return d
}

func risingConfig() *Config {
	// PriceAboveMA fires on the mock's upward drift, RSIOversold never does.
	return &Config{Detectors: []detector.ID{detector.PriceAboveMA}}
}

func TestDriverRun_ReportShape(t *testing.T) {
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	data := map[string][]model.OHLCV{
		"AAAA": collector.GenerateBars(1000, 60, end),
		"BBBB": collector.GenerateBars(2500, 60, end),
		"CCCC": collector.GenerateBars(500, 5, end), // too short, skipped
	}
	d := testDriver(data)

	report, err := d.Run(context.Background(), []string{"AAAA", "BBBB", "CCCC", "DDDD"}, risingConfig(), end, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Evaluated != 2 {
		t.Errorf("evaluated = %d, want 2", report.Evaluated)
	}
	if report.Skipped != 2 {
		t.Errorf("skipped = %d, want 2 (short history + unknown symbol)", report.Skipped)
	}
	if report.Matched != len(report.Records) {
		t.Errorf("matched %d disagrees with %d records", report.Matched, len(report.Records))
	}
	if len(report.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(report.Records))
	}
	if report.Records[0].Symbol != "AAAA" || report.Records[1].Symbol != "BBBB" {
		t.Errorf("records must follow input order, got %s, %s",
			report.Records[0].Symbol, report.Records[1].Symbol)
	}
	for _, rec := range report.Records {
		if len(rec.Matched) != 1 || rec.Matched[0] != detector.PriceAboveMA.Name() {
			t.Errorf("%s: unexpected matched set %v", rec.Symbol, rec.Matched)
		}
		if rec.LastClose <= 0 {
			t.Errorf("%s: missing last close", rec.Symbol)
		}
	}
	if !report.EndDate.Equal(end) {
		t.Errorf("report end date = %v, want %v", report.EndDate, end)
	}
}

func TestDriverRun_Deterministic(t *testing.T) {
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	data := make(map[string][]model.OHLCV)
	symbols := []string{"AAAA", "BBBB", "CCCC", "DDDD", "EEEE", "FFFF"}
	for i, sym := range symbols {
		data[sym] = collector.GenerateBars(float64(500+100*i), 60, end)
	}
	d := testDriver(data)
	d.Workers = 3

	first, err := d.Run(context.Background(), symbols, risingConfig(), end, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := d.Run(context.Background(), symbols, risingConfig(), end, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first.Records) != len(second.Records) {
		t.Fatalf("record counts differ: %d vs %d", len(first.Records), len(second.Records))
	}
	for i := range first.Records {
		a, b := first.Records[i], second.Records[i]
		if a.Symbol != b.Symbol || a.LastClose != b.LastClose {
			t.Errorf("record %d differs: %s/%.2f vs %s/%.2f",
				i, a.Symbol, a.LastClose, b.Symbol, b.LastClose)
		}
	}
}

func TestDriverRun_ConfigErrorAborts(t *testing.T) {
	fetched := false
	d := NewDriver(&countingFetcher{hit: &fetched})

	_, err := d.Run(context.Background(), []string{"AAAA"}, &Config{}, time.Now(), nil)
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConfigError, got %v", err)
	}
	if fetched {
		t.Error("no symbol may be fetched for an invalid config")
	}
}

type countingFetcher struct{ hit *bool }

func (c *countingFetcher) Name() string { return "counting" }

func (c *countingFetcher) FetchDailyBars(string, time.Time, int) ([]model.OHLCV, error) {
	*c.hit = true
	return nil, errors.New("unavailable")
}

// windowFetcher returns exactly as many bars as requested, like the live
// fetcher after trimming, and records the requested window.
type windowFetcher struct {
	days int
}

func (w *windowFetcher) Name() string { return "window" }

func (w *windowFetcher) FetchDailyBars(_ string, end time.Time, days int) ([]model.OHLCV, error) {
	w.days = days
	return collector.GenerateBars(1000, days, end), nil
}

func TestDriverRun_FetchesFullHorizon(t *testing.T) {
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	w := &windowFetcher{}
	d := NewDriver(w)

	// The detector minimum (20 bars) is below the horizon: the fetch must
	// still request the whole analysis window.
	if _, err := d.Run(context.Background(), []string{"AAAA"}, risingConfig(), end, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.days != DefaultHorizon {
		t.Errorf("requested %d bars, want the %d-bar horizon", w.days, DefaultHorizon)
	}

	// A lookback beyond the horizon raises the window instead.
	long := &Config{
		Detectors: []detector.ID{detector.GoldenCross},
		Params:    detector.Params{GoldenShort: 50, GoldenLong: 200},
	}
	if _, err := d.Run(context.Background(), []string{"AAAA"}, long, end, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.days != 201 {
		t.Errorf("requested %d bars, want 201 for the 200-bar lookback", w.days)
	}
}

func TestDriverRun_Cancellation(t *testing.T) {
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	d := testDriver(map[string][]model.OHLCV{
		"AAAA": collector.GenerateBars(1000, 60, end),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := d.Run(ctx, []string{"AAAA"}, risingConfig(), end, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if report == nil {
		t.Fatal("cancellation must still return the partial report")
	}
}

func TestDriverRun_Progress(t *testing.T) {
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	data := map[string][]model.OHLCV{
		"AAAA": collector.GenerateBars(1000, 60, end),
		"BBBB": collector.GenerateBars(2000, 60, end),
	}
	d := testDriver(data)
	d.Workers = 1

	var calls int
	_, err := d.Run(context.Background(), []string{"AAAA", "BBBB"}, risingConfig(), end,
		func(done, total int, symbol string) {
			calls++
			if total != 2 || done < 1 || done > 2 {
				t.Errorf("progress(%d, %d, %s) out of range", done, total, symbol)
			}
		})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("progress called %d times, want 2", calls)
	}
}

func TestDedupe(t *testing.T) {
	got := Dedupe([]string{"BBCA", "", "TLKM", "BBCA", "ASII", "TLKM"})
	want := []string{"BBCA", "TLKM", "ASII"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}
