package screener

import (
	"context"
	"log"
	"sync"
	"time"

	"IDXScreener/internal/collector"
	"IDXScreener/internal/detector"
	"IDXScreener/internal/model"
)

const defaultWorkers = 4

// Progress is invoked after each symbol completes (matched, skipped or not).
type Progress func(done, total int, symbol string)

// Driver runs the screening pipeline: per symbol it fetches history, prepares
// the series, evaluates the detector catalog and applies the selector.
// Symbols are independent; fetches run on a small worker pool but the report
// always follows input order, so runs are reproducible.
type Driver struct {
	Fetcher collector.Fetcher
	Workers int
	Horizon int // trailing analysis window, 0 means DefaultHorizon
}

// NewDriver creates a Driver with default pool size and horizon.
func NewDriver(fetcher collector.Fetcher) *Driver {
	return &Driver{Fetcher: fetcher, Workers: defaultWorkers, Horizon: DefaultHorizon}
}

// outcome carries one symbol's result back to the aggregator. rec is nil for
// evaluated-but-unmatched symbols; skipped marks unavailable or short data.
type outcome struct {
	idx     int
	symbol  string
	rec     *model.ResultRecord
	skipped bool
}

// Run screens the symbols against the configuration as of the end date.
// Configuration problems abort before any symbol is touched; per-symbol data
// problems are counted as skips. Cancelling the context stops scheduling new
// symbols and returns the partial report collected so far.
func (d *Driver) Run(ctx context.Context, symbols []string, cfg *Config, end time.Time, progress Progress) (*model.Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	symbols = Dedupe(symbols)
	total := len(symbols)
	minBars := cfg.MinBarsRequired()
	horizon := d.Horizon
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	if horizon < minBars {
		horizon = minBars
	}

	workers := d.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	if workers > total && total > 0 {
		workers = total
	}

	startedAt := time.Now()
	log.Printf("[INFO] screening %d symbols, min %d bars, %d workers", total, minBars, workers)

	jobs := make(chan int)
	results := make(chan outcome)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results <- d.screenOne(idx, symbols[idx], cfg, end, minBars, horizon)
			}
		}()
	}
	go func() {
		defer close(jobs)
		for i := range symbols {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	// Aggregate into an input-indexed slice so the final order never depends
	// on fetch completion order.
	recs := make([]*model.ResultRecord, total)
	done, skipped, evaluated := 0, 0, 0
	for out := range results {
		done++
		if out.skipped {
			skipped++
		} else {
			evaluated++
			recs[out.idx] = out.rec
		}
		if progress != nil {
			progress(done, total, out.symbol)
		}
	}

	report := &model.Report{
		Evaluated: evaluated,
		Skipped:   skipped,
		EndDate:   end,
		StartedAt: startedAt,
		Elapsed:   time.Since(startedAt),
	}
	for _, rec := range recs {
		if rec != nil {
			report.Records = append(report.Records, *rec)
		}
	}
	report.Matched = len(report.Records)

	log.Printf("[INFO] screening done: %d evaluated, %d matched, %d skipped in %s",
		report.Evaluated, report.Matched, report.Skipped, report.Elapsed.Round(time.Millisecond))
	return report, ctx.Err()
}

func (d *Driver) screenOne(idx int, symbol string, cfg *Config, end time.Time, minBars, horizon int) outcome {
	// Fetch the full horizon, not just the detector minimum, so the prepared
	// window really is the configured trailing horizon.
	bars, err := d.Fetcher.FetchDailyBars(symbol, end, horizon)
	if err != nil {
		log.Printf("[WARN] %s: fetch failed: %v", symbol, err)
		return outcome{idx: idx, symbol: symbol, skipped: true}
	}
	series, err := PrepareSeries(symbol, bars, minBars, horizon)
	if err != nil {
		log.Printf("[WARN] %s: %v", symbol, err)
		return outcome{idx: idx, symbol: symbol, skipped: true}
	}

	frame := detector.BuildFrame(series, cfg.Params)
	res := detector.EvaluateAll(frame, cfg.Selected())
	include, matched := cfg.Select(res)
	if !include {
		return outcome{idx: idx, symbol: symbol}
	}

	names := make([]string, len(matched))
	for i, id := range matched {
		names[i] = id.Name()
	}
	return outcome{
		idx:    idx,
		symbol: symbol,
		rec: &model.ResultRecord{
			Symbol:     symbol,
			LastClose:  series.LastClose(),
			Matched:    names,
			Indicators: frame.Snapshot(),
		},
	}
}

// Dedupe drops empty and repeated symbols, keeping first-occurrence order.
func Dedupe(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
