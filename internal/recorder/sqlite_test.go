package recorder

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"IDXScreener/internal/model"
)

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "screener.db"))
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRecordRun(t *testing.T) {
	r := openTestRecorder(t)

	run := &RunRecord{
		Mode:      "all",
		Detectors: []string{"RSI Oversold", "Volume Spike"},
		Report: &model.Report{
			Evaluated: 3,
			Matched:   1,
			Skipped:   1,
			EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
			Elapsed:   1200 * time.Millisecond,
			Records: []model.ResultRecord{{
				Symbol:    "BBCA",
				LastClose: 9800,
				Matched:   []string{"RSI Oversold", "Volume Spike"},
				Indicators: model.IndicatorSnapshot{
					RSI: 25.5, MFI: math.NaN(), MACD: -1.2, Signal: -0.8,
					ADX: 18.0, BandWidth: 0.04, MA: 9500,
				},
			}},
		},
	}
	if err := r.RecordRun(run); err != nil {
		t.Fatalf("record run: %v", err)
	}

	var evaluated, elapsedMs int
	var mode, endDate string
	err := r.db.QueryRow(
		"SELECT mode, end_date, evaluated, elapsed_ms FROM screen_runs",
	).Scan(&mode, &endDate, &evaluated, &elapsedMs)
	if err != nil {
		t.Fatalf("read run row: %v", err)
	}
	if mode != "all" || endDate != "2025-06-30" || evaluated != 3 || elapsedMs != 1200 {
		t.Errorf("run row mismatch: %s %s %d %d", mode, endDate, evaluated, elapsedMs)
	}

	var symbol, matched string
	var rsi float64
	var mfi *float64
	err = r.db.QueryRow(
		"SELECT symbol, matched, rsi, mfi FROM screen_results",
	).Scan(&symbol, &matched, &rsi, &mfi)
	if err != nil {
		t.Fatalf("read result row: %v", err)
	}
	if symbol != "BBCA" || matched != "RSI Oversold, Volume Spike" || rsi != 25.5 {
		t.Errorf("result row mismatch: %s %q %.1f", symbol, matched, rsi)
	}
	if mfi != nil {
		t.Errorf("undefined MFI must persist as NULL, got %v", *mfi)
	}
}

func TestRecordRun_MultipleRuns(t *testing.T) {
	r := openTestRecorder(t)

	for i := 0; i < 3; i++ {
		run := &RunRecord{
			Mode:      "preset",
			Detectors: []string{"RSI Oversold"},
			Report:    &model.Report{EndDate: time.Now()},
		}
		if err := r.RecordRun(run); err != nil {
			t.Fatalf("record run %d: %v", i, err)
		}
	}

	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM screen_runs").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("expected 3 runs, got %d", count)
	}
}
