package model

import "time"

// ResultRecord is produced for every symbol the selector includes.
type ResultRecord struct {
	Symbol     string
	LastClose  float64
	Matched    []string // detector names that fired, catalog order
	Indicators IndicatorSnapshot
}

// Report aggregates one screening run.
type Report struct {
	Records   []ResultRecord
	Evaluated int // symbols with sufficient data that went through detection
	Matched   int
	Skipped   int // symbols dropped for unavailable or insufficient history
	EndDate   time.Time
	StartedAt time.Time
	Elapsed   time.Duration
}
