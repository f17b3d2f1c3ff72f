package recorder

import "IDXScreener/internal/model"

// RunRecord holds everything persisted for one screening run.
type RunRecord struct {
	Mode      string
	Detectors []string // selected detector names
	Report    *model.Report
}

// Recorder persists screening history for later analysis.
type Recorder interface {
	RecordRun(run *RunRecord) error
	Close() error
}
