package recorder

import "time"

// RunRecord holds everything persisted about one analysis run.
type RunRecord struct {
	RunID          string
	Symbol         string
	Status         string // OK, FETCH_ERROR, GENERATION_ERROR, PERSIST_ERROR
	Score          float64
	Recommendation string
	// Weighted vote per family, in the fixed voting order.
	VoteSMA  float64
	VoteRSI  float64
	VoteMACD float64
	VoteBB   float64
	VoteEMA  float64

	ReportPath string
	Duration   time.Duration
	ErrorMsg   string
}

// Recorder persists run history for later inspection.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	Close() error
}
