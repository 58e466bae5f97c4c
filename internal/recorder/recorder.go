package recorder

import "EquityPulse/internal/model"

// Recorder persists built datasets for later analysis.
type Recorder interface {
	// RecordBuild stores a build run and all of its enriched rows.
	RecordBuild(ds *model.Dataset) error
	Close() error
}
