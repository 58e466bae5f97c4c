package recorder

import "EquityPulse/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordBuild(_ *model.Dataset) error { return nil }
func (n *NoopRecorder) Close() error                       { return nil }
