package recorder

import (
	"github.com/jentichuang-afk/stock-watchlist/internal/model"
	"github.com/jentichuang-afk/stock-watchlist/internal/narrative"
)

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordScan(string, string, *model.ScanResult) error { return nil }
func (n *NoopRecorder) RecordNarrative(string, []narrative.Result) error   { return nil }
func (n *NoopRecorder) Close() error                                       { return nil }
