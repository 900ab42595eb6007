package recorder

import (
	"github.com/google/uuid"

	"github.com/jentichuang-afk/stock-watchlist/internal/model"
	"github.com/jentichuang-afk/stock-watchlist/internal/narrative"
)

// Scan triggers.
const (
	TriggerCron    = "cron"
	TriggerCommand = "command"
	TriggerCLI     = "cli"
)

// NewRunID returns a fresh scan run id.
func NewRunID() string {
	return uuid.NewString()
}

// Recorder keeps a write-only history of scans for later analysis. Nothing
// in the scan pipeline reads it back.
type Recorder interface {
	RecordScan(runID, trigger string, res *model.ScanResult) error
	RecordNarrative(runID string, results []narrative.Result) error
	Close() error
}
