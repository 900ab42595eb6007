package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jentichuang-afk/stock-watchlist/internal/model"
	"github.com/jentichuang-afk/stock-watchlist/internal/narrative"
)

func TestSQLiteRecorder_RecordScan(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "db", "radar.db"))
	require.NoError(t, err)
	defer r.Close()

	now := time.Now()
	res := &model.ScanResult{
		Rows: []model.Row{
			{Code: "2330", Name: "台積電", Price: 1000, RSI: model.Some(61.5), K: model.Some(55), D: model.Some(50),
				Signal: model.SignalWatch, Cross: model.CrossGolden},
			{Code: "2317", Name: "鴻海", Price: 200},
		},
		Skipped:    []model.Skip{{Code: "9999", Reason: "no bars returned"}},
		StartedAt:  now.Add(-time.Second),
		FinishedAt: now,
	}
	runID := NewRunID()
	require.NoError(t, r.RecordScan(runID, TriggerCLI, res))

	var rows, skips int
	require.NoError(t, r.db.QueryRow(`SELECT row_count, skip_count FROM scan_runs WHERE id = ?`, runID).Scan(&rows, &skips))
	assert.Equal(t, 2, rows)
	assert.Equal(t, 1, skips)

	var rsi *float64
	var cross string
	require.NoError(t, r.db.QueryRow(`SELECT rsi, cross_label FROM scan_rows WHERE run_id = ? AND code = '2330'`, runID).Scan(&rsi, &cross))
	require.NotNil(t, rsi)
	assert.Equal(t, 61.5, *rsi)
	assert.Equal(t, string(model.CrossGolden), cross)

	require.NoError(t, r.db.QueryRow(`SELECT rsi FROM scan_rows WHERE run_id = ? AND code = '2317'`, runID).Scan(&rsi))
	assert.Nil(t, rsi, "undefined values are stored as NULL")

	// duplicate run ids are rejected and leave nothing behind
	assert.Error(t, r.RecordScan(runID, TriggerCLI, res))
	var total int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM scan_rows`).Scan(&total))
	assert.Equal(t, 2, total)
}

func TestSQLiteRecorder_RecordNarrative(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "radar.db"))
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.RecordNarrative("run-1", []narrative.Result{
		{Model: "a", Commentary: narrative.Commentary{Summary: "偏多"}},
		{Model: "b", Err: "AI 分析失敗: timeout"},
	}))

	var n int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM narratives WHERE run_id = 'run-1'`).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordScan("x", TriggerCron, &model.ScanResult{}))
	assert.NoError(t, r.RecordNarrative("x", nil))
	assert.NoError(t, r.Close())
}
