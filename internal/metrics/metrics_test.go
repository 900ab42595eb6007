package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveScan(t *testing.T) {
	before := testutil.ToFloat64(ScanRuns.WithLabelValues("cli"))
	ObserveScan("cli", 1500*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(ScanRuns.WithLabelValues("cli")))
}

func TestSymbolsTotal_ByResult(t *testing.T) {
	before := testutil.ToFloat64(SymbolsTotal.WithLabelValues(ResultInsufficient))
	SymbolsTotal.WithLabelValues(ResultInsufficient).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(SymbolsTotal.WithLabelValues(ResultInsufficient)))
}
