package model

import (
	"errors"
	"time"
)

// ErrNoData is returned when a scan produced no rows at all.
var ErrNoData = errors.New("no data found")

// Row is the per-symbol output of a scan.
type Row struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Symbol      string  `json:"symbol"`
	Price       float64 `json:"price"`
	PrevClose   float64 `json:"prev_close"`
	ChangePct   float64 `json:"change_pct"`
	Volume      float64 `json:"volume"`
	VolumeRatio float64 `json:"volume_ratio"`

	RSI       Value `json:"rsi"`
	MACD      Value `json:"macd"`
	Histogram Value `json:"macd_hist"`
	K         Value `json:"k"`
	D         Value `json:"d"`
	OBV       Value `json:"obv"`
	MA5       Value `json:"ma5"`
	MA20      Value `json:"ma20"`
	MA60      Value `json:"ma60"`
	BollUpper Value `json:"boll_upper"`
	BollLower Value `json:"boll_lower"`

	Trend     Trend     `json:"trend"`
	Signal    Signal    `json:"signal"`
	Composite Composite `json:"composite"`
	Cross     Cross     `json:"cross,omitempty"`
	Direction Direction `json:"macd_direction"`
}

// Skip records why a code produced no row.
type Skip struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// ScanResult is the ordered output of one batch run.
type ScanResult struct {
	Rows       []Row     `json:"rows"`
	Skipped    []Skip    `json:"skipped,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}
