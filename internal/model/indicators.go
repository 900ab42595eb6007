package model

// Indicators holds all computed technical indicators for one bar, aligned by
// position with the source bar series.
type Indicators struct {
	RSI       Value
	MACD      Value
	Signal    Value // MACD signal line
	Histogram Value
	RSV       Value
	K         Value
	D         Value
	OBV       Value
	MA5       Value
	MA20      Value
	MA60      Value
	BollUpper Value
	BollLower Value
	VolumeMA5 Value
}
