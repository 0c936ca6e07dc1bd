package model

// TechIndicators holds the latest value of each indicator family used for voting.
// A validity flag set to false means the rolling window could not be filled
// from the available history; that family then votes neutral.
type TechIndicators struct {
	Close float64

	SMA50      float64
	SMA100     float64
	RSI        float64
	MACDLine   float64
	MACDSignal float64
	BBUpper    float64
	BBLower    float64
	EMA20      float64
	EMA50      float64

	SMAValid  bool
	RSIValid  bool
	MACDValid bool
	BBValid   bool
	EMAValid  bool

	// 52-week context embedded into the report prompt.
	High52w     float64
	Low52w      float64
	Position52w float64 // 0.0 ~ 1.0
}
