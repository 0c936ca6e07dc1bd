package calculator

import "errors"

// CalculateMACD computes the MACD line (fast EMA minus slow EMA) and its
// signal line (EMA of the MACD line) evaluated at the latest bar.
// Requires at least slow+signal-1 prices so the signal window can fill.
func CalculateMACD(prices []float64, fast, slow, signal int) (line, sig float64, err error) {
	if fast <= 0 || signal <= 0 || slow <= fast {
		return 0, 0, errors.New("invalid MACD periods")
	}
	if len(prices) < slow+signal-1 {
		return 0, 0, errors.New("not enough data for MACD calculation")
	}

	fastSeries := emaSeries(prices, fast)
	slowSeries := emaSeries(prices, slow)

	// The MACD line is defined where both EMAs are, i.e. from index slow-1.
	offset := slow - fast
	macd := make([]float64, len(slowSeries))
	for i := range slowSeries {
		macd[i] = fastSeries[i+offset] - slowSeries[i]
	}

	sigSeries := emaSeries(macd, signal)
	return macd[len(macd)-1], sigSeries[len(sigSeries)-1], nil
}
