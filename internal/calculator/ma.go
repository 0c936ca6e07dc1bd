package calculator

import "errors"

// CalculateSMA computes the simple moving average of the given prices over the
// specified period, evaluated at the latest bar.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// CalculateEMA computes the exponential moving average over the specified
// period, evaluated at the latest bar. The series is seeded with the SMA of
// the first period values; earlier history exists only to settle the average.
func CalculateEMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for EMA calculation")
	}
	s := emaSeries(prices, period)
	return s[len(s)-1], nil
}

// emaSeries returns the EMA values for indices period-1 .. len(prices)-1.
// Callers must guarantee len(prices) >= period.
func emaSeries(prices []float64, period int) []float64 {
	k := 2.0 / (float64(period) + 1.0)
	out := make([]float64, 0, len(prices)-period+1)

	seed := 0.0
	for _, p := range prices[:period] {
		seed += p
	}
	seed /= float64(period)
	out = append(out, seed)

	ema := seed
	for _, p := range prices[period:] {
		ema = p*k + ema*(1.0-k)
		out = append(out, ema)
	}
	return out
}
