package calculator

import (
	"errors"
	"math"
)

// CalculateBollinger computes the Bollinger band edges at the latest bar:
// the period SMA plus/minus mult population standard deviations.
func CalculateBollinger(prices []float64, period int, mult float64) (upper, lower float64, err error) {
	if period <= 0 {
		return 0, 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, 0, errors.New("not enough data for Bollinger calculation")
	}

	window := prices[len(prices)-period:]
	mean := 0.0
	for _, p := range window {
		mean += p
	}
	mean /= float64(period)

	variance := 0.0
	for _, p := range window {
		d := p - mean
		variance += d * d
	}
	variance /= float64(period)
	std := math.Sqrt(variance)

	return mean + mult*std, mean - mult*std, nil
}
