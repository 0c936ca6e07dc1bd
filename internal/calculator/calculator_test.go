package calculator

import (
	"math"
	"testing"
)

func seq(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func TestCalculateSMA(t *testing.T) {
	prices := seq(10, 1, 1) // 1..10
	sma, err := CalculateSMA(prices, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sma != 8.0 {
		t.Errorf("expected SMA 8.0, got %v", sma)
	}

	if _, err := CalculateSMA(prices, 11); err == nil {
		t.Error("expected error for period longer than series")
	}
	if _, err := CalculateSMA(prices, 0); err == nil {
		t.Error("expected error for non-positive period")
	}
}

func TestCalculateEMA(t *testing.T) {
	// Seed = SMA(1,2,3) = 2, k = 0.5, next = 4*0.5 + 2*0.5 = 3.
	ema, err := CalculateEMA([]float64{1, 2, 3, 4}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ema != 3.0 {
		t.Errorf("expected EMA 3.0, got %v", ema)
	}

	if _, err := CalculateEMA([]float64{1, 2}, 3); err == nil {
		t.Error("expected error for insufficient data")
	}
}

func TestCalculateRSI_Extremes(t *testing.T) {
	up := seq(30, 100, 1)
	rsi, err := CalculateRSI(up, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi != 100.0 {
		t.Errorf("expected RSI 100 for monotone gains, got %v", rsi)
	}

	down := seq(30, 100, -1)
	rsi, err = CalculateRSI(down, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi != 0.0 {
		t.Errorf("expected RSI 0 for monotone losses, got %v", rsi)
	}

	if _, err := CalculateRSI(seq(14, 100, 1), 14); err == nil {
		t.Error("expected error with fewer than period+1 prices")
	}
}

func TestCalculateMACD_Trend(t *testing.T) {
	rising := seq(60, 100, 1)
	line, sig, err := CalculateMACD(rising, 12, 26, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line <= 0 {
		t.Errorf("expected positive MACD line on a rising series, got %v", line)
	}
	if line <= sig {
		t.Errorf("expected MACD line above signal on a rising series, got line=%v signal=%v", line, sig)
	}

	if _, _, err := CalculateMACD(seq(33, 100, 1), 12, 26, 9); err == nil {
		t.Error("expected error with fewer than slow+signal-1 prices")
	}
	if _, _, err := CalculateMACD(rising, 26, 12, 9); err == nil {
		t.Error("expected error for slow <= fast")
	}
}

func TestCalculateBollinger(t *testing.T) {
	prices := make([]float64, 20)
	for i := range prices {
		prices[i] = 100
	}
	prices[19] = 120

	upper, lower, err := CalculateBollinger(prices, 20, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// mean = 101, population variance = (19*1 + 361)/20 = 19
	wantStd := math.Sqrt(19)
	if math.Abs(upper-(101+2*wantStd)) > 1e-9 {
		t.Errorf("unexpected upper band %v", upper)
	}
	if math.Abs(lower-(101-2*wantStd)) > 1e-9 {
		t.Errorf("unexpected lower band %v", lower)
	}

	flat := make([]float64, 20)
	for i := range flat {
		flat[i] = 100
	}
	upper, lower, err = CalculateBollinger(flat, 20, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if upper != 100 || lower != 100 {
		t.Errorf("expected collapsed bands on flat series, got upper=%v lower=%v", upper, lower)
	}

	if _, _, err := CalculateBollinger(flat[:19], 20, 2); err == nil {
		t.Error("expected error for insufficient data")
	}
}
