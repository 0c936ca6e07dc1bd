package strategy

import (
	"reflect"
	"testing"

	"StockSage/internal/model"
)

// allBull builds an indicator set where every family votes +1.
func allBull() *model.TechIndicators {
	return &model.TechIndicators{
		Close:  90,
		SMA50:  110, SMA100: 100, SMAValid: true,
		RSI: 25, RSIValid: true,
		MACDLine: 2, MACDSignal: 1, MACDValid: true,
		BBUpper: 120, BBLower: 95, BBValid: true,
		EMA20: 108, EMA50: 100, EMAValid: true,
	}
}

// allBear builds an indicator set where every family votes -1.
func allBear() *model.TechIndicators {
	return &model.TechIndicators{
		Close:  130,
		SMA50:  90, SMA100: 100, SMAValid: true,
		RSI: 75, RSIValid: true,
		MACDLine: -2, MACDSignal: -1, MACDValid: true,
		BBUpper: 120, BBLower: 95, BBValid: true,
		EMA20: 92, EMA50: 100, EMAValid: true,
	}
}

func TestEvaluate_CanonicalVectors(t *testing.T) {
	tests := []struct {
		name  string
		ind   *model.TechIndicators
		score float64
		want  model.Recommendation
	}{
		{"all bullish", allBull(), 1.0, model.Buy},
		{"all bearish", allBear(), -1.0, model.Sell},
		{"all neutral", &model.TechIndicators{}, 0.0, model.Hold},
	}
	for _, tt := range tests {
		sig := Evaluate(tt.ind)
		if sig.Score != tt.score {
			t.Errorf("%s: expected score %v, got %v", tt.name, tt.score, sig.Score)
		}
		if sig.Recommendation != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.want, sig.Recommendation)
		}
		if len(sig.Votes) != 5 {
			t.Fatalf("%s: expected 5 votes, got %d", tt.name, len(sig.Votes))
		}
	}
}

func TestEvaluate_WeightedSum(t *testing.T) {
	wantWeights := []float64{0.3, 0.2, 0.2, 0.2, 0.1}
	sig := Evaluate(allBull())

	sum := 0.0
	for i, v := range sig.Votes {
		if v.Weight != wantWeights[i] {
			t.Errorf("vote %d (%s): expected weight %v, got %v", i, v.Name, wantWeights[i], v.Weight)
		}
		if v.Weighted != float64(v.Value)*v.Weight {
			t.Errorf("vote %d (%s): weighted %v != value*weight", i, v.Name, v.Weighted)
		}
		sum += v.Weighted
	}
	if sig.Score != sum {
		t.Errorf("score %v does not equal sum of weighted votes %v", sig.Score, sum)
	}
	if sig.Score < -1.0 || sig.Score > 1.0 {
		t.Errorf("score %v outside [-1, 1]", sig.Score)
	}
}

func TestEvaluate_StrictBoundaries(t *testing.T) {
	// SMA +1 and RSI +1 with everything else neutral: score exactly 0.5.
	upper := &model.TechIndicators{
		Close: 100,
		SMA50: 110, SMA100: 100, SMAValid: true,
		RSI: 25, RSIValid: true,
		BBUpper: 120, BBLower: 95, BBValid: true,
	}
	sig := Evaluate(upper)
	if sig.Score != 0.5 {
		t.Fatalf("expected score exactly 0.5, got %v", sig.Score)
	}
	if sig.Recommendation != model.Hold {
		t.Errorf("score of exactly 0.5 must map to Hold, got %s", sig.Recommendation)
	}

	lower := &model.TechIndicators{
		Close: 100,
		SMA50: 90, SMA100: 100, SMAValid: true,
		RSI: 75, RSIValid: true,
		BBUpper: 120, BBLower: 95, BBValid: true,
	}
	sig = Evaluate(lower)
	if sig.Score != -0.5 {
		t.Fatalf("expected score exactly -0.5, got %v", sig.Score)
	}
	if sig.Recommendation != model.Hold {
		t.Errorf("score of exactly -0.5 must map to Hold, got %s", sig.Recommendation)
	}

	// One more family flips the score past the threshold.
	buy := upper
	buy.MACDLine, buy.MACDSignal, buy.MACDValid = 2, 1, true
	if got := Evaluate(buy).Recommendation; got != model.Buy {
		t.Errorf("score above 0.5 must map to Buy, got %s", got)
	}
}

func TestEvaluate_TernaryFamilies(t *testing.T) {
	// RSI inside (30, 70) and a close inside the bands vote 0 even when valid.
	ind := allBull()
	ind.RSI = 50
	ind.Close = 100 // between BBLower 95 and BBUpper 120
	sig := Evaluate(ind)

	if sig.Votes[1].Value != 0 {
		t.Errorf("expected neutral RSI vote, got %d", sig.Votes[1].Value)
	}
	if sig.Votes[3].Value != 0 {
		t.Errorf("expected neutral Bollinger vote, got %d", sig.Votes[3].Value)
	}
	// SMA/MACD/EMA never vote 0 when their windows are filled.
	for _, i := range []int{0, 2, 4} {
		if sig.Votes[i].Value == 0 {
			t.Errorf("vote %s must not be neutral with valid data", sig.Votes[i].Name)
		}
	}
}

func TestEvaluate_InsufficientHistoryIsNeutral(t *testing.T) {
	// No validity bit set: every family votes 0 instead of failing.
	sig := Evaluate(&model.TechIndicators{Close: 100})
	for _, v := range sig.Votes {
		if v.Value != 0 || v.Weighted != 0 {
			t.Errorf("vote %s: expected neutral, got value=%d weighted=%v", v.Name, v.Value, v.Weighted)
		}
	}
	if sig.Recommendation != model.Hold {
		t.Errorf("expected Hold, got %s", sig.Recommendation)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	ind := allBull()
	first := Evaluate(ind)
	second := Evaluate(ind)
	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical signals for repeated evaluation of the same input")
	}
}
