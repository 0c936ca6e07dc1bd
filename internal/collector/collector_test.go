package collector

import (
	"errors"
	"testing"

	"StockSage/internal/model"
	"StockSage/internal/strategy"
)

func TestCollect_FullHistory(t *testing.T) {
	col := NewCollector(&MockFetcher{Price: 1000})
	series, ind, err := col.Collect("TEST")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series.Bars) != 365 {
		t.Errorf("expected 365 bars, got %d", len(series.Bars))
	}
	if !ind.SMAValid || !ind.RSIValid || !ind.MACDValid || !ind.BBValid || !ind.EMAValid {
		t.Error("expected every indicator family valid with a full year of bars")
	}
	if ind.Close != series.Bars[len(series.Bars)-1].Close {
		t.Errorf("expected latest close %v, got %v", series.Bars[len(series.Bars)-1].Close, ind.Close)
	}
}

func TestCollect_ShortHistoryVotesNeutral(t *testing.T) {
	// 40 bars: under the 100-period floor, so the SMA cross (and the
	// 50-period EMA) must degrade to neutral votes instead of failing.
	col := NewCollector(&MockFetcher{DailyData: GenerateMockBars(1000, 40)})
	_, ind, err := col.Collect("TEST")
	if err != nil {
		t.Fatalf("short history must not fail: %v", err)
	}
	if ind.SMAValid {
		t.Error("SMA cross must be invalid with fewer than 100 bars")
	}
	if ind.EMAValid {
		t.Error("EMA cross must be invalid with fewer than 50 bars")
	}
	if !ind.MACDValid || !ind.RSIValid || !ind.BBValid {
		t.Error("families with filled windows must stay valid")
	}

	sig := strategy.Evaluate(ind)
	if sig.Votes[0].Value != 0 {
		t.Errorf("expected neutral SMA vote, got %d", sig.Votes[0].Value)
	}
	if sig.Votes[4].Value != 0 {
		t.Errorf("expected neutral EMA vote, got %d", sig.Votes[4].Value)
	}
}

func TestCollect_EmptySeriesIsFetchFailure(t *testing.T) {
	col := NewCollector(&MockFetcher{DailyData: []model.OHLCV{}})
	if _, _, err := col.Collect("NOPE"); err == nil {
		t.Fatal("expected error for empty series")
	}
}

func TestCollect_FetchErrorPropagates(t *testing.T) {
	col := NewCollector(&MockFetcher{Err: errors.New("connection refused")})
	if _, _, err := col.Collect("TEST"); err == nil {
		t.Fatal("expected fetch error to propagate")
	}
}
