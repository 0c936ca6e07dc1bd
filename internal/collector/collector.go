package collector

import (
	"fmt"
	"log"
	"time"

	"StockSage/internal/calculator"
	"StockSage/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	DailyData []model.OHLCV
	Err       error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ string, days int) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	return GenerateMockBars(m.Price, days), nil
}

// GenerateMockBars builds a gently trending series around basePrice.
func GenerateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector fetches the one-year daily series and computes the indicator set.
type Collector struct {
	Fetcher  Fetcher
	Lookback int // trading days requested, defaults to a full year
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher, Lookback: 365}
}

// Collect fetches the price series for symbol and computes every indicator
// family. An empty series is a hard fetch failure; a family whose window
// cannot be filled is logged and left invalid so it votes neutral downstream.
func (c *Collector) Collect(symbol string) (*model.PriceSeries, *model.TechIndicators, error) {
	bars, err := c.Fetcher.FetchDailyBars(symbol, c.Lookback)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch daily bars for %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, nil, fmt.Errorf("no price data for %s", symbol)
	}

	series := &model.PriceSeries{Symbol: symbol, Bars: bars, FetchedAt: time.Now()}
	closes := series.Closes()
	ind := &model.TechIndicators{Close: closes[len(closes)-1]}

	sma50, err50 := calculator.CalculateSMA(closes, 50)
	sma100, err100 := calculator.CalculateSMA(closes, 100)
	if err50 != nil || err100 != nil {
		log.Printf("[WARN] %s: SMA cross unavailable, voting neutral", symbol)
	} else {
		ind.SMA50, ind.SMA100, ind.SMAValid = sma50, sma100, true
	}

	if rsi, err := calculator.CalculateRSI(closes, 14); err != nil {
		log.Printf("[WARN] %s: RSI unavailable, voting neutral: %v", symbol, err)
	} else {
		ind.RSI, ind.RSIValid = rsi, true
	}

	if line, sig, err := calculator.CalculateMACD(closes, 12, 26, 9); err != nil {
		log.Printf("[WARN] %s: MACD unavailable, voting neutral: %v", symbol, err)
	} else {
		ind.MACDLine, ind.MACDSignal, ind.MACDValid = line, sig, true
	}

	if upper, lower, err := calculator.CalculateBollinger(closes, 20, 2); err != nil {
		log.Printf("[WARN] %s: Bollinger unavailable, voting neutral: %v", symbol, err)
	} else {
		ind.BBUpper, ind.BBLower, ind.BBValid = upper, lower, true
	}

	ema20, err20 := calculator.CalculateEMA(closes, 20)
	ema50, errE50 := calculator.CalculateEMA(closes, 50)
	if err20 != nil || errE50 != nil {
		log.Printf("[WARN] %s: EMA cross unavailable, voting neutral", symbol)
	} else {
		ind.EMA20, ind.EMA50, ind.EMAValid = ema20, ema50, true
	}

	// 52-week context for the prompt; best effort, never fatal here.
	if high, low, err := calculator.Calculate52WeekRange(bars); err == nil {
		ind.High52w, ind.Low52w = high, low
		if pos, err := calculator.Calculate52WeekPosition(ind.Close, high, low); err == nil {
			ind.Position52w = pos
		}
	}

	return series, ind, nil
}
