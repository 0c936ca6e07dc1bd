package strategy

import (
	"fmt"

	"StockSage/internal/model"
)

// Fixed family weights. Order matters: SMA-cross, RSI, MACD-cross,
// Bollinger position, EMA-cross. They sum to 1.0.
const (
	weightSMA  = 0.3
	weightRSI  = 0.2
	weightMACD = 0.2
	weightBB   = 0.2
	weightEMA  = 0.1
)

func finish(v model.Vote) model.Vote {
	v.Weighted = float64(v.Value) * v.Weight
	return v
}

// voteSMACross votes +1 when SMA50 is strictly above SMA100, else -1.
// There is no neutral branch; a tie counts as -1.
func voteSMACross(ind *model.TechIndicators) model.Vote {
	v := model.Vote{Name: "SMA50/100", Weight: weightSMA}
	if !ind.SMAValid {
		v.Commentary = "insufficient history"
		return finish(v)
	}
	if ind.SMA50 > ind.SMA100 {
		v.Value = 1
	} else {
		v.Value = -1
	}
	v.Commentary = fmt.Sprintf("SMA50=%.2f SMA100=%.2f", ind.SMA50, ind.SMA100)
	return finish(v)
}

// voteRSI votes -1 above 70 (overbought), +1 below 30 (oversold), else 0.
func voteRSI(ind *model.TechIndicators) model.Vote {
	v := model.Vote{Name: "RSI14", Weight: weightRSI}
	if !ind.RSIValid {
		v.Commentary = "insufficient history"
		return finish(v)
	}
	switch {
	case ind.RSI > 70:
		v.Value = -1
	case ind.RSI < 30:
		v.Value = 1
	}
	v.Commentary = fmt.Sprintf("RSI=%.1f", ind.RSI)
	return finish(v)
}

// voteMACDCross votes +1 when the MACD line is strictly above its signal
// line, else -1. No neutral branch.
func voteMACDCross(ind *model.TechIndicators) model.Vote {
	v := model.Vote{Name: "MACD", Weight: weightMACD}
	if !ind.MACDValid {
		v.Commentary = "insufficient history"
		return finish(v)
	}
	if ind.MACDLine > ind.MACDSignal {
		v.Value = 1
	} else {
		v.Value = -1
	}
	v.Commentary = fmt.Sprintf("line=%.3f signal=%.3f", ind.MACDLine, ind.MACDSignal)
	return finish(v)
}

// voteBollinger votes +1 when the latest close sits below the lower band,
// -1 above the upper band, else 0.
func voteBollinger(ind *model.TechIndicators) model.Vote {
	v := model.Vote{Name: "Bollinger", Weight: weightBB}
	if !ind.BBValid {
		v.Commentary = "insufficient history"
		return finish(v)
	}
	switch {
	case ind.Close < ind.BBLower:
		v.Value = 1
	case ind.Close > ind.BBUpper:
		v.Value = -1
	}
	v.Commentary = fmt.Sprintf("close=%.2f band=[%.2f, %.2f]", ind.Close, ind.BBLower, ind.BBUpper)
	return finish(v)
}

// voteEMACross votes +1 when EMA20 is strictly above EMA50, else -1.
// No neutral branch.
func voteEMACross(ind *model.TechIndicators) model.Vote {
	v := model.Vote{Name: "EMA20/50", Weight: weightEMA}
	if !ind.EMAValid {
		v.Commentary = "insufficient history"
		return finish(v)
	}
	if ind.EMA20 > ind.EMA50 {
		v.Value = 1
	} else {
		v.Value = -1
	}
	v.Commentary = fmt.Sprintf("EMA20=%.2f EMA50=%.2f", ind.EMA20, ind.EMA50)
	return finish(v)
}
