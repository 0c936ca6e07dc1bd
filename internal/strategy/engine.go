package strategy

import "StockSage/internal/model"

// Evaluate combines the five indicator family votes into a weighted score
// and a ternary recommendation. Pure: the same indicator set always yields
// the same signal.
func Evaluate(ind *model.TechIndicators) *model.TechSignal {
	votes := []model.Vote{
		voteSMACross(ind),
		voteRSI(ind),
		voteMACDCross(ind),
		voteBollinger(ind),
		voteEMACross(ind),
	}

	score := 0.0
	for _, v := range votes {
		score += v.Weighted
	}

	return &model.TechSignal{
		Votes:          votes,
		Score:          score,
		Recommendation: mapRecommendation(score),
	}
}

// mapRecommendation applies the strict decision thresholds. A score of
// exactly +0.5 or -0.5 maps to Hold.
func mapRecommendation(score float64) model.Recommendation {
	switch {
	case score > 0.5:
		return model.Buy
	case score < -0.5:
		return model.Sell
	default:
		return model.Hold
	}
}
