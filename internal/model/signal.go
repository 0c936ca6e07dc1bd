package model

// Recommendation is the ternary outcome of the weighted technical vote.
type Recommendation string

const (
	Buy  Recommendation = "Buy"
	Sell Recommendation = "Sell"
	Hold Recommendation = "Hold"
)

// Vote is a single indicator family's contribution to the decision.
type Vote struct {
	Name       string
	Value      int // -1, 0 or +1
	Weight     float64
	Weighted   float64
	Commentary string
}

// TechSignal is the final output of the strategy engine.
type TechSignal struct {
	Votes          []Vote
	Score          float64
	Recommendation Recommendation
}
