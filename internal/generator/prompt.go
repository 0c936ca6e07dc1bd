package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"StockSage/internal/model"
)

// promptData is the structured payload embedded into the prompt. It is
// serialized with encoding/json, which sorts map keys, so identical inputs
// always render the identical prompt.
type promptData struct {
	StockName         string              `json:"stock_name"`
	StockPrice        string              `json:"stock_price"`
	StockChange       string              `json:"stock_change"`
	News              map[string][]string `json:"news"`
	About             string              `json:"about"`
	Key               string              `json:"key"`
	Properties        map[string]string   `json:"properties"`
	Pros              string              `json:"pros"`
	Cons              string              `json:"cons"`
	Sector            string              `json:"sector"`
	QuarterlyResults  string              `json:"quarterly_results"`
	ProfitAndLoss     string              `json:"profit_and_loss"`
	BalanceSheet      string              `json:"balance_sheet"`
	CashFlow          string              `json:"cash_flow"`
	DebtorsRatio      string              `json:"debtors_ratio"`
	Shareholding      string              `json:"shareholding_pattern"`
	TechnicalAnalysis techData            `json:"technical_analysis"`
}

type techData struct {
	Recommendation string   `json:"recommendation"`
	Score          float64  `json:"score"`
	Votes          []string `json:"votes"`
	High52w        float64  `json:"high_52w"`
	Low52w         float64  `json:"low_52w"`
	Position52w    float64  `json:"position_52w"`
}

// BuildPrompt renders the six-section analysis prompt from the scraped
// fundamentals and the computed technical signal. Deterministic for
// identical inputs.
func BuildPrompt(f *model.Fundamentals, sig *model.TechSignal, ind *model.TechIndicators) string {
	votes := make([]string, len(sig.Votes))
	for i, v := range sig.Votes {
		votes[i] = fmt.Sprintf("%s: %+d (weight %.2f, %s)", v.Name, v.Value, v.Weight, v.Commentary)
	}

	data := promptData{
		StockName:        f.Name,
		StockPrice:       f.Price,
		StockChange:      f.Change,
		News:             f.News,
		About:            f.About,
		Key:              f.KeyPoints,
		Properties:       f.Properties,
		Pros:             f.Pros,
		Cons:             f.Cons,
		Sector:           f.Sector,
		QuarterlyResults: f.Financials.QuarterlyResults,
		ProfitAndLoss:    f.Financials.ProfitAndLoss,
		BalanceSheet:     f.Financials.BalanceSheet,
		CashFlow:         f.Financials.CashFlow,
		DebtorsRatio:     f.Financials.DebtorsRatio,
		Shareholding:     f.Shareholding,
		TechnicalAnalysis: techData{
			Recommendation: string(sig.Recommendation),
			Score:          sig.Score,
			Votes:          votes,
			High52w:        ind.High52w,
			Low52w:         ind.Low52w,
			Position52w:    ind.Position52w,
		},
	}

	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		// Only unmarshalable types can land here; the struct has none.
		payload = []byte(fmt.Sprintf("%+v", data))
	}

	var b strings.Builder
	b.WriteString("Generate an in-depth and actionable stock analysis report covering the following sections:\n\n")
	b.WriteString("1. **Company Overview**: Provide a concise description of the company, its industry, and its current stock price, including a brief note on recent performance trends.\n")
	b.WriteString("2. **Key Metrics**: Highlight essential financial metrics (e.g., P/E ratio, Industry P/E ratio, EPS, ROE) and discuss significant observations or anomalies.\n")
	b.WriteString("3. **SWOT Analysis**: Identify and elaborate on the company's Strengths, Weaknesses, Opportunities, and Threats, emphasizing factors that influence stock performance. Please not consider book value vs stock value.\n")
	b.WriteString("4. **Recent News Highlights**: Summarize key news or events affecting the company, focusing on their potential impact on stock performance.\n")
	b.WriteString("5. **Technical Analysis**: provide a visual rating based on voting given in technical analysis(e.g., in star format).\n")
	b.WriteString("6. **Investment Recommendation**: Offer a clear recommendation (Buy, Sell, or Hold) for the next 3-6 months, supported by both technical and fundamental analysis insights.\n\n")
	b.WriteString("Ensure the report is well-structured, jargon-free, and focuses on delivering actionable insights over raw data. Use the provided data as the basis for your analysis:\n")
	b.WriteString("**Company**: ")
	b.Write(payload)
	b.WriteString("\n")
	return b.String()
}
