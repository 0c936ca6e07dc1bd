package model

// Financials carries the scraped statement tables, each serialized as
// row-keyed JSON records. An empty string means the table was absent.
type Financials struct {
	QuarterlyResults string
	ProfitAndLoss    string
	BalanceSheet     string
	CashFlow         string
	DebtorsRatio     string
}

// Fundamentals holds the scraped company attributes and news. Any field may
// legitimately be empty; consumers must not assume presence.
type Fundamentals struct {
	Symbol       string
	Name         string
	Price        string
	Change       string
	About        string
	KeyPoints    string
	Properties   map[string]string
	Pros         string
	Cons         string
	Sector       string
	Financials   Financials
	Shareholding string
	News         map[string][]string // keyed by timestamp strings
}
