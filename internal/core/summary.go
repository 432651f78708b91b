package core

// CategoryAmount is an amount aggregated under one category.
type CategoryAmount struct {
	CategoryID string
	Name       string
	Amount     Money
}

// MonthSummary aggregates one user's transactions for a year+month. Totals
// are folded with Money.Add, so a period mixing currencies cannot be
// summarized (there is no conversion).
type MonthSummary struct {
	Year       int
	Month      int // 1-12
	Expenses   Money
	Income     Money
	ByCategory []CategoryAmount
}
