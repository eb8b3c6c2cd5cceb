package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// BalanceSummary is the income/expense/net triple behind the balance report.
type BalanceSummary struct {
	Income   Money
	Expenses Money
}

// Net returns income minus expenses. May be negative.
func (b BalanceSummary) Net() Money {
	return b.Income.Sub(b.Expenses)
}
