package domain

// QueryResult is the outcome of an ad-hoc filter request: matching rows in
// original chronological order, a budget status summary, or an explanatory
// message when the request matched nothing recognizable.
type QueryResult struct {
	Rows    []Transaction
	Budget  []BudgetStatus
	Message string
}
