package estimate

// BudgetResult totals renovation costs with a contingency reserve.
type BudgetResult struct {
	Subtotal       float64 `json:"subtotal"`
	ReservePercent float64 `json:"reserve_percent"`
	ReserveAmount  float64 `json:"reserve_amount"`
	Total          float64 `json:"total"`
	DiscardedItems int     `json:"discarded_items"`
}

// Budget aggregates line items using the default constants.
func Budget(items []float64, reservePercent float64) BudgetResult {
	return defaultCalculator.Budget(items, reservePercent)
}

// Budget sums the line items and adds the reserve. Items that are non-finite,
// negative or implausibly large count as zero; a reserve percent outside [0,100]
// counts as zero.
func (c *Calculator) Budget(items []float64, reservePercent float64) BudgetResult {
	var res BudgetResult
	for _, item := range items {
		if !isFinite(item) || item < 0 || item > c.c.MaxBudgetItem {
			res.DiscardedItems++
			continue
		}
		res.Subtotal += item
	}

	if isFinite(reservePercent) && reservePercent >= 0 && reservePercent <= 100 {
		res.ReservePercent = reservePercent
	}
	res.ReserveAmount = res.Subtotal * res.ReservePercent / 100
	res.Total = res.Subtotal + res.ReserveAmount
	return res
}
