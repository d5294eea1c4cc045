package services

import "jewelry-backend/models"

// LineTotals holds the aggregate of an order's line items.
type LineTotals struct {
	TotalPrice  int64
	TotalProfit int64
	Quantity    int
}

// AggregateLines sums price, profit and quantity over a set of line items.
// An empty slice yields all zeros.
func AggregateLines(details []models.OrderDetail) LineTotals {
	var totals LineTotals
	for _, d := range details {
		totals.TotalPrice += d.TotalPrice
		totals.TotalProfit += d.TotalProfit
		totals.Quantity += d.Quantity
	}
	return totals
}
