package statistics

// YearSummary breaks a year's revenue down by workflow outcome. Paid revenue
// comes from Completed orders; Cancelled orders are excluded from revenue and
// counted separately.
type YearSummary struct {
	Year            int     `json:"year"`
	TotalOrders     int     `json:"totalOrders"`
	Revenue         float64 `json:"revenue"`
	PaidRevenue     float64 `json:"paidRevenue"`
	CancelledOrders int     `json:"cancelledOrders"`
}

// MonthStat is one month's order volume within a year.
type MonthStat struct {
	Month   int     `json:"month"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// RangeSummary aggregates orders between two dates inclusive.
type RangeSummary struct {
	DateFrom    string  `json:"dateFrom"`
	DateTo      string  `json:"dateTo"`
	TotalOrders int     `json:"totalOrders"`
	Revenue     float64 `json:"revenue"`
}
