package stats

import "github.com/shopspring/decimal"

// Summary aggregates the dashboard numbers in a single read.
type Summary struct {
	UserCount    int             `json:"user_count"`
	ProductCount int             `json:"product_count"`
	TotalStock   int             `json:"total_stock"`
	TopCategory  string          `json:"top_category,omitempty"`
	OrdersToday  int             `json:"orders_today"`
	RevenueToday decimal.Decimal `json:"revenue_today"`
}
