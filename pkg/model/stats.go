package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStats summarises the sales and stock figures of a product.
type ProductStats struct {
	TotalRevenue decimal.Decimal `json:"totalRevenue" yaml:"total_revenue"`
	UnitsSold    int             `json:"unitsSold" yaml:"units_sold"`
	CurrentStock int             `json:"currentStock" yaml:"current_stock"`
	StockValue   decimal.Decimal `json:"stockValue" yaml:"stock_value"`
}

// StatsForProduct computes revenue (price × sold) and stock value
// (price × stock) rounded to cents.
func StatsForProduct(p Product) ProductStats {
	price := decimal.NewFromFloat(p.Price)
	return ProductStats{
		TotalRevenue: price.Mul(decimal.NewFromInt(int64(p.TotalSold))).Round(2),
		UnitsSold:    p.TotalSold,
		CurrentStock: p.Stock,
		StockValue:   price.Mul(decimal.NewFromInt(int64(p.Stock))).Round(2),
	}
}

// CustomerStats summarises the account age and contact completeness of a
// customer.
type CustomerStats struct {
	Status           string `json:"status" yaml:"status"`
	DaysSinceCreated int    `json:"daysSinceCreated" yaml:"days_since_created"`
	ContactComplete  bool   `json:"contactComplete" yaml:"contact_complete"`
}

// StatsForCustomer computes the statistics shown on a customer detail page.
// An unparsable createdAt yields zero days.
func StatsForCustomer(c Customer, now time.Time) CustomerStats {
	days := 0
	if created, err := ParseTimestamp(c.CreatedAt); err == nil {
		days = int(now.Sub(created) / (24 * time.Hour))
	}
	return CustomerStats{
		Status:           "Active",
		DaysSinceCreated: days,
		ContactComplete:  c.Phone != "",
	}
}
