package models

import "time"

// OrderMetrics counts purchases and sales within one period.
type OrderMetrics struct {
	Purchases int `json:"purchases"`
	Sales     int `json:"sales"`
}

// DashboardMetrics is computed per request and never stored.
type DashboardMetrics struct {
	TotalProducts       int     `json:"total_products"`
	TotalStockValue     float64 `json:"total_stock_value"`
	LowStockItems       int     `json:"low_stock_items"`
	NegativeStockItems  int     `json:"negative_stock_items"`
	ExcessStockItems    int     `json:"excess_stock_items"`
	NewProductsThisWeek int     `json:"new_products_this_week"`

	Today     OrderMetrics `json:"today"`
	Yesterday OrderMetrics `json:"yesterday"`
	ThisWeek  OrderMetrics `json:"this_week"`
	LastWeek  OrderMetrics `json:"last_week"`

	// Percent change, this week over last week.
	PurchasesChange int `json:"purchases_change"`
	SalesChange     int `json:"sales_change"`
	// Percent change, today over yesterday.
	TodayPurchasesChange int `json:"today_purchases_change"`
	TodaySalesChange     int `json:"today_sales_change"`

	AvgDailyPurchases float64 `json:"avg_daily_purchases"`
	AvgDailySales     float64 `json:"avg_daily_sales"`

	// DatesEstimated is set when the week had no dated records and counts were
	// taken from the whole collections instead.
	DatesEstimated bool      `json:"dates_estimated"`
	GeneratedAt    time.Time `json:"generated_at"`
}
