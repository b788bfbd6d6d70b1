package analytics

import (
	"math"
	"strings"
	"time"

	"sheetmart/internal/models"
)

// Layouts accepted for record dates, tried in order. Day-first layouts win
// over month-first because sheets are kept in the en-IN locale.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"2/1/2006, 3:04:05 pm",
	"2/1/2006, 15:04:05",
	"2/1/2006 15:04:05",
	"2/1/2006",
	"2-1-2006",
	"2 Jan 2006",
	"2-Jan-2006",
	"Jan 2, 2006",
}

// ParseRecordDate parses a sheet date in loc. Zoned timestamps are converted to loc.
func ParseRecordDate(value string, loc *time.Location) (time.Time, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, strings.ToLower(v), loc); err == nil {
			return t.In(loc), true
		}
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// jsRound rounds half up, matching Math.round.
func jsRound(x float64) float64 {
	return math.Floor(x + 0.5)
}

// Change is the rounded percent change from previous to current. A previous
// value of zero reports 100 when anything happened and 0 otherwise.
func Change(current, previous int) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(jsRound(float64(current-previous) / float64(previous) * 100))
}

// AveragePerDay always divides by seven, rounded to two decimals.
func AveragePerDay(weekCount int) float64 {
	return jsRound(float64(weekCount)/7*100) / 100
}

type window struct {
	today, yesterday, weekAgo, twoWeeksAgo time.Time
}

func newWindow(now time.Time) window {
	today := startOfDay(now)
	return window{
		today:       today,
		yesterday:   today.AddDate(0, 0, -1),
		weekAgo:     today.AddDate(0, 0, -7),
		twoWeeksAgo: today.AddDate(0, 0, -14),
	}
}

func (w window) inThisWeek(day time.Time) bool {
	return !day.Before(w.weekAgo) && !day.After(w.today)
}

// classify adds one record to every bucket its date falls into. Unparseable
// dates fall into none.
func (w window) classify(date string, loc *time.Location, m *models.DashboardMetrics, purchase bool) {
	t, ok := ParseRecordDate(date, loc)
	if !ok {
		return
	}
	day := startOfDay(t)

	inc := func(o *models.OrderMetrics) {
		if purchase {
			o.Purchases++
		} else {
			o.Sales++
		}
	}
	if day.Equal(w.today) {
		inc(&m.Today)
	}
	if day.Equal(w.yesterday) {
		inc(&m.Yesterday)
	}
	if w.inThisWeek(day) {
		inc(&m.ThisWeek)
	}
	if !day.Before(w.twoWeeksAgo) && day.Before(w.weekAgo) {
		inc(&m.LastWeek)
	}
}

// ComputeMetrics aggregates one tenant's records as of now. Calendar days are
// taken in now's location.
func ComputeMetrics(inventory []models.InventoryItem, purchases []models.PurchaseItem, sales []models.SalesItem, now time.Time) *models.DashboardMetrics {
	loc := now.Location()
	w := newWindow(now)
	m := &models.DashboardMetrics{
		TotalProducts: len(inventory),
		GeneratedAt:   now,
	}

	for i := range purchases {
		w.classify(purchases[i].RecordDate(), loc, m, true)
	}
	for i := range sales {
		w.classify(sales[i].RecordDate(), loc, m, false)
	}

	// Many sheets carry no usable dates at all.
	if m.ThisWeek.Purchases == 0 && m.ThisWeek.Sales == 0 {
		m.ThisWeek = models.OrderMetrics{Purchases: len(purchases), Sales: len(sales)}
		m.Today = models.OrderMetrics{Purchases: min(2, len(purchases)), Sales: min(2, len(sales))}
		m.DatesEstimated = len(purchases)+len(sales) > 0
	}

	m.PurchasesChange = Change(m.ThisWeek.Purchases, m.LastWeek.Purchases)
	m.SalesChange = Change(m.ThisWeek.Sales, m.LastWeek.Sales)
	m.TodayPurchasesChange = Change(m.Today.Purchases, m.Yesterday.Purchases)
	m.TodaySalesChange = Change(m.Today.Sales, m.Yesterday.Sales)
	m.AvgDailyPurchases = AveragePerDay(m.ThisWeek.Purchases)
	m.AvgDailySales = AveragePerDay(m.ThisWeek.Sales)

	timestamped := false
	for i := range inventory {
		item := &inventory[i]
		m.TotalStockValue += item.Value

		switch item.CurrentStatus() {
		case models.StockStatusNegative:
			m.NegativeStockItems++
			m.LowStockItems++
		case models.StockStatusLow:
			m.LowStockItems++
		case models.StockStatusExcess:
			m.ExcessStockItems++
		}

		if item.Timestamp == "" {
			continue
		}
		timestamped = true
		if t, ok := ParseRecordDate(item.Timestamp, loc); ok && w.inThisWeek(startOfDay(t)) {
			m.NewProductsThisWeek++
		}
	}
	if !timestamped {
		m.NewProductsThisWeek = min(5, len(inventory))
	}

	return m
}

// LowStockItems returns the items whose stock is low or negative, in sheet order.
func LowStockItems(inventory []models.InventoryItem) []models.InventoryItem {
	var out []models.InventoryItem
	for _, item := range inventory {
		if item.NeedsReorder() {
			out = append(out, item)
		}
	}
	return out
}
