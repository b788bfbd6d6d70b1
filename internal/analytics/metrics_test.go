package analytics

import (
	"testing"
	"time"

	"sheetmart/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ist = time.FixedZone("IST", 5*3600+30*60)

// Thursday evening.
var now = time.Date(2026, 10, 15, 19, 30, 0, 0, ist)

func TestChange(t *testing.T) {
	assert.Equal(t, 0, Change(0, 0))
	assert.Equal(t, 100, Change(5, 0))
	assert.Equal(t, 100, Change(10, 5))
	assert.Equal(t, -50, Change(5, 10))
	assert.Equal(t, 33, Change(4, 3))
	// half rounds up, including for negatives
	assert.Equal(t, -12, Change(7, 8))
	assert.Equal(t, 50, Change(3, 2))
}

func TestAveragePerDay(t *testing.T) {
	assert.Equal(t, 0.0, AveragePerDay(0))
	assert.Equal(t, 1.0, AveragePerDay(7))
	assert.Equal(t, 0.43, AveragePerDay(3))
	assert.Equal(t, 1.43, AveragePerDay(10))
}

func TestParseRecordDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2026-10-15", time.Date(2026, 10, 15, 0, 0, 0, 0, ist)},
		{"15/10/2026", time.Date(2026, 10, 15, 0, 0, 0, 0, ist)},
		{"5/1/2026", time.Date(2026, 1, 5, 0, 0, 0, 0, ist)},
		{"15/10/2026, 6:05:12 pm", time.Date(2026, 10, 15, 18, 5, 12, 0, ist)},
		{"15/10/2026, 6:05:12 PM", time.Date(2026, 10, 15, 18, 5, 12, 0, ist)},
		{"2026-10-15T12:35:12.000Z", time.Date(2026, 10, 15, 18, 5, 12, 0, ist)},
		{"15 Oct 2026", time.Date(2026, 10, 15, 0, 0, 0, 0, ist)},
		{"2026/10/15", time.Date(2026, 10, 15, 0, 0, 0, 0, ist)},
		{"2026/10/15 18:05:12", time.Date(2026, 10, 15, 18, 5, 12, 0, ist)},
		{"15-Oct-2026", time.Date(2026, 10, 15, 0, 0, 0, 0, ist)},
		{"05-oct-2026", time.Date(2026, 10, 5, 0, 0, 0, 0, ist)},
		{"10/11/2026", time.Date(2026, 11, 10, 0, 0, 0, 0, ist)}, // day first
	}
	for _, tt := range tests {
		got, ok := ParseRecordDate(tt.in, ist)
		require.True(t, ok, tt.in)
		assert.True(t, tt.want.Equal(got), "%s: got %s", tt.in, got)
	}

	for _, bad := range []string{"", "yesterday", "31/31/2026", "10/16/2026"} {
		_, ok := ParseRecordDate(bad, ist)
		assert.False(t, ok, bad)
	}
}

func TestComputeMetrics_TodayIsAlsoThisWeek(t *testing.T) {
	purchases := []models.PurchaseItem{
		{Product: "Bolt", Timestamp: "2026-10-15T09:00:00+05:30"},
	}
	m := ComputeMetrics(nil, purchases, nil, now)

	assert.Equal(t, 1, m.Today.Purchases)
	assert.Equal(t, 1, m.ThisWeek.Purchases)
	assert.Equal(t, 0, m.LastWeek.Purchases)
	assert.False(t, m.DatesEstimated)
}

func TestComputeMetrics_Buckets(t *testing.T) {
	purchases := []models.PurchaseItem{
		{DateOfReceiving: "2026-10-15"},                              // today
		{DateOfReceiving: "2026-10-14"},                              // yesterday
		{DateOfReceiving: "2026-10-08"},                              // exactly a week ago
		{DateOfReceiving: "2026-10-07"},                              // last week
		{DateOfReceiving: "2026-10-01"},                              // two weeks ago
		{DateOfReceiving: "2026-09-30"},                              // older
		{DateOfReceiving: "2026-10-16"},                              // tomorrow
		{DateOfReceiving: "2026-10-01", Timestamp: "2026-10-15"},     // timestamp wins
		{DateOfReceiving: "not a date"},                              // ignored
	}
	sales := []models.SalesItem{
		{DateOfIssue: "14/10/2026"},
		{DateOfIssue: "13/10/2026"},
	}

	m := ComputeMetrics(nil, purchases, sales, now)

	assert.Equal(t, models.OrderMetrics{Purchases: 2, Sales: 0}, m.Today)
	assert.Equal(t, models.OrderMetrics{Purchases: 1, Sales: 1}, m.Yesterday)
	assert.Equal(t, models.OrderMetrics{Purchases: 4, Sales: 2}, m.ThisWeek)
	assert.Equal(t, models.OrderMetrics{Purchases: 2, Sales: 0}, m.LastWeek)
	assert.Equal(t, 100, m.PurchasesChange)
	assert.Equal(t, 100, m.SalesChange)
	assert.Equal(t, 100, m.TodayPurchasesChange)
	assert.Equal(t, -100, m.TodaySalesChange)
	assert.Equal(t, 0.57, m.AvgDailyPurchases)
	assert.Equal(t, 0.29, m.AvgDailySales)
}

func TestComputeMetrics_UndatedFallback(t *testing.T) {
	purchases := make([]models.PurchaseItem, 5)
	for i := range purchases {
		purchases[i] = models.PurchaseItem{Product: "Bolt", DateOfReceiving: "n/a"}
	}
	sales := make([]models.SalesItem, 3)
	for i := range sales {
		sales[i] = models.SalesItem{Product: "Bolt", DateOfIssue: "soon"}
	}

	m := ComputeMetrics(nil, purchases, sales, now)

	assert.Equal(t, 5, m.ThisWeek.Purchases)
	assert.Equal(t, 3, m.ThisWeek.Sales)
	assert.Equal(t, 2, m.Today.Purchases)
	assert.Equal(t, 2, m.Today.Sales)
	assert.True(t, m.DatesEstimated)

	single := ComputeMetrics(nil, purchases[:1], nil, now)
	assert.Equal(t, 1, single.Today.Purchases)
	assert.Equal(t, 0, single.Today.Sales)
}

func TestComputeMetrics_FallbackNotUsedWhenOnlySalesDated(t *testing.T) {
	purchases := []models.PurchaseItem{{DateOfReceiving: "n/a"}, {DateOfReceiving: "n/a"}}
	sales := []models.SalesItem{{DateOfIssue: "2026-10-12"}}

	m := ComputeMetrics(nil, purchases, sales, now)
	assert.Equal(t, 0, m.ThisWeek.Purchases)
	assert.Equal(t, 1, m.ThisWeek.Sales)
	assert.False(t, m.DatesEstimated)
}

func TestComputeMetrics_Inventory(t *testing.T) {
	inventory := []models.InventoryItem{
		{Product: "Bolt", Stock: 2, MinimumQuantity: 10, MaximumQuantity: 100, PricePerUnit: 5, Value: 10},
		{Product: "Nut", Stock: -8, MinimumQuantity: 5, MaximumQuantity: 50, Value: -40},
		{Product: "Washer", Stock: 500, MinimumQuantity: 5, MaximumQuantity: 50, Value: 250},
		{Product: "Screw", Stock: 20, MinimumQuantity: 5, MaximumQuantity: 50, Value: 100},
	}

	m := ComputeMetrics(inventory, nil, nil, now)
	assert.Equal(t, 4, m.TotalProducts)
	assert.Equal(t, 2, m.LowStockItems)
	assert.Equal(t, 1, m.NegativeStockItems)
	assert.Equal(t, 1, m.ExcessStockItems)
	assert.Equal(t, 320.0, m.TotalStockValue)
	// no timestamps anywhere
	assert.Equal(t, 4, m.NewProductsThisWeek)

	many := make([]models.InventoryItem, 9)
	assert.Equal(t, 5, ComputeMetrics(many, nil, nil, now).NewProductsThisWeek)
}

func TestComputeMetrics_NewProductsFromTimestamps(t *testing.T) {
	inventory := []models.InventoryItem{
		{Product: "Bolt", Timestamp: "2026-10-14T10:00:00+05:30"},
		{Product: "Nut", Timestamp: "2026-09-01T10:00:00+05:30"},
		{Product: "Washer"},
		{Product: "Screw", Timestamp: "garbage"},
	}
	assert.Equal(t, 1, ComputeMetrics(inventory, nil, nil, now).NewProductsThisWeek)
}

func TestComputeMetrics_BoltScenario(t *testing.T) {
	inventory := []models.InventoryItem{
		{Product: "Bolt", Stock: 2, MinimumQuantity: 10, MaximumQuantity: 100, PricePerUnit: 5},
	}
	assert.Equal(t, models.StockStatusLow, inventory[0].CurrentStatus())
	assert.Equal(t, 1, ComputeMetrics(inventory, nil, nil, now).LowStockItems)

	low := LowStockItems(inventory)
	require.Len(t, low, 1)
	assert.Equal(t, "Bolt", low[0].Product)
}
