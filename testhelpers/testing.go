package testhelpers

import (
	"testing"

	"sheetmart/internal/models"
	"sheetmart/internal/records"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

const MasterSheetID = "master-sheet"

// NewLogger returns a logger that writes through t.Log.
func NewLogger(t *testing.T) *zap.Logger {
	t.Helper()
	return zaptest.NewLogger(t)
}

// SeedTenants writes a Clients tab into the master sheet.
func SeedTenants(store *MemStore, tenants ...*models.Tenant) {
	rows := [][]string{records.ClientsTable.Headers()}
	for _, t := range tenants {
		rows = append(rows, records.EncodeTenant(t))
	}
	store.Seed(MasterSheetID, records.TabClients, rows)
}

// SeedInventory writes an Inventory tab into sheetID.
func SeedInventory(store *MemStore, sheetID string, items ...models.InventoryItem) {
	rows := [][]string{records.InventoryTable.Headers()}
	for i := range items {
		rows = append(rows, records.EncodeInventory(&items[i]))
	}
	store.Seed(sheetID, records.TabInventory, rows)
}

// SeedPurchases writes a Purchase tab into sheetID.
func SeedPurchases(store *MemStore, sheetID string, items ...models.PurchaseItem) {
	rows := [][]string{records.PurchaseTable.Headers()}
	for i := range items {
		rows = append(rows, records.EncodePurchase(&items[i]))
	}
	store.Seed(sheetID, records.TabPurchase, rows)
}

// SeedSales writes a Sales tab into sheetID.
func SeedSales(store *MemStore, sheetID string, items ...models.SalesItem) {
	rows := [][]string{records.SalesTable.Headers()}
	for i := range items {
		rows = append(rows, records.EncodeSale(&items[i]))
	}
	store.Seed(sheetID, records.TabSales, rows)
}

// SeedTenantBook creates every tenant tab with only its header row.
func SeedTenantBook(store *MemStore, sheetID string) {
	for _, table := range records.TenantTables {
		store.Seed(sheetID, table.Tab, [][]string{table.Headers()})
	}
}
