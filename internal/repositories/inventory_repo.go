package repositories

import (
	"context"
	"fmt"
	"strings"

	"sheetmart/internal/models"
	"sheetmart/internal/records"
	"sheetmart/internal/sheets"
)

type InventoryRepository interface {
	List(ctx context.Context, sheetID string) ([]models.InventoryItem, error)
	// FindByProduct matches the product name case-insensitively. It returns
	// nil, nil when absent.
	FindByProduct(ctx context.Context, sheetID, product string) (*models.InventoryItem, error)
	Create(ctx context.Context, sheetID string, item *models.InventoryItem) error
	// Update rewrites the row the item was read from.
	Update(ctx context.Context, sheetID string, item *models.InventoryItem) error
	// DeleteByProduct removes every row for the product and reports how many went.
	DeleteByProduct(ctx context.Context, sheetID, product string) (int, error)
}

type inventoryRepo struct {
	sheetTable
}

func NewInventoryRepo(store sheets.TabularStore) InventoryRepository {
	return &inventoryRepo{sheetTable{store: store, table: records.InventoryTable}}
}

func (r *inventoryRepo) List(ctx context.Context, sheetID string) ([]models.InventoryItem, error) {
	grid, err := r.read(ctx, sheetID)
	if err != nil {
		return nil, err
	}
	return records.DecodeInventory(grid), nil
}

func sameProduct(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func (r *inventoryRepo) FindByProduct(ctx context.Context, sheetID, product string) (*models.InventoryItem, error) {
	items, err := r.List(ctx, sheetID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if sameProduct(items[i].Product, product) {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (r *inventoryRepo) Create(ctx context.Context, sheetID string, item *models.InventoryItem) error {
	return r.append(ctx, sheetID, func(grid [][]string) []string {
		if item.SrNo == 0 {
			item.SrNo = dataRows(grid) + 1
		}
		return records.EncodeInventory(item)
	})
}

func (r *inventoryRepo) Update(ctx context.Context, sheetID string, item *models.InventoryItem) error {
	if item.Row < 2 {
		return fmt.Errorf("inventory item %q has no sheet row", item.Product)
	}
	return r.rewrite(ctx, sheetID, item.Row, records.EncodeInventory(item))
}

func (r *inventoryRepo) DeleteByProduct(ctx context.Context, sheetID, product string) (int, error) {
	items, err := r.List(ctx, sheetID)
	if err != nil {
		return 0, err
	}

	var indices []int
	for _, item := range items {
		if sameProduct(item.Product, product) {
			indices = append(indices, item.Row-1)
		}
	}
	if len(indices) == 0 {
		return 0, nil
	}

	tab, err := sheets.FindTab(ctx, r.store, sheetID, r.table.Tab)
	if err != nil {
		return 0, err
	}
	if err := r.store.DeleteRows(ctx, sheetID, tab.ID, indices); err != nil {
		return 0, fmt.Errorf("failed to delete inventory rows: %w", err)
	}
	return len(indices), nil
}
