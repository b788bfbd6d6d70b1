package repositories

import (
	"context"

	"sheetmart/internal/models"
	"sheetmart/internal/records"
	"sheetmart/internal/sheets"
)

type PurchaseRepository interface {
	List(ctx context.Context, sheetID string) ([]models.PurchaseItem, error)
	Create(ctx context.Context, sheetID string, item *models.PurchaseItem) error
}

type purchaseRepo struct {
	sheetTable
}

func NewPurchaseRepo(store sheets.TabularStore) PurchaseRepository {
	return &purchaseRepo{sheetTable{store: store, table: records.PurchaseTable}}
}

func (r *purchaseRepo) List(ctx context.Context, sheetID string) ([]models.PurchaseItem, error) {
	grid, err := r.read(ctx, sheetID)
	if err != nil {
		return nil, err
	}
	return records.DecodePurchases(grid), nil
}

func (r *purchaseRepo) Create(ctx context.Context, sheetID string, item *models.PurchaseItem) error {
	return r.append(ctx, sheetID, func(grid [][]string) []string {
		if item.SrNo == 0 {
			item.SrNo = dataRows(grid) + 1
		}
		return records.EncodePurchase(item)
	})
}
