package repositories

import (
	"context"

	"sheetmart/internal/models"
	"sheetmart/internal/records"
	"sheetmart/internal/sheets"
)

type SalesRepository interface {
	List(ctx context.Context, sheetID string) ([]models.SalesItem, error)
	Create(ctx context.Context, sheetID string, item *models.SalesItem) error
}

type salesRepo struct {
	sheetTable
}

func NewSalesRepo(store sheets.TabularStore) SalesRepository {
	return &salesRepo{sheetTable{store: store, table: records.SalesTable}}
}

func (r *salesRepo) List(ctx context.Context, sheetID string) ([]models.SalesItem, error) {
	grid, err := r.read(ctx, sheetID)
	if err != nil {
		return nil, err
	}
	return records.DecodeSales(grid), nil
}

func (r *salesRepo) Create(ctx context.Context, sheetID string, item *models.SalesItem) error {
	return r.append(ctx, sheetID, func(grid [][]string) []string {
		if item.SrNo == 0 {
			item.SrNo = dataRows(grid) + 1
		}
		return records.EncodeSale(item)
	})
}
