package repositories

import (
	"context"

	"sheetmart/internal/models"
	"sheetmart/internal/records"
	"sheetmart/internal/sheets"
)

type SupplierRepository interface {
	List(ctx context.Context, sheetID string) ([]models.Supplier, error)
	Create(ctx context.Context, sheetID string, supplier *models.Supplier) error
}

type supplierRepo struct {
	sheetTable
}

func NewSupplierRepo(store sheets.TabularStore) SupplierRepository {
	return &supplierRepo{sheetTable{store: store, table: records.SuppliersTable}}
}

func (r *supplierRepo) List(ctx context.Context, sheetID string) ([]models.Supplier, error) {
	grid, err := r.read(ctx, sheetID)
	if err != nil {
		return nil, err
	}
	return records.DecodeSuppliers(grid), nil
}

func (r *supplierRepo) Create(ctx context.Context, sheetID string, supplier *models.Supplier) error {
	return r.append(ctx, sheetID, func([][]string) []string {
		return records.EncodeSupplier(supplier)
	})
}
