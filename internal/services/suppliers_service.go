package services

import (
	"context"
	"errors"
	"strings"

	"sheetmart/internal/models"
	"sheetmart/internal/repositories"
)

type SupplierService interface {
	List(ctx context.Context, sheetID string) ([]models.Supplier, error)
	// Ensure adds the supplier unless one with the same name already exists.
	// It reports whether a row was added.
	Ensure(ctx context.Context, sheetID string, supplier *models.Supplier) (bool, error)
}

type supplierService struct {
	repo repositories.SupplierRepository
}

func NewSupplierService(repo repositories.SupplierRepository) SupplierService {
	return &supplierService{repo: repo}
}

func (s *supplierService) List(ctx context.Context, sheetID string) ([]models.Supplier, error) {
	return s.repo.List(ctx, sheetID)
}

func (s *supplierService) Ensure(ctx context.Context, sheetID string, supplier *models.Supplier) (bool, error) {
	supplier.Supplier = strings.TrimSpace(supplier.Supplier)
	supplier.CompanyName = strings.TrimSpace(supplier.CompanyName)
	if supplier.Name() == "" {
		return false, errors.New("supplier or company name is required")
	}

	existing, err := s.repo.List(ctx, sheetID)
	if err != nil {
		return false, err
	}
	for _, e := range existing {
		if supplier.Supplier != "" && strings.EqualFold(e.Supplier, supplier.Supplier) {
			return false, nil
		}
		if supplier.CompanyName != "" && strings.EqualFold(e.CompanyName, supplier.CompanyName) {
			return false, nil
		}
	}
	if err := s.repo.Create(ctx, sheetID, supplier); err != nil {
		return false, err
	}
	return true, nil
}
