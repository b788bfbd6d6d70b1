package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sheetmart/internal/models"
	"sheetmart/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// StockChange is the inventory row after a purchase or sale was applied.
type StockChange struct {
	Product  string                `json:"product"`
	OldStock float64               `json:"old_stock"`
	NewStock float64               `json:"new_stock"`
	Created  bool                  `json:"created"`
	Item     *models.InventoryItem `json:"item"`
}

// OrderServiceInterface records purchases and sales. Each record is appended
// first and the inventory row is rewritten afterwards; the two writes are not
// atomic. When the second one fails the returned error wraps
// ErrInventoryNotAdjusted and the appended record stays.
type OrderServiceInterface interface {
	ListPurchases(ctx context.Context, sheetID string) ([]models.PurchaseItem, error)
	ListSales(ctx context.Context, sheetID string) ([]models.SalesItem, error)
	RecordPurchase(ctx context.Context, sheetID string, purchase *models.PurchaseItem) (*StockChange, error)
	RecordSale(ctx context.Context, sheetID string, sale *models.SalesItem) (*StockChange, error)
}

type orderService struct {
	purchaseRepo    repositories.PurchaseRepository
	salesRepo       repositories.SalesRepository
	inventoryRepo   repositories.InventoryRepository
	supplierService SupplierService
	validate        *validator.Validate
	now             func() time.Time
	logger          *zap.Logger
}

func NewOrderService(
	purchaseRepo repositories.PurchaseRepository,
	salesRepo repositories.SalesRepository,
	inventoryRepo repositories.InventoryRepository,
	supplierService SupplierService,
	validate *validator.Validate,
	now func() time.Time,
	logger *zap.Logger,
) OrderServiceInterface {
	if now == nil {
		now = time.Now
	}
	return &orderService{
		purchaseRepo:    purchaseRepo,
		salesRepo:       salesRepo,
		inventoryRepo:   inventoryRepo,
		supplierService: supplierService,
		validate:        validate,
		now:             now,
		logger:          logger,
	}
}

func (s *orderService) ListPurchases(ctx context.Context, sheetID string) ([]models.PurchaseItem, error) {
	return s.purchaseRepo.List(ctx, sheetID)
}

func (s *orderService) ListSales(ctx context.Context, sheetID string) ([]models.SalesItem, error) {
	return s.salesRepo.List(ctx, sheetID)
}

func (s *orderService) RecordPurchase(ctx context.Context, sheetID string, p *models.PurchaseItem) (*StockChange, error) {
	p.Product = strings.TrimSpace(p.Product)
	if err := s.validate.Struct(p); err != nil {
		return nil, fmt.Errorf("invalid purchase: %w", err)
	}
	now := s.now()
	if p.Value == 0 {
		p.Value = p.Quantity * p.PricePerUnit
	}
	if p.DateOfReceiving == "" {
		p.DateOfReceiving = now.Format("2006-01-02")
	}
	p.Timestamp = now.Format(time.RFC3339)

	if err := s.purchaseRepo.Create(ctx, sheetID, p); err != nil {
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}

	if p.Supplier != "" {
		s.ensureCounterpart(ctx, sheetID, &models.Supplier{Supplier: p.Supplier})
	}

	return s.adjustStock(ctx, sheetID, p.Product, p.Quantity, p.Unit, p.PricePerUnit, true)
}

func (s *orderService) RecordSale(ctx context.Context, sheetID string, sale *models.SalesItem) (*StockChange, error) {
	sale.Product = strings.TrimSpace(sale.Product)
	if err := s.validate.Struct(sale); err != nil {
		return nil, fmt.Errorf("invalid sale: %w", err)
	}
	now := s.now()
	if sale.Value == 0 {
		sale.Value = sale.Quantity * sale.PricePerUnit
	}
	if sale.DateOfIssue == "" {
		sale.DateOfIssue = now.Format("2006-01-02")
	}
	sale.Timestamp = now.Format(time.RFC3339)

	if err := s.salesRepo.Create(ctx, sheetID, sale); err != nil {
		return nil, fmt.Errorf("failed to record sale: %w", err)
	}

	if sale.CompanyName != "" {
		s.ensureCounterpart(ctx, sheetID, &models.Supplier{CompanyName: sale.CompanyName})
	}

	// Selling more than is in stock is allowed; stock goes negative.
	return s.adjustStock(ctx, sheetID, sale.Product, -sale.Quantity, sale.Unit, sale.PricePerUnit, false)
}

func (s *orderService) ensureCounterpart(ctx context.Context, sheetID string, supplier *models.Supplier) {
	added, err := s.supplierService.Ensure(ctx, sheetID, supplier)
	if err != nil {
		s.logger.Warn("failed to register counterpart", zap.String("sheet_id", sheetID), zap.String("name", supplier.Name()), zap.Error(err))
		return
	}
	if added {
		s.logger.Debug("counterpart registered", zap.String("sheet_id", sheetID), zap.String("name", supplier.Name()))
	}
}

func (s *orderService) adjustStock(ctx context.Context, sheetID, product string, delta float64, unit string, price float64, createIfMissing bool) (*StockChange, error) {
	item, err := s.inventoryRepo.FindByProduct(ctx, sheetID, product)
	if err != nil {
		return nil, s.notAdjusted(sheetID, product, err)
	}

	if item == nil {
		if !createIfMissing {
			return nil, s.notAdjusted(sheetID, product, ErrProductNotFound)
		}
		item = &models.InventoryItem{
			Product:      product,
			Unit:         unit,
			Stock:        delta,
			PricePerUnit: price,
			Value:        delta * price,
			Timestamp:    s.now().Format(time.RFC3339),
		}
		if err := s.inventoryRepo.Create(ctx, sheetID, item); err != nil {
			return nil, s.notAdjusted(sheetID, product, err)
		}
		item.Status = item.CurrentStatus()
		return &StockChange{Product: product, NewStock: item.Stock, Created: true, Item: item}, nil
	}

	old := item.Stock
	item.Stock = old + delta
	if item.PricePerUnit == 0 {
		item.PricePerUnit = price
	}
	item.Value = item.Stock * item.PricePerUnit
	if err := s.inventoryRepo.Update(ctx, sheetID, item); err != nil {
		return nil, s.notAdjusted(sheetID, product, err)
	}
	item.Status = item.CurrentStatus()

	s.logger.Info("stock adjusted",
		zap.String("sheet_id", sheetID),
		zap.String("product", product),
		zap.Float64("old_stock", old),
		zap.Float64("new_stock", item.Stock))
	return &StockChange{Product: item.Product, OldStock: old, NewStock: item.Stock, Item: item}, nil
}

func (s *orderService) notAdjusted(sheetID, product string, cause error) error {
	s.logger.Error("inventory not adjusted after record was saved",
		zap.String("sheet_id", sheetID), zap.String("product", product), zap.Error(cause))
	return fmt.Errorf("%w: %w", ErrInventoryNotAdjusted, cause)
}

// IsInventoryNotAdjusted reports a partial write.
func IsInventoryNotAdjusted(err error) bool {
	return errors.Is(err, ErrInventoryNotAdjusted)
}
