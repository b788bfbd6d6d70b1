package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sheetmart/internal/analytics"
	"sheetmart/internal/models"
	"sheetmart/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type InventoryService interface {
	List(ctx context.Context, sheetID string) ([]models.InventoryItem, error)
	Get(ctx context.Context, sheetID, product string) (*models.InventoryItem, error)
	LowStock(ctx context.Context, sheetID string) ([]models.InventoryItem, error)
	Create(ctx context.Context, sheetID string, item *models.InventoryItem) error
	UpdateThresholds(ctx context.Context, sheetID, product string, update *models.ThresholdUpdate) (*models.InventoryItem, error)
	Delete(ctx context.Context, sheetID, product string) error
}

type inventoryService struct {
	repo     repositories.InventoryRepository
	validate *validator.Validate
	now      func() time.Time
	logger   *zap.Logger
}

func NewInventoryService(repo repositories.InventoryRepository, validate *validator.Validate, now func() time.Time, logger *zap.Logger) InventoryService {
	if now == nil {
		now = time.Now
	}
	return &inventoryService{repo: repo, validate: validate, now: now, logger: logger}
}

func (s *inventoryService) List(ctx context.Context, sheetID string) ([]models.InventoryItem, error) {
	return s.repo.List(ctx, sheetID)
}

func (s *inventoryService) Get(ctx context.Context, sheetID, product string) (*models.InventoryItem, error) {
	item, err := s.repo.FindByProduct(ctx, sheetID, product)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrProductNotFound
	}
	return item, nil
}

func (s *inventoryService) LowStock(ctx context.Context, sheetID string) ([]models.InventoryItem, error) {
	items, err := s.repo.List(ctx, sheetID)
	if err != nil {
		return nil, err
	}
	return analytics.LowStockItems(items), nil
}

func (s *inventoryService) Create(ctx context.Context, sheetID string, item *models.InventoryItem) error {
	item.Product = strings.TrimSpace(item.Product)
	if err := s.validate.Struct(item); err != nil {
		return fmt.Errorf("invalid inventory item: %w", err)
	}
	existing, err := s.repo.FindByProduct(ctx, sheetID, item.Product)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrProductExists
	}

	item.Value = item.Stock * item.PricePerUnit
	item.Timestamp = s.now().Format(time.RFC3339)
	if err := s.repo.Create(ctx, sheetID, item); err != nil {
		return err
	}
	item.Status = item.CurrentStatus()
	return nil
}

func (s *inventoryService) UpdateThresholds(ctx context.Context, sheetID, product string, update *models.ThresholdUpdate) (*models.InventoryItem, error) {
	if err := s.validate.Struct(update); err != nil {
		return nil, fmt.Errorf("invalid update: %w", err)
	}
	item, err := s.Get(ctx, sheetID, product)
	if err != nil {
		return nil, err
	}

	if update.MinimumQuantity != nil {
		item.MinimumQuantity = *update.MinimumQuantity
	}
	if update.MaximumQuantity != nil {
		item.MaximumQuantity = *update.MaximumQuantity
	}
	if update.ReorderQuantity != nil {
		item.ReorderQuantity = *update.ReorderQuantity
	}
	if update.Category != nil {
		item.Category = *update.Category
	}
	if update.Unit != nil {
		item.Unit = *update.Unit
	}
	if update.PricePerUnit != nil {
		item.PricePerUnit = *update.PricePerUnit
		item.Value = item.Stock * item.PricePerUnit
	}

	if err := s.repo.Update(ctx, sheetID, item); err != nil {
		return nil, err
	}
	item.Status = item.CurrentStatus()
	return item, nil
}

func (s *inventoryService) Delete(ctx context.Context, sheetID, product string) error {
	n, err := s.repo.DeleteByProduct(ctx, sheetID, product)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProductNotFound
	}
	s.logger.Info("inventory rows deleted", zap.String("sheet_id", sheetID), zap.String("product", product), zap.Int("rows", n))
	return nil
}
