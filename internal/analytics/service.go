package analytics

import (
	"context"
	"time"

	"sheetmart/internal/models"
	"sheetmart/internal/repositories"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AnalyticsService builds dashboard metrics for one tenant spreadsheet. It
// re-reads the sheet on every call.
type AnalyticsService struct {
	inventoryRepo repositories.InventoryRepository
	purchaseRepo  repositories.PurchaseRepository
	salesRepo     repositories.SalesRepository
	now           func() time.Time
	logger        *zap.Logger
}

// Snapshot is everything a dashboard or summary email renders from.
type Snapshot struct {
	Inventory []models.InventoryItem
	Purchases []models.PurchaseItem
	Sales     []models.SalesItem
	Metrics   *models.DashboardMetrics
}

func NewAnalyticsService(
	inventoryRepo repositories.InventoryRepository,
	purchaseRepo repositories.PurchaseRepository,
	salesRepo repositories.SalesRepository,
	now func() time.Time,
	logger *zap.Logger,
) *AnalyticsService {
	if now == nil {
		now = time.Now
	}
	return &AnalyticsService{
		inventoryRepo: inventoryRepo,
		purchaseRepo:  purchaseRepo,
		salesRepo:     salesRepo,
		now:           now,
		logger:        logger,
	}
}

// Snapshot reads the three tabs concurrently and aggregates them.
func (s *AnalyticsService) Snapshot(ctx context.Context, sheetID string) (*Snapshot, error) {
	var snap Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.inventoryRepo.List(gctx, sheetID)
		snap.Inventory = items
		return err
	})
	g.Go(func() error {
		items, err := s.purchaseRepo.List(gctx, sheetID)
		snap.Purchases = items
		return err
	})
	g.Go(func() error {
		items, err := s.salesRepo.List(gctx, sheetID)
		snap.Sales = items
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap.Metrics = ComputeMetrics(snap.Inventory, snap.Purchases, snap.Sales, s.now())
	if snap.Metrics.DatesEstimated {
		s.logger.Debug("no dated records this week, using whole collections",
			zap.String("sheet_id", sheetID),
			zap.Int("purchases", len(snap.Purchases)),
			zap.Int("sales", len(snap.Sales)))
	}
	return &snap, nil
}

// DashboardMetrics returns only the aggregated metrics.
func (s *AnalyticsService) DashboardMetrics(ctx context.Context, sheetID string) (*models.DashboardMetrics, error) {
	snap, err := s.Snapshot(ctx, sheetID)
	if err != nil {
		return nil, err
	}
	return snap.Metrics, nil
}
