package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"sheetmart/internal/caching"
	"sheetmart/internal/models"
	"sheetmart/internal/records"
	"sheetmart/internal/sheets"

	"go.uber.org/zap"
)

var ErrDirectoryNotConfigured = errors.New("master directory sheet id is not configured")

// TenantRepository is the master directory.
type TenantRepository interface {
	List(ctx context.Context) ([]*models.Tenant, error)
	// FindByID returns nil, nil when no tenant has the id.
	FindByID(ctx context.Context, id string) (*models.Tenant, error)
	FindByUsername(ctx context.Context, username string) (*models.Tenant, error)
	Create(ctx context.Context, tenant *models.Tenant) error
}

type tenantRepo struct {
	clients       sheetTable
	masterSheetID string
	cache         caching.CacheService
	cacheTTL      time.Duration
	logger        *zap.Logger
}

// NewTenantRepo reads the Clients tab of the master sheet on every call.
func NewTenantRepo(store sheets.TabularStore, masterSheetID string, logger *zap.Logger) TenantRepository {
	return &tenantRepo{
		clients:       sheetTable{store: store, table: records.ClientsTable},
		masterSheetID: masterSheetID,
		logger:        logger,
	}
}

// NewCachedTenantRepo keeps a directory snapshot in cache for ttl. A zero ttl
// or nil cache behaves like NewTenantRepo.
func NewCachedTenantRepo(store sheets.TabularStore, masterSheetID string, cache caching.CacheService, ttl time.Duration, logger *zap.Logger) TenantRepository {
	r := NewTenantRepo(store, masterSheetID, logger).(*tenantRepo)
	if cache != nil && ttl > 0 {
		r.cache = cache
		r.cacheTTL = ttl
	}
	return r
}

func (r *tenantRepo) List(ctx context.Context) ([]*models.Tenant, error) {
	if r.masterSheetID == "" {
		return nil, ErrDirectoryNotConfigured
	}

	if r.cache != nil {
		cached, err := r.cache.GetTenants(ctx, r.masterSheetID)
		if err != nil {
			r.logger.Warn("directory cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	grid, err := r.clients.read(ctx, r.masterSheetID)
	if err != nil {
		return nil, err
	}
	tenants := records.DecodeTenants(grid)

	if r.cache != nil {
		if err := r.cache.SetTenants(ctx, r.masterSheetID, tenants, r.cacheTTL); err != nil {
			r.logger.Warn("directory cache write failed", zap.Error(err))
		}
	}
	return tenants, nil
}

func (r *tenantRepo) FindByID(ctx context.Context, id string) (*models.Tenant, error) {
	tenants, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tenants {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (r *tenantRepo) FindByUsername(ctx context.Context, username string) (*models.Tenant, error) {
	tenants, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tenants {
		if t.Username != "" && strings.EqualFold(t.Username, username) {
			return t, nil
		}
	}
	return nil, nil
}

func (r *tenantRepo) Create(ctx context.Context, tenant *models.Tenant) error {
	if r.masterSheetID == "" {
		return ErrDirectoryNotConfigured
	}

	err := r.clients.append(ctx, r.masterSheetID, func([][]string) []string {
		return records.EncodeTenant(tenant)
	})
	if err != nil {
		return err
	}

	if r.cache != nil {
		if err := r.cache.InvalidateTenants(ctx, r.masterSheetID); err != nil {
			r.logger.Warn("directory cache invalidation failed", zap.Error(err))
		}
	}
	return nil
}
