package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"sheetmart/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type CacheService interface {
	// Tenant directory snapshots, keyed by master sheet id
	GetTenants(ctx context.Context, masterSheetID string) ([]*models.Tenant, error)
	SetTenants(ctx context.Context, masterSheetID string, tenants []*models.Tenant, ttl time.Duration) error
	InvalidateTenants(ctx context.Context, masterSheetID string) error

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	ResetRateLimit(ctx context.Context, key string) error

	Ping(ctx context.Context) error
}

// cachedTenant keeps the password, which models.Tenant never serializes.
type cachedTenant struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	LogoURL   string `json:"logo_url"`
	SheetID   string `json:"sheet_id"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	CreatedAt string `json:"created_at"`
}

type redisCacheService struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisCacheService(addr, password string, db int, logger *zap.Logger) CacheService {
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsedAddr = strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("redis ping failed on initialization", zap.String("addr", parsedAddr), zap.Error(err))
	} else {
		logger.Debug("redis connection established", zap.String("addr", parsedAddr))
	}

	return NewCacheServiceWithClient(client, logger)
}

func NewCacheServiceWithClient(client *redis.Client, logger *zap.Logger) CacheService {
	return &redisCacheService{client: client, logger: logger}
}

func tenantsKey(masterSheetID string) string {
	return fmt.Sprintf("sheetmart:directory:%s", masterSheetID)
}

// GetTenants returns nil, nil on a cache miss.
func (r *redisCacheService) GetTenants(ctx context.Context, masterSheetID string) ([]*models.Tenant, error) {
	data, err := r.client.Get(ctx, tenantsKey(masterSheetID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var cached []cachedTenant
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}
	tenants := make([]*models.Tenant, len(cached))
	for i, c := range cached {
		t := models.Tenant(c)
		tenants[i] = &t
	}
	return tenants, nil
}

func (r *redisCacheService) SetTenants(ctx context.Context, masterSheetID string, tenants []*models.Tenant, ttl time.Duration) error {
	cached := make([]cachedTenant, len(tenants))
	for i, t := range tenants {
		cached[i] = cachedTenant(*t)
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, tenantsKey(masterSheetID), data, ttl).Err()
}

func (r *redisCacheService) InvalidateTenants(ctx context.Context, masterSheetID string) error {
	return r.client.Del(ctx, tenantsKey(masterSheetID)).Err()
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	cacheKey := fmt.Sprintf("sheetmart:ratelimit:%s", key)
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, cacheKey)
	ttl := pipe.TTL(ctx, cacheKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, err
	}

	// A counter without a TTL would never reset, so arm the window whenever one is missing.
	if ttl.Val() < 0 {
		if err := r.client.Expire(ctx, cacheKey, window).Err(); err != nil {
			return true, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return incr.Val() > int64(limit), nil
}

func (r *redisCacheService) ResetRateLimit(ctx context.Context, key string) error {
	return r.client.Del(ctx, fmt.Sprintf("sheetmart:ratelimit:%s", key)).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
