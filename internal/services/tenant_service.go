package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strconv"
	"strings"
	"time"

	"sheetmart/internal/models"
	"sheetmart/internal/records"
	"sheetmart/internal/repositories"
	"sheetmart/internal/sheets"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type TenantService interface {
	List(ctx context.Context) ([]*models.Tenant, error)
	Get(ctx context.Context, id string) (*models.Tenant, error)
	Create(ctx context.Context, req *models.CreateTenantRequest) (*models.Tenant, error)
	Authenticate(ctx context.Context, username, password string) (*models.Tenant, error)
}

type tenantService struct {
	repo     repositories.TenantRepository
	store    sheets.TabularStore
	validate *validator.Validate
	now      func() time.Time
	logger   *zap.Logger
}

func NewTenantService(repo repositories.TenantRepository, store sheets.TabularStore, validate *validator.Validate, now func() time.Time, logger *zap.Logger) TenantService {
	if now == nil {
		now = time.Now
	}
	return &tenantService{repo: repo, store: store, validate: validate, now: now, logger: logger}
}

func (s *tenantService) List(ctx context.Context) ([]*models.Tenant, error) {
	return s.repo.List(ctx)
}

func (s *tenantService) Get(ctx context.Context, id string) (*models.Tenant, error) {
	tenant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, ErrTenantNotFound
	}
	return tenant, nil
}

// Slugify keeps lowercase ASCII letters and digits only.
func Slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (s *tenantService) Create(ctx context.Context, req *models.CreateTenantRequest) (*models.Tenant, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid tenant: %w", err)
	}

	now := s.now()
	tenant := &models.Tenant{
		ID:        "client_" + strconv.FormatInt(now.UnixMilli(), 10),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		LogoURL:   strings.TrimSpace(req.LogoURL),
		SheetID:   strings.TrimSpace(req.SheetID),
		Username:  strings.TrimSpace(req.Username),
		Password:  req.Password,
		CreatedAt: now.Format(time.RFC3339),
	}
	if tenant.Username == "" {
		tenant.Username = Slugify(tenant.Name)
	}
	if tenant.Username == "" {
		tenant.Username = tenant.ID
	}
	if tenant.Password == "" {
		tenant.Password = tenant.Username + "@123"
	}

	existing, err := s.repo.FindByUsername(ctx, tenant.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	for _, table := range records.TenantTables {
		if err := sheets.EnsureTab(ctx, s.store, tenant.SheetID, table.Tab, table.Headers()); err != nil {
			return nil, fmt.Errorf("failed to prepare tenant sheet: %w", err)
		}
	}

	if err := s.repo.Create(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	s.logger.Info("tenant created", zap.String("tenant_id", tenant.ID), zap.String("sheet_id", tenant.SheetID))
	return tenant, nil
}

func (s *tenantService) Authenticate(ctx context.Context, username, password string) (*models.Tenant, error) {
	tenant, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if tenant == nil || tenant.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(tenant.Password), []byte(password)) != 1 {
		return nil, ErrInvalidCredentials
	}
	return tenant, nil
}
