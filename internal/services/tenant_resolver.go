package services

import (
	"context"
	"net/url"
	"strings"

	"sheetmart/internal/repositories"

	"go.uber.org/zap"
)

// TenantCookie carries the tenant id between requests.
const TenantCookie = "clientId"

// RequestContext is what a request offers for picking its spreadsheet.
type RequestContext struct {
	// TenantID comes from an explicit clientId parameter.
	TenantID string
	// CookieTenantID comes from the structured cookie store.
	CookieTenantID string
	// RawCookieHeader is consulted when the structured cookie is unavailable.
	RawCookieHeader string
}

// Resolution is the outcome of resolving a request.
type Resolution struct {
	TenantID string
	SheetID  string
	Source   string
}

const (
	SourceParam   = "param"
	SourceCookie  = "cookie"
	SourceDefault = "default"
)

type TenantResolver interface {
	// ResolveSheetID returns "" only when no sheet can be resolved at all.
	ResolveSheetID(ctx context.Context, rc RequestContext) string
	Resolve(ctx context.Context, rc RequestContext) Resolution
}

type tenantResolver struct {
	tenantRepo     repositories.TenantRepository
	defaultSheetID string
	logger         *zap.Logger
}

func NewTenantResolver(tenantRepo repositories.TenantRepository, defaultSheetID string, logger *zap.Logger) TenantResolver {
	return &tenantResolver{tenantRepo: tenantRepo, defaultSheetID: defaultSheetID, logger: logger}
}

func (r *tenantResolver) ResolveSheetID(ctx context.Context, rc RequestContext) string {
	return r.Resolve(ctx, rc).SheetID
}

func (r *tenantResolver) Resolve(ctx context.Context, rc RequestContext) Resolution {
	tenantID, source := strings.TrimSpace(rc.TenantID), SourceParam
	if tenantID == "" {
		tenantID, source = strings.TrimSpace(rc.CookieTenantID), SourceCookie
	}
	if tenantID == "" {
		tenantID = CookieValue(rc.RawCookieHeader, TenantCookie)
	}
	if tenantID == "" {
		return Resolution{SheetID: r.defaultSheetID, Source: SourceDefault}
	}

	tenant, err := r.tenantRepo.FindByID(ctx, tenantID)
	switch {
	case err != nil:
		r.logger.Warn("tenant lookup failed, using default sheet",
			zap.String("tenant_id", tenantID), zap.String("source", source), zap.Error(err))
	case tenant == nil:
		r.logger.Info("tenant not found, using default sheet",
			zap.String("tenant_id", tenantID), zap.String("source", source))
	case tenant.SheetID == "":
		r.logger.Info("tenant has no sheet id, using default sheet",
			zap.String("tenant_id", tenantID), zap.String("source", source))
	default:
		return Resolution{TenantID: tenant.ID, SheetID: tenant.SheetID, Source: source}
	}
	return Resolution{SheetID: r.defaultSheetID, Source: SourceDefault}
}

// CookieValue extracts one cookie from a raw Cookie header.
func CookieValue(header, name string) string {
	for _, part := range strings.Split(header, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || strings.TrimSpace(key) != name {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)
		if unescaped, err := url.QueryUnescape(value); err == nil {
			value = unescaped
		}
		return value
	}
	return ""
}
