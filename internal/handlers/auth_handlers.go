package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"sheetmart/internal/caching"
	"sheetmart/internal/middleware"
	"sheetmart/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	loginAttemptLimit  = 10
	loginAttemptWindow = 15 * time.Minute
	tenantCookieMaxAge = 30 * 24 * 60 * 60
	adminTokenTTL      = 12 * time.Hour
)

// AuthConfig holds the admin credentials and cookie policy.
type AuthConfig struct {
	AdminUsername string
	AdminPassword string
	AdminSecret   string
	SecureCookies bool
}

// AuthHandlers handles tenant login and admin token issue
type AuthHandlers struct {
	tenantService services.TenantService
	cache         caching.CacheService
	cfg           AuthConfig
	now           func() time.Time
	logger        *zap.Logger
}

// NewAuthHandlers builds the handlers. cache may be nil, which disables
// login rate limiting.
func NewAuthHandlers(tenantService services.TenantService, cache caching.CacheService, cfg AuthConfig, now func() time.Time, logger *zap.Logger) *AuthHandlers {
	if now == nil {
		now = time.Now
	}
	return &AuthHandlers{tenantService: tenantService, cache: cache, cfg: cfg, now: now, logger: logger}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Tenant and admin logins count against separate per-IP buckets.
func (h *AuthHandlers) rateLimited(c echo.Context, key string) bool {
	if h.cache == nil {
		return false
	}
	limited, err := h.cache.IsRateLimited(c.Request().Context(), key, loginAttemptLimit, loginAttemptWindow)
	if err != nil {
		h.logger.Warn("rate limit check failed", zap.Error(err))
		return false
	}
	return limited
}

func (h *AuthHandlers) resetRateLimit(c echo.Context, key string) {
	if h.cache == nil {
		return
	}
	if err := h.cache.ResetRateLimit(c.Request().Context(), key); err != nil {
		h.logger.Warn("failed to reset rate limit", zap.Error(err))
	}
}

func (h *AuthHandlers) tenantCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     services.TenantCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

// Login handles POST /v1/auth/login. On success the clientId cookie selects
// the tenant's sheet for later requests.
func (h *AuthHandlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Username and password are required")
	}
	key := "login:" + c.RealIP()
	if h.rateLimited(c, key) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "Too many login attempts")
	}

	tenant, err := h.tenantService.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	h.resetRateLimit(c, key)

	c.SetCookie(h.tenantCookie(tenant.ID, tenantCookieMaxAge))
	h.logger.Info("tenant logged in", zap.String("tenant_id", tenant.ID))
	return c.JSON(http.StatusOK, map[string]interface{}{"tenant": tenant})
}

// Logout handles POST /v1/auth/logout
func (h *AuthHandlers) Logout(c echo.Context) error {
	c.SetCookie(h.tenantCookie("", -1))
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// AdminToken handles POST /v1/auth/admin-token
func (h *AuthHandlers) AdminToken(c echo.Context) error {
	if h.cfg.AdminUsername == "" || h.cfg.AdminPassword == "" {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Admin login is not configured")
	}
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	key := "admin-token:" + c.RealIP()
	if h.rateLimited(c, key) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "Too many login attempts")
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.cfg.AdminPassword)) == 1
	if !userOK || !passOK {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	now := h.now()
	token, err := middleware.IssueAdminToken(h.cfg.AdminSecret, req.Username, now, adminTokenTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to issue token")
	}
	h.resetRateLimit(c, key)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_at":   now.Add(adminTokenTTL),
	})
}
