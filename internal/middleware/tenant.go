package middleware

import (
	"net/http"

	"sheetmart/internal/common"
	"sheetmart/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TenantMiddleware resolves the spreadsheet for the request from the
// clientId query parameter or cookie and stores it on the request context.
func TenantMiddleware(resolver services.TenantResolver, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rc := services.RequestContext{
				TenantID:        c.QueryParam(services.TenantCookie),
				RawCookieHeader: c.Request().Header.Get("Cookie"),
			}
			if cookie, err := c.Cookie(services.TenantCookie); err == nil {
				rc.CookieTenantID = cookie.Value
			}

			ctx := c.Request().Context()
			res := resolver.Resolve(ctx, rc)
			if res.SheetID == "" {
				logger.Warn("no sheet configured for request", zap.String("path", c.Path()))
				return c.JSON(http.StatusBadRequest, common.CreateErrorResponse("NO_SHEET", "no sheet configured", nil))
			}

			c.Set("tenant_source", res.Source)
			c.SetRequest(c.Request().WithContext(common.WithTenant(ctx, res.SheetID, res.TenantID)))
			return next(c)
		}
	}
}
