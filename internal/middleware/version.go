package middleware

import (
	"github.com/labstack/echo/v4"
)

// VersionHeader adds API and build version headers to every response of a
// route group.
func VersionHeader(apiVersion, buildVersion string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("X-API-Version", apiVersion)
			if buildVersion != "" {
				c.Response().Header().Set("X-Service-Version", buildVersion)
			}
			c.Set("api_version", apiVersion)
			return next(c)
		}
	}
}
