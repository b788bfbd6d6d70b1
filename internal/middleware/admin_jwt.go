package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/random"
	"go.uber.org/zap"
)

const adminRole = "admin"

// AdminClaims are carried by admin bearer tokens.
type AdminClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AdminSecret returns secret, or a random one when it is empty. Tokens signed
// with a generated secret stop working on restart.
func AdminSecret(secret string, logger *zap.Logger) string {
	if secret != "" {
		return secret
	}
	logger.Warn("ADMIN_JWT_SECRET not set, using a generated secret")
	return random.String(32)
}

// AdminJWT guards admin routes with an HS256 bearer token.
func AdminJWT(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(AdminClaims)
		},
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return
			}
			if claims, ok := token.Claims.(*AdminClaims); ok {
				c.Set("admin", claims.Username)
			}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	})
}

// RequireAdmin rejects tokens that do not carry the admin role.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
		}
		claims, ok := token.Claims.(*AdminClaims)
		if !ok || claims.Role != adminRole {
			return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
		}
		return next(c)
	}
}

// IssueAdminToken signs a token for username valid for ttl.
func IssueAdminToken(secret, username string, now time.Time, ttl time.Duration) (string, error) {
	claims := &AdminClaims{
		Username: username,
		Role:     adminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
