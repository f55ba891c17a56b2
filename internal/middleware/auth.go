package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"canela-backend/internal/model"
	"canela-backend/internal/service"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// Auth verifies the bearer token and stores the caller's identity on the
// echo context. Tokens are stateless; revocation before expiry is not
// possible.
func Auth(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Auth failed")
			}

			claims, err := authService.VerifyToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Auth failed")
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextRole, claims.Role)
			return next(c)
		}
	}
}

// RequireAdmin guards admin-only routes; it must run after Auth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Role(c) != model.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
			}
			return next(c)
		}
	}
}

func UserID(c echo.Context) uint {
	id, _ := c.Get(ContextUserID).(uint)
	return id
}

func Role(c echo.Context) string {
	role, _ := c.Get(ContextRole).(string)
	return role
}
