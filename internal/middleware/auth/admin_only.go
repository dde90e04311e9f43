package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/mkostrikov/marketplace/internal/httperr"
	"github.com/mkostrikov/marketplace/internal/models"
)

// RequireAdmin admits admins only. A valid non-admin identity gets
// Forbidden, which is distinct from the Unauthenticated of a missing or
// broken session.
func (t *TokenService) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return t.requireRole(next, func(r models.Role) bool { return r.IsAdmin() })
}

// RequireSeller admits sellers and admins.
func (t *TokenService) RequireSeller(next echo.HandlerFunc) echo.HandlerFunc {
	return t.requireRole(next, func(r models.Role) bool { return r.CanSell() })
}

func (t *TokenService) requireRole(next echo.HandlerFunc, allowed func(models.Role) bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		newAccess, newRefresh, role, err := t.CheckCookie(c)
		if err != nil {
			return err
		}

		if !allowed(role) {
			return httperr.Forbidden("insufficient role")
		}

		if newRefresh != "" {
			c.SetCookie(CreateCookie("accessToken", newAccess, "/", time.Now().Add(AccessTokenTTL)))
			c.SetCookie(CreateCookie("refreshToken", newRefresh, "/", time.Now().Add(RefreshTokenTTL)))

			token, _ := jwt.Parse(newAccess, func(j *jwt.Token) (interface{}, error) { return t.JWTSecret, nil })
			setUserContext(c, token.Claims.(jwt.MapClaims))
		}
		return next(c)
	}
}
