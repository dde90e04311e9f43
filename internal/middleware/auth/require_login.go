package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// RequireUser admits any authenticated identity, refreshing the access
// token from the refresh cookie when needed.
func (t *TokenService) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		newAccess, newRefresh, _, err := t.CheckCookie(c)
		if err != nil {
			return err
		}

		if newRefresh == "" {
			return next(c)
		}

		c.SetCookie(CreateCookie("accessToken", newAccess, "/", time.Now().Add(AccessTokenTTL)))
		c.SetCookie(CreateCookie("refreshToken", newRefresh, "/", time.Now().Add(RefreshTokenTTL)))

		token, _ := jwt.Parse(newAccess, func(j *jwt.Token) (interface{}, error) { return t.JWTSecret, nil })
		setUserContext(c, token.Claims.(jwt.MapClaims))
		return next(c)
	}
}
