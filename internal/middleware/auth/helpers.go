package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mkostrikov/marketplace/internal/httperr"
	"github.com/mkostrikov/marketplace/internal/models"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// TokenService resolves the caller's identity from the auth cookies,
// rotating an expired access token off the stored refresh token. It is the
// only place identity enters the request context.
type TokenService struct {
	DB            *gorm.DB
	JWTSecret     []byte
	RefreshSecret []byte
}

func CreateCookie(name, value, path string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// CheckCookie validates the access cookie, falling back to refresh rotation
// when it is expired. Returns the (possibly new) access token, a new refresh
// token when rotation happened, and the caller's role.
func (t *TokenService) CheckCookie(c echo.Context) (string, string, models.Role, error) {
	asCookie, err := c.Cookie("accessToken")
	if err == nil {
		token, err := jwt.Parse(asCookie.Value, func(j *jwt.Token) (interface{}, error) {
			return t.JWTSecret, nil
		})
		if err == nil && token.Valid {
			claims := token.Claims.(jwt.MapClaims)
			role, ok := claimsRole(claims)
			if !ok {
				return "", "", "", httperr.Unauthenticated("invalid token claims")
			}
			setUserContext(c, claims)
			return asCookie.Value, "", role, nil
		}
		if !errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", "", httperr.Unauthenticated("invalid access token")
		}
	}

	rfCookie, err := c.Cookie("refreshToken")
	if err != nil {
		return "", "", "", httperr.Unauthenticated("missing auth cookie")
	}
	newAccess, newRefresh, claims, err := t.RotateToken(rfCookie.Value)
	if err != nil {
		return "", "", "", httperr.Unauthenticated("cannot refresh session")
	}

	role, ok := claimsRole(claims)
	if !ok {
		return "", "", "", httperr.Unauthenticated("invalid token claims")
	}
	return newAccess, newRefresh, role, nil
}

func (t *TokenService) RotateToken(rawToken string) (string, string, jwt.MapClaims, error) {
	claims, err := ValidateRefresh(rawToken, t.RefreshSecret, t.DB)
	if err != nil {
		return "", "", nil, err
	}

	userID, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)

	newAccess, err := SignAccessToken(userID, models.Role(role), t.JWTSecret)
	if err != nil {
		return "", "", nil, err
	}

	newRefresh, err := SignRefreshToken(userID, models.Role(role), t.RefreshSecret)
	if err != nil {
		return "", "", nil, err
	}

	if err := SaveRefreshToken(t.DB, newRefresh, userID); err != nil {
		return "", "", nil, err
	}

	return newAccess, newRefresh, claims, nil
}

func setUserContext(c echo.Context, claims jwt.MapClaims) {
	id, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	c.Set("identity", id)
	c.Set("role", models.Role(role))
}

func claimsRole(claims jwt.MapClaims) (models.Role, bool) {
	raw, ok := claims["role"].(string)
	if !ok {
		return "", false
	}
	return models.ParseRole(raw)
}

func ValidateRefresh(rawToken string, refreshSecret []byte, db *gorm.DB) (jwt.MapClaims, error) {
	t, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return refreshSecret, nil
	})
	if err != nil || !t.Valid {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("cannot parse claims")
	}

	if typ, ok := claims["typ"]; !ok || typ != "refresh" {
		return nil, fmt.Errorf("not a refresh token")
	}

	var stored models.RefreshToken
	if err := db.Where("token = ?", rawToken).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("refresh token not found")
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if stored.Revoked {
		return nil, fmt.Errorf("refresh token revoked")
	}
	if time.Now().Unix() > stored.ExpiresAt {
		return nil, fmt.Errorf("refresh token expired")
	}

	return claims, nil
}

func SignAccessToken(userID string, role models.Role, accessSecret []byte) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"exp":  time.Now().Add(AccessTokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(accessSecret)
}

func SignRefreshToken(userID string, role models.Role, refreshSecret []byte) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"exp":  time.Now().Add(RefreshTokenTTL).Unix(),
		"typ":  "refresh",
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(refreshSecret)
}

func SaveRefreshToken(db *gorm.DB, token, userID string) error {
	row := models.RefreshToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(RefreshTokenTTL).Unix(),
		Revoked:   false,
	}
	if err := db.Create(&row).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
