package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mkostrikov/marketplace/internal/hash"
	"github.com/mkostrikov/marketplace/internal/httperr"
	"github.com/mkostrikov/marketplace/internal/logging"
	authmw "github.com/mkostrikov/marketplace/internal/middleware/auth"
	"github.com/mkostrikov/marketplace/internal/models"
	"github.com/mkostrikov/marketplace/internal/mykafka"
	"github.com/mkostrikov/marketplace/internal/store"
)

// AuthHandler is the authentication collaborator: it issues identities and
// session cookies. Everything downstream only ever sees the identity string.
type AuthHandler struct {
	Store         *store.Store
	JWTSecret     []byte
	RefreshSecret []byte
	Producer      *mykafka.Producer
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := c.Bind(&req); err != nil {
		return httperr.Validation("malformed request body")
	}
	if req.Email == "" || req.Password == "" {
		return httperr.Validation("email and password are required")
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("hash failed", "error", err)
		return httperr.Internal()
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: pwHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         models.RoleBuyer,
	}
	if err := h.Store.CreateUser(ctx, &user); err != nil {
		if err == store.ErrConflict {
			return httperr.Conflict("user already exists")
		}
		l.Error("create user failed", "error", err)
		return httperr.Internal()
	}

	publish(c, h.Producer, "user_events", user.ID, map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return httperr.Validation("malformed request body")
	}

	user, err := h.Store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		l.Error("lookup failed", "error", err)
		return httperr.Internal()
	}
	if user == nil || !hash.CheckPassword(user.PasswordHash, req.Password) {
		return httperr.Unauthenticated("invalid credentials")
	}

	accessToken, err := authmw.SignAccessToken(user.ID, user.Role, h.JWTSecret)
	if err != nil {
		l.Error("sign access token failed", "error", err)
		return httperr.Internal()
	}
	refreshToken, err := authmw.SignRefreshToken(user.ID, user.Role, h.RefreshSecret)
	if err != nil {
		l.Error("sign refresh token failed", "error", err)
		return httperr.Internal()
	}
	if err := authmw.SaveRefreshToken(h.Store.DB, refreshToken, user.ID); err != nil {
		l.Error("save refresh token failed", "error", err)
		return httperr.Internal()
	}

	c.SetCookie(authmw.CreateCookie("accessToken", accessToken, "/", time.Now().Add(authmw.AccessTokenTTL)))
	c.SetCookie(authmw.CreateCookie("refreshToken", refreshToken, "/", time.Now().Add(authmw.RefreshTokenTTL)))

	publish(c, h.Producer, "user_events", user.ID, map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"role":          user.Role,
	})
}

func (h *AuthHandler) LogOut(c echo.Context) error {
	refreshCookie, err := c.Cookie("refreshToken")
	if err != nil {
		return httperr.Unauthenticated("missing auth cookie")
	}

	result := h.Store.DB.Model(&models.RefreshToken{}).
		Where("token = ?", refreshCookie.Value).
		Update("revoked", true)
	if result.Error != nil && result.Error != gorm.ErrRecordNotFound {
		logging.FromContext(c.Request().Context()).Error("revoke failed", "error", result.Error)
		return httperr.Internal()
	}

	expired := time.Now().Add(-1 * time.Hour)
	c.SetCookie(authmw.CreateCookie("accessToken", "", "/", expired))
	c.SetCookie(authmw.CreateCookie("refreshToken", "", "/", expired))

	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// CurrentUser returns the caller's own user row.
func (h *AuthHandler) CurrentUser(c echo.Context) error {
	ctx := c.Request().Context()

	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	user, err := h.Store.GetUser(ctx, identity)
	if err != nil {
		logging.FromContext(ctx).Error("get user failed", "error", err)
		return httperr.Internal()
	}
	if user == nil {
		return httperr.NotFound("user not found")
	}
	return c.JSON(http.StatusOK, user)
}
