package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mkostrikov/marketplace/internal/models"
	"github.com/mkostrikov/marketplace/internal/store"
)

type testEnv struct {
	store *store.Store
	echo  *echo.Echo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Favorite{},
		&models.CartItem{},
		&models.Order{},
		&models.SellerApplication{},
		&models.RefreshToken{},
	))

	return &testEnv{store: store.New(db), echo: echo.New()}
}

// request builds an echo context carrying the given identity and role, the
// way the auth middleware would have set them.
func (env *testEnv) request(t *testing.T, method, path string, body any, identity string, role models.Role) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	c := env.echo.NewContext(req, rec)
	if identity != "" {
		c.Set("identity", identity)
		c.Set("role", role)
	}
	return c, rec
}

func (env *testEnv) seedUser(t *testing.T, id string, role models.Role) *models.User {
	t.Helper()
	user := models.User{
		ID:           id,
		Email:        id + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, env.store.CreateUser(t.Context(), &user))
	return &user
}

func (env *testEnv) seedProduct(t *testing.T, sellerID string, approved bool) *models.Product {
	t.Helper()
	product := models.Product{
		Name:       "test product",
		Price:      9.99,
		SellerID:   sellerID,
		CategoryID: 1,
		IsApproved: approved,
	}
	require.NoError(t, env.store.CreateProduct(t.Context(), &product))
	return &product
}

// requireHTTPError asserts that a handler returned an echo error with the
// given status code.
func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T", err)
	require.Equal(t, code, he.Code)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
