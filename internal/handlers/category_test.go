package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkostrikov/marketplace/internal/models"
)

func TestCreateCategory(t *testing.T) {
	env := newTestEnv(t)
	h := &CategoryHandler{Store: env.store}
	admin := env.seedUser(t, "admin-1", models.RoleAdmin)

	c, rec := env.request(t, http.MethodPost, "/api/admin/categories", map[string]any{
		"name":  "Books",
		"slug":  "books",
		"color": "#000000",
		"icon":  "fa-book",
	}, admin.ID, admin.Role)

	require.NoError(t, h.CreateCategory(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decodeBody[models.Category](t, rec)
	assert.Equal(t, "books", created.Slug)
	assert.NotZero(t, created.ID)
}

func TestCreateCategory_DuplicateConflicts(t *testing.T) {
	env := newTestEnv(t)
	h := &CategoryHandler{Store: env.store}
	admin := env.seedUser(t, "admin-1", models.RoleAdmin)

	c, _ := env.request(t, http.MethodPost, "/api/admin/categories", map[string]any{
		"name": "Books", "slug": "books",
	}, admin.ID, admin.Role)
	require.NoError(t, h.CreateCategory(c))

	c, _ = env.request(t, http.MethodPost, "/api/admin/categories", map[string]any{
		"name": "Books", "slug": "books",
	}, admin.ID, admin.Role)
	requireHTTPError(t, h.CreateCategory(c), http.StatusConflict)
}

func TestCreateCategory_RequiresNameAndSlug(t *testing.T) {
	env := newTestEnv(t)
	h := &CategoryHandler{Store: env.store}
	admin := env.seedUser(t, "admin-1", models.RoleAdmin)

	c, _ := env.request(t, http.MethodPost, "/api/admin/categories", map[string]any{
		"name": "Books",
	}, admin.ID, admin.Role)
	requireHTTPError(t, h.CreateCategory(c), http.StatusBadRequest)
}

func TestGetCategories_ListsSeeded(t *testing.T) {
	env := newTestEnv(t)
	h := &CategoryHandler{Store: env.store}
	require.NoError(t, env.store.EnsureDefaultCategories(t.Context()))

	c, rec := env.request(t, http.MethodGet, "/api/categories", nil, "", "")
	require.NoError(t, h.GetCategories(c))

	listed := decodeBody[[]models.Category](t, rec)
	assert.Len(t, listed, 6)
}
