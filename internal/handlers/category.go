package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkostrikov/marketplace/internal/httperr"
	"github.com/mkostrikov/marketplace/internal/logging"
	"github.com/mkostrikov/marketplace/internal/models"
	"github.com/mkostrikov/marketplace/internal/store"
)

type CategoryHandler struct {
	Store *store.Store
}

func (h *CategoryHandler) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.Store.GetCategories(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list categories failed", "error", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, categories)
}

// CreateCategory is admin-only (enforced by the route group).
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create")

	var req struct {
		Name  string `json:"name"`
		Slug  string `json:"slug"`
		Color string `json:"color"`
		Icon  string `json:"icon"`
	}
	if err := c.Bind(&req); err != nil {
		return httperr.Validation("malformed request body")
	}
	if req.Name == "" || req.Slug == "" {
		return httperr.Validation("name and slug are required")
	}

	category := models.Category{
		Name:  req.Name,
		Slug:  req.Slug,
		Color: req.Color,
		Icon:  req.Icon,
	}
	if err := h.Store.CreateCategory(ctx, &category); err != nil {
		if err == store.ErrConflict {
			return httperr.Conflict("category name or slug already exists")
		}
		l.Error("create category failed", "error", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusCreated, category)
}
