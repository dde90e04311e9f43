package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkostrikov/marketplace/internal/httperr"
	"github.com/mkostrikov/marketplace/internal/logging"
	"github.com/mkostrikov/marketplace/internal/models"
	"github.com/mkostrikov/marketplace/internal/mykafka"
	"github.com/mkostrikov/marketplace/internal/store"
	"github.com/mkostrikov/marketplace/internal/util"
)

type ProductHandler struct {
	Store    *store.Store
	Producer *mykafka.Producer
}

// GetProducts lists approved products, optionally filtered by categoryId.
// A page query param switches the listing to paginated mode.
func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()

	categoryID := parseIntDefault(c.QueryParam("categoryId"), 0)
	offset, limit := 0, 0
	if c.QueryParam("page") != "" {
		offset, limit = util.Page(
			parseIntDefault(c.QueryParam("page"), 1),
			parseIntDefault(c.QueryParam("size"), 0),
		)
	}
	products, err := h.Store.GetProducts(ctx, categoryID, offset, limit)
	if err != nil {
		logging.FromContext(ctx).Error("list products failed", "error", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetRecommendedProducts(c echo.Context) error {
	ctx := c.Request().Context()

	limit := parseIntDefault(c.QueryParam("limit"), 4)
	products, err := h.Store.GetRecommendedProducts(ctx, limit)
	if err != nil {
		logging.FromContext(ctx).Error("list recommended failed", "error", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, products)
}

// GetProduct returns the row regardless of approval state, so sellers can
// inspect their own pending listings.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.Store.GetProduct(ctx, id)
	if err != nil {
		logging.FromContext(ctx).Error("get product failed", "error", err)
		return httperr.Internal()
	}
	if product == nil {
		return httperr.NotFound("product not found")
	}
	return c.JSON(http.StatusOK, product)
}

// CreateProduct requires a seller or admin (route group). Admin-created
// products go live immediately; seller-created ones await approval.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}
	role := roleFromContext(c)

	var req struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		ImageURL    string  `json:"image_url"`
		CategoryID  int     `json:"category_id"`
	}
	if err := c.Bind(&req); err != nil {
		return httperr.Validation("malformed request body")
	}
	if req.Name == "" || req.Price <= 0 || req.CategoryID <= 0 {
		return httperr.Validation("name, positive price and category_id are required")
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		SellerID:    identity,
		CategoryID:  req.CategoryID,
		IsApproved:  role.IsAdmin(),
	}
	if err := h.Store.CreateProduct(ctx, &product); err != nil {
		l.Error("create product failed", "error", err)
		return httperr.Internal()
	}

	publish(c, h.Producer, "product_events", identity, map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"sellerID":  identity,
	})

	return c.JSON(http.StatusCreated, product)
}

// PatchProduct merges the supplied fields. Only the owning seller or an
// admin may touch a product, and only an admin may flip is_approved.
func (h *ProductHandler) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch")

	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}
	role := roleFromContext(c)

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.Store.GetProduct(ctx, id)
	if err != nil {
		l.Error("get product failed", "error", err)
		return httperr.Internal()
	}
	if product == nil {
		return httperr.NotFound("product not found")
	}
	if product.SellerID != identity && !role.IsAdmin() {
		return httperr.Forbidden("not your product")
	}

	var req struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		ImageURL    *string  `json:"image_url"`
		CategoryID  *int     `json:"category_id"`
		IsApproved  *bool    `json:"is_approved"`
	}
	if err := c.Bind(&req); err != nil {
		return httperr.Validation("malformed request body")
	}
	if req.Price != nil && *req.Price <= 0 {
		return httperr.Validation("price must be positive")
	}
	if req.IsApproved != nil && !role.IsAdmin() {
		return httperr.Forbidden("only admins may change approval")
	}

	updated, err := h.Store.UpdateProduct(ctx, id, store.UpdateProductParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
		IsApproved:  req.IsApproved,
	})
	if err != nil {
		l.Error("update product failed", "error", err)
		return httperr.Internal()
	}
	if updated == nil {
		return httperr.NotFound("product not found")
	}

	publish(c, h.Producer, "product_events", identity, map[string]any{
		"type":      "product_updated",
		"productID": updated.ID,
	})

	return c.JSON(http.StatusOK, updated)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}
	role := roleFromContext(c)

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.Store.GetProduct(ctx, id)
	if err != nil {
		l.Error("get product failed", "error", err)
		return httperr.Internal()
	}
	if product == nil {
		return httperr.NotFound("product not found")
	}
	if product.SellerID != identity && !role.IsAdmin() {
		return httperr.Forbidden("not your product")
	}

	if err := h.Store.DeleteProduct(ctx, id); err != nil {
		l.Error("delete product failed", "error", err)
		return httperr.Internal()
	}

	publish(c, h.Producer, "product_events", identity, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	return c.NoContent(http.StatusNoContent)
}
