package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkostrikov/marketplace/internal/httperr"
	"github.com/mkostrikov/marketplace/internal/logging"
	"github.com/mkostrikov/marketplace/internal/mykafka"
	"github.com/mkostrikov/marketplace/internal/store"
)

type CartHandler struct {
	Store    *store.Store
	Producer *mykafka.Producer
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	items, err := h.Store.GetUserCart(ctx, identity)
	if err != nil {
		logging.FromContext(ctx).Error("list cart failed", "error", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, items)
}

// AddToCart increments the existing row for this product when there is one.
func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	var req struct {
		ProductID int `json:"product_id"`
		Quantity  int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return httperr.Validation("malformed request body")
	}
	if req.ProductID <= 0 {
		return httperr.Validation("product_id is required")
	}

	product, err := h.Store.GetProduct(ctx, req.ProductID)
	if err != nil {
		l.Error("get product failed", "error", err)
		return httperr.Internal()
	}
	if product == nil {
		return httperr.NotFound("product not found")
	}

	item, err := h.Store.AddToCart(ctx, identity, req.ProductID, req.Quantity)
	if err != nil {
		l.Error("add to cart failed", "error", err)
		return httperr.Internal()
	}

	publish(c, h.Producer, "cart_events", identity, map[string]any{
		"type":      "cart_item_added",
		"userID":    identity,
		"productID": req.ProductID,
		"quantity":  item.Quantity,
	})

	return c.JSON(http.StatusOK, item)
}

// UpdateCartItem sets an absolute quantity on a row the caller owns.
func (h *CartHandler) UpdateCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return httperr.Validation("malformed request body")
	}
	if req.Quantity < 1 {
		return httperr.Validation("quantity must be at least 1")
	}

	existing, err := h.Store.GetCartItem(ctx, id)
	if err != nil {
		l.Error("get cart item failed", "error", err)
		return httperr.Internal()
	}
	if existing == nil {
		return httperr.NotFound("cart item not found")
	}
	if existing.UserID != identity {
		return httperr.Forbidden("not your cart item")
	}

	item, err := h.Store.UpdateCartItem(ctx, id, req.Quantity)
	if err != nil {
		l.Error("update cart item failed", "error", err)
		return httperr.Internal()
	}
	if item == nil {
		return httperr.NotFound("cart item not found")
	}

	publish(c, h.Producer, "cart_events", identity, map[string]any{
		"type":     "cart_item_updated",
		"userID":   identity,
		"itemID":   id,
		"quantity": item.Quantity,
	})

	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	existing, err := h.Store.GetCartItem(ctx, id)
	if err != nil {
		l.Error("get cart item failed", "error", err)
		return httperr.Internal()
	}
	if existing == nil {
		return httperr.NotFound("cart item not found")
	}
	if existing.UserID != identity {
		return httperr.Forbidden("not your cart item")
	}

	if err := h.Store.RemoveFromCart(ctx, id); err != nil {
		l.Error("remove cart item failed", "error", err)
		return httperr.Internal()
	}

	publish(c, h.Producer, "cart_events", identity, map[string]any{
		"type":   "cart_item_removed",
		"userID": identity,
		"itemID": id,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()

	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	if err := h.Store.ClearCart(ctx, identity); err != nil {
		logging.FromContext(ctx).Error("clear cart failed", "error", err)
		return httperr.Internal()
	}

	publish(c, h.Producer, "cart_events", identity, map[string]any{
		"type":   "cart_cleared",
		"userID": identity,
	})

	return c.NoContent(http.StatusNoContent)
}
