package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkostrikov/marketplace/internal/httperr"
	"github.com/mkostrikov/marketplace/internal/logging"
	"github.com/mkostrikov/marketplace/internal/models"
	"github.com/mkostrikov/marketplace/internal/mykafka"
	"github.com/mkostrikov/marketplace/internal/store"
)

type OrderHandler struct {
	Store    *store.Store
	Producer *mykafka.Producer
}

// GetOrders lists the caller's orders as buyer, newest first.
func (h *OrderHandler) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()

	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	orders, err := h.Store.GetUserOrders(ctx, identity)
	if err != nil {
		logging.FromContext(ctx).Error("list orders failed", "error", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, orders)
}

// GetSellerOrders lists orders for the caller's products (seller view).
func (h *OrderHandler) GetSellerOrders(c echo.Context) error {
	ctx := c.Request().Context()

	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	orders, err := h.Store.GetSellerOrders(ctx, identity)
	if err != nil {
		logging.FromContext(ctx).Error("list seller orders failed", "error", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, orders)
}

// CreateOrder inserts a pending order. The seller identity is denormalized
// from the product row at creation time, never taken from the request.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	var req struct {
		ProductID  int     `json:"product_id"`
		Quantity   int     `json:"quantity"`
		TotalPrice float64 `json:"total_price"`
	}
	if err := c.Bind(&req); err != nil {
		return httperr.Validation("malformed request body")
	}
	if req.ProductID <= 0 || req.Quantity < 1 || req.TotalPrice <= 0 {
		return httperr.Validation("product_id, quantity and total_price are required")
	}

	product, err := h.Store.GetProduct(ctx, req.ProductID)
	if err != nil {
		l.Error("get product failed", "error", err)
		return httperr.Internal()
	}
	if product == nil {
		return httperr.NotFound("product not found")
	}

	order := models.Order{
		BuyerID:    identity,
		ProductID:  product.ID,
		SellerID:   product.SellerID,
		Quantity:   req.Quantity,
		TotalPrice: req.TotalPrice,
		Status:     models.OrderPending,
	}
	if err := h.Store.CreateOrder(ctx, &order); err != nil {
		l.Error("create order failed", "error", err)
		return httperr.Internal()
	}

	publish(c, h.Producer, "order_events", identity, map[string]any{
		"type":    "order_created",
		"orderID": order.ID,
		"buyerID": identity,
	})

	return c.JSON(http.StatusCreated, order)
}

// UpdateOrderStatus lets the handling seller or an admin move the order to
// any of the recognized statuses.
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}
	role := roleFromContext(c)

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return httperr.Validation("malformed request body")
	}
	status := models.OrderStatus(req.Status)
	if !status.Valid() {
		return httperr.Validation("unknown order status")
	}

	order, err := h.Store.GetOrder(ctx, id)
	if err != nil {
		l.Error("get order failed", "error", err)
		return httperr.Internal()
	}
	if order == nil {
		return httperr.NotFound("order not found")
	}
	if order.SellerID != identity && !role.IsAdmin() {
		return httperr.Forbidden("not your order to handle")
	}

	updated, err := h.Store.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		l.Error("update order status failed", "error", err)
		return httperr.Internal()
	}
	if updated == nil {
		return httperr.NotFound("order not found")
	}

	publish(c, h.Producer, "order_events", identity, map[string]any{
		"type":    "order_status_updated",
		"orderID": id,
		"status":  string(status),
	})

	return c.JSON(http.StatusOK, updated)
}
