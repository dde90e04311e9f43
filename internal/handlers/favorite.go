package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkostrikov/marketplace/internal/httperr"
	"github.com/mkostrikov/marketplace/internal/logging"
	"github.com/mkostrikov/marketplace/internal/mykafka"
	"github.com/mkostrikov/marketplace/internal/store"
)

type FavoriteHandler struct {
	Store    *store.Store
	Producer *mykafka.Producer
}

func (h *FavoriteHandler) GetFavorites(c echo.Context) error {
	ctx := c.Request().Context()

	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	products, err := h.Store.GetUserFavorites(ctx, identity)
	if err != nil {
		logging.FromContext(ctx).Error("list favorites failed", "error", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, products)
}

func (h *FavoriteHandler) AddFavorite(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorite.add")

	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	var req struct {
		ProductID int `json:"product_id"`
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

	fav, err := h.Store.AddToFavorites(ctx, identity, req.ProductID)
	if err != nil {
		if err == store.ErrConflict {
			return httperr.Conflict("already favorited")
		}
		l.Error("add favorite failed", "error", err)
		return httperr.Internal()
	}

	publish(c, h.Producer, "product_events", identity, map[string]any{
		"type":      "product_favorited",
		"productID": req.ProductID,
		"userID":    identity,
	})

	return c.JSON(http.StatusCreated, fav)
}

func (h *FavoriteHandler) RemoveFavorite(c echo.Context) error {
	ctx := c.Request().Context()

	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	productID, err := pathID(c, "productId")
	if err != nil {
		return err
	}

	if err := h.Store.RemoveFromFavorites(ctx, identity, productID); err != nil {
		logging.FromContext(ctx).Error("remove favorite failed", "error", err)
		return httperr.Internal()
	}

	publish(c, h.Producer, "product_events", identity, map[string]any{
		"type":      "product_unfavorited",
		"productID": productID,
		"userID":    identity,
	})

	return c.NoContent(http.StatusNoContent)
}
