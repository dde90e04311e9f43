package handlers

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkostrikov/marketplace/internal/models"
)

func TestCreateOrder_DenormalizesSellerFromProduct(t *testing.T) {
	env := newTestEnv(t)
	h := &OrderHandler{Store: env.store}
	buyer := env.seedUser(t, "buyer-1", models.RoleBuyer)
	seller := env.seedUser(t, "seller-1", models.RoleSeller)
	product := env.seedProduct(t, seller.ID, true)

	c, rec := env.request(t, http.MethodPost, "/api/orders", map[string]any{
		"product_id":  product.ID,
		"quantity":    2,
		"total_price": 19.98,
		"seller_id":   "spoofed",
	}, buyer.ID, buyer.Role)

	require.NoError(t, h.CreateOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	order := decodeBody[models.Order](t, rec)
	assert.Equal(t, seller.ID, order.SellerID)
	assert.Equal(t, buyer.ID, order.BuyerID)
	assert.Equal(t, models.OrderPending, order.Status)
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	h := &OrderHandler{Store: env.store}
	buyer := env.seedUser(t, "buyer-1", models.RoleBuyer)

	c, _ := env.request(t, http.MethodPost, "/api/orders", map[string]any{
		"product_id": 404, "quantity": 1, "total_price": 5.0,
	}, buyer.ID, buyer.Role)
	requireHTTPError(t, h.CreateOrder(c), http.StatusNotFound)
}

func TestCreateOrder_RejectsInvalidInput(t *testing.T) {
	env := newTestEnv(t)
	h := &OrderHandler{Store: env.store}
	buyer := env.seedUser(t, "buyer-1", models.RoleBuyer)
	seller := env.seedUser(t, "seller-1", models.RoleSeller)
	product := env.seedProduct(t, seller.ID, true)

	for name, body := range map[string]map[string]any{
		"zero quantity": {"product_id": product.ID, "quantity": 0, "total_price": 5.0},
		"zero total":    {"product_id": product.ID, "quantity": 1, "total_price": 0.0},
		"no product":    {"quantity": 1, "total_price": 5.0},
	} {
		t.Run(name, func(t *testing.T) {
			c, _ := env.request(t, http.MethodPost, "/api/orders", body, buyer.ID, buyer.Role)
			requireHTTPError(t, h.CreateOrder(c), http.StatusBadRequest)
		})
	}
}

func TestUpdateOrderStatus_HandlingSellerOnly(t *testing.T) {
	env := newTestEnv(t)
	h := &OrderHandler{Store: env.store}
	buyer := env.seedUser(t, "buyer-1", models.RoleBuyer)
	seller := env.seedUser(t, "seller-1", models.RoleSeller)
	rival := env.seedUser(t, "seller-2", models.RoleSeller)
	product := env.seedProduct(t, seller.ID, true)

	order := models.Order{BuyerID: buyer.ID, ProductID: product.ID, SellerID: seller.ID, Quantity: 1, TotalPrice: 9.99}
	require.NoError(t, env.store.CreateOrder(t.Context(), &order))

	c, _ := env.request(t, http.MethodPatch, "/", map[string]any{
		"status": "shipped",
	}, rival.ID, rival.Role)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(order.ID))
	requireHTTPError(t, h.UpdateOrderStatus(c), http.StatusForbidden)

	c, rec := env.request(t, http.MethodPatch, "/", map[string]any{
		"status": "shipped",
	}, seller.ID, seller.Role)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(order.ID))

	require.NoError(t, h.UpdateOrderStatus(c))
	updated := decodeBody[models.Order](t, rec)
	assert.Equal(t, models.OrderShipped, updated.Status)
}

func TestUpdateOrderStatus_RejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t)
	h := &OrderHandler{Store: env.store}
	seller := env.seedUser(t, "seller-1", models.RoleSeller)

	c, _ := env.request(t, http.MethodPatch, "/", map[string]any{
		"status": "teleported",
	}, seller.ID, seller.Role)
	c.SetParamNames("id")
	c.SetParamValues("1")
	requireHTTPError(t, h.UpdateOrderStatus(c), http.StatusBadRequest)
}

func TestGetOrders_SplitsBuyerAndSellerViews(t *testing.T) {
	env := newTestEnv(t)
	h := &OrderHandler{Store: env.store}
	buyer := env.seedUser(t, "buyer-1", models.RoleBuyer)
	seller := env.seedUser(t, "seller-1", models.RoleSeller)
	product := env.seedProduct(t, seller.ID, true)

	order := models.Order{BuyerID: buyer.ID, ProductID: product.ID, SellerID: seller.ID, Quantity: 1, TotalPrice: 9.99}
	require.NoError(t, env.store.CreateOrder(t.Context(), &order))

	c, rec := env.request(t, http.MethodGet, "/api/orders", nil, buyer.ID, buyer.Role)
	require.NoError(t, h.GetOrders(c))
	require.Len(t, decodeBody[[]models.Order](t, rec), 1)

	c, rec = env.request(t, http.MethodGet, "/api/seller/orders", nil, seller.ID, seller.Role)
	require.NoError(t, h.GetSellerOrders(c))
	require.Len(t, decodeBody[[]models.Order](t, rec), 1)

	c, rec = env.request(t, http.MethodGet, "/api/orders", nil, seller.ID, seller.Role)
	require.NoError(t, h.GetOrders(c))
	require.Empty(t, decodeBody[[]models.Order](t, rec))
}
