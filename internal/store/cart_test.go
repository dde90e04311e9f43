package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkostrikov/marketplace/internal/models"
)

func TestAddToCart_MergesOnDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	product := seedProduct(t, s, "seller", true)

	first, err := s.AddToCart(ctx, "u1", product.ID, 2)
	require.NoError(t, err)
	second, err := s.AddToCart(ctx, "u1", product.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)

	var count int64
	require.NoError(t, s.DB.Model(&models.CartItem{}).Where("user_id = ?", "u1").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAddToCart_QuantityDefaultsToOne(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	product := seedProduct(t, s, "seller", true)

	item, err := s.AddToCart(ctx, "u1", product.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
}

func TestUpdateCartItem_AbsentYieldsNil(t *testing.T) {
	s := newTestStore(t)

	item, err := s.UpdateCartItem(context.Background(), 404, 3)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestUpdateCartItem_SetsAbsoluteQuantity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	product := seedProduct(t, s, "seller", true)
	item, err := s.AddToCart(ctx, "u1", product.ID, 2)
	require.NoError(t, err)

	updated, err := s.UpdateCartItem(ctx, item.ID, 7)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 7, updated.Quantity)
}

func TestClearCart_RemovesOnlyOwnRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p1 := seedProduct(t, s, "seller", true)
	p2 := seedProduct(t, s, "seller", true)

	_, err := s.AddToCart(ctx, "u1", p1.ID, 1)
	require.NoError(t, err)
	_, err = s.AddToCart(ctx, "u1", p2.ID, 1)
	require.NoError(t, err)
	_, err = s.AddToCart(ctx, "u2", p1.ID, 1)
	require.NoError(t, err)

	require.NoError(t, s.ClearCart(ctx, "u1"))

	mine, err := s.GetUserCart(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, mine)

	theirs, err := s.GetUserCart(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}
