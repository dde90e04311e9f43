package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkostrikov/marketplace/internal/models"
)

func favoriteRowCount(t *testing.T, s *Store, productID int) int64 {
	t.Helper()
	var count int64
	require.NoError(t, s.DB.Model(&models.Favorite{}).Where("product_id = ?", productID).Count(&count).Error)
	return count
}

func TestFavorites_CounterMatchesRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "seller", models.RoleSeller)
	product := seedProduct(t, s, "seller", true)

	for _, uid := range []string{"a", "b", "c"} {
		seedUser(t, s, uid, models.RoleBuyer)
		_, err := s.AddToFavorites(ctx, uid, product.ID)
		require.NoError(t, err)
	}
	require.NoError(t, s.RemoveFromFavorites(ctx, "b", product.ID))

	got, err := s.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, int64(got.FavoriteCount), favoriteRowCount(t, s, product.ID))
	assert.Equal(t, 2, got.FavoriteCount)
}

func TestAddToFavorites_DuplicateIsConflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "u1", models.RoleBuyer)
	product := seedProduct(t, s, "seller", true)

	_, err := s.AddToFavorites(ctx, "u1", product.ID)
	require.NoError(t, err)

	_, err = s.AddToFavorites(ctx, "u1", product.ID)
	assert.ErrorIs(t, err, ErrConflict)

	// the failed add must not have bumped the counter
	got, err := s.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.FavoriteCount)
}

func TestRemoveFromFavorites_AbsentIsNoop(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	product := seedProduct(t, s, "seller", true)

	require.NoError(t, s.RemoveFromFavorites(ctx, "ghost", product.ID))

	got, err := s.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.FavoriteCount)
}

func TestIsProductFavorited(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	product := seedProduct(t, s, "seller", true)

	fav, err := s.IsProductFavorited(ctx, "u1", product.ID)
	require.NoError(t, err)
	assert.False(t, fav)

	_, err = s.AddToFavorites(ctx, "u1", product.ID)
	require.NoError(t, err)

	fav, err = s.IsProductFavorited(ctx, "u1", product.ID)
	require.NoError(t, err)
	assert.True(t, fav)
}

func TestGetUserFavorites_ExcludesDeletedProducts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p1 := seedProduct(t, s, "seller", true)
	p2 := seedProduct(t, s, "seller", true)

	_, err := s.AddToFavorites(ctx, "u1", p1.ID)
	require.NoError(t, err)
	_, err = s.AddToFavorites(ctx, "u1", p2.ID)
	require.NoError(t, err)

	require.NoError(t, s.DB.Delete(&models.Product{}, p2.ID).Error)

	products, err := s.GetUserFavorites(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, p1.ID, products[0].ID)
}
