package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/mkostrikov/marketplace/internal/models"
)

// GetUserFavorites returns the products the user has favorited. Favorites
// pointing at deleted products are silently excluded by the inner join.
func (s *Store) GetUserFavorites(ctx context.Context, userID string) ([]models.Product, error) {
	var products []models.Product
	err := s.DB.WithContext(ctx).
		Model(&models.Product{}).
		Joins("JOIN favorites ON favorites.product_id = products.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// AddToFavorites inserts the (user, product) row and bumps the product's
// favorite_count in the same transaction. A duplicate pair is ErrConflict
// and leaves the counter alone.
func (s *Store) AddToFavorites(ctx context.Context, userID string, productID int) (*models.Favorite, error) {
	fav := models.Favorite{UserID: userID, ProductID: productID}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&fav).Error; err != nil {
			return err
		}
		return tx.Model(&models.Product{}).
			Where("id = ?", productID).
			UpdateColumn("favorite_count", gorm.Expr("favorite_count + 1")).Error
	})
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &fav, nil
}

// RemoveFromFavorites deletes the row if present; the counter is only
// decremented when a row was actually removed, so repeated removes are
// harmless no-ops.
func (s *Store) RemoveFromFavorites(ctx context.Context, userID string, productID int) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND product_id = ?", userID, productID).
			Delete(&models.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&models.Product{}).
			Where("id = ? AND favorite_count > 0", productID).
			UpdateColumn("favorite_count", gorm.Expr("favorite_count - 1")).Error
	})
}

func (s *Store) IsProductFavorited(ctx context.Context, userID string, productID int) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
