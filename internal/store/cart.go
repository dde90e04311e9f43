package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mkostrikov/marketplace/internal/models"
)

func (s *Store) GetUserCart(ctx context.Context, userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) GetCartItem(ctx context.Context, id int) (*models.CartItem, error) {
	var item models.CartItem
	err := s.DB.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// AddToCart merges on duplicate: an existing (user, product) row has its
// quantity incremented atomically, otherwise a new row is inserted. At most
// one row per pair ever exists.
func (s *Store) AddToCart(ctx context.Context, userID string, productID, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}
	var item models.CartItem
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
		if err == nil {
			if err := tx.Model(&models.CartItem{}).
				Where("id = ?", item.ID).
				UpdateColumn("quantity", gorm.Expr("quantity + ?", quantity)).Error; err != nil {
				return err
			}
			return tx.First(&item, item.ID).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		item = models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateCartItem sets the quantity unconditionally. Ownership is the
// caller's problem. Absent id yields (nil, nil).
func (s *Store) UpdateCartItem(ctx context.Context, id, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	err := s.DB.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	item.Quantity = quantity
	if err := s.DB.WithContext(ctx).Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) RemoveFromCart(ctx context.Context, id int) error {
	return s.DB.WithContext(ctx).Delete(&models.CartItem{}, id).Error
}

func (s *Store) ClearCart(ctx context.Context, userID string) error {
	return s.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
