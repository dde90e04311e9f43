package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mkostrikov/marketplace/internal/models"
)

func (s *Store) GetUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.WithContext(ctx).
		Where("buyer_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) GetSellerOrders(ctx context.Context, sellerID string) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.Status == "" {
		order.Status = models.OrderPending
	}
	return s.DB.WithContext(ctx).Create(order).Error
}

// UpdateOrderStatus sets the status unconditionally; the route layer is
// responsible for validating the value and the caller's right to change it.
func (s *Store) UpdateOrderStatus(ctx context.Context, id int, status models.OrderStatus) (*models.Order, error) {
	res := s.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return s.GetOrder(ctx, id)
}
