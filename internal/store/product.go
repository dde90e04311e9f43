package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mkostrikov/marketplace/internal/models"
)

// UpdateProductParams is a partial update: nil fields are left untouched.
type UpdateProductParams struct {
	Name        *string
	Description *string
	Price       *float64
	ImageURL    *string
	CategoryID  *int
	IsApproved  *bool
}

// GetProducts lists approved products, newest first, optionally filtered by
// category. Unapproved products never appear here regardless of caller.
// limit <= 0 returns the full list.
func (s *Store) GetProducts(ctx context.Context, categoryID, offset, limit int) ([]models.Product, error) {
	q := s.DB.WithContext(ctx).Where("is_approved = ?", true)
	if categoryID > 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	var products []models.Product
	if err := q.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct returns the row regardless of approval state; the detail view
// must work for pending products.
func (s *Store) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Store) GetRecommendedProducts(ctx context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 4
	}
	var products []models.Product
	err := s.DB.WithContext(ctx).
		Where("is_approved = ?", true).
		Order("favorite_count DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	return s.DB.WithContext(ctx).Create(product).Error
}

// UpdateProduct merges the supplied fields onto the row and refreshes
// updated_at. Absent id yields (nil, nil).
func (s *Store) UpdateProduct(ctx context.Context, id int, p UpdateProductParams) (*models.Product, error) {
	var product models.Product
	err := s.DB.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.ImageURL != nil {
		product.ImageURL = *p.ImageURL
	}
	if p.CategoryID != nil {
		product.CategoryID = *p.CategoryID
	}
	if p.IsApproved != nil {
		product.IsApproved = *p.IsApproved
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.DB.WithContext(ctx).Save(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct hard-deletes the row together with its dependent favorite
// and cart rows. Orders keep the product id as a historical reference.
func (s *Store) DeleteProduct(ctx context.Context, id int) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	})
}
