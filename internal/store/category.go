package store

import (
	"context"

	"github.com/mkostrikov/marketplace/internal/models"
)

var defaultCategories = []models.Category{
	{Name: "Men", Slug: "men", Color: "#3B82F6", Icon: "fa-person"},
	{Name: "Women", Slug: "women", Color: "#EC4899", Icon: "fa-person-dress"},
	{Name: "Gadgets", Slug: "gadgets", Color: "#8B5CF6", Icon: "fa-mobile-screen"},
	{Name: "Clothing", Slug: "clothing", Color: "#10B981", Icon: "fa-shirt"},
	{Name: "Jewelry", Slug: "jewelry", Color: "#F59E0B", Icon: "fa-gem"},
	{Name: "Gifts", Slug: "gifts", Color: "#EF4444", Icon: "fa-gift"},
}

func (s *Store) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	if err := s.DB.WithContext(ctx).Create(category).Error; err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// EnsureDefaultCategories seeds the fixed category set exactly once.
// Invoked at process start; a non-empty table makes it a no-op.
func (s *Store) EnsureDefaultCategories(ctx context.Context) error {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	seed := make([]models.Category, len(defaultCategories))
	copy(seed, defaultCategories)
	return s.DB.WithContext(ctx).Create(&seed).Error
}
