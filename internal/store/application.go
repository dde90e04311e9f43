package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mkostrikov/marketplace/internal/models"
)

func (s *Store) GetSellerApplications(ctx context.Context) ([]models.SellerApplication, error) {
	var apps []models.SellerApplication
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *Store) CreateSellerApplication(ctx context.Context, app *models.SellerApplication) error {
	if app.Status == "" {
		app.Status = models.ApplicationPending
	}
	return s.DB.WithContext(ctx).Create(app).Error
}

func (s *Store) UpdateSellerApplicationStatus(ctx context.Context, id int, status models.ApplicationStatus) (*models.SellerApplication, error) {
	res := s.DB.WithContext(ctx).
		Model(&models.SellerApplication{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	var app models.SellerApplication
	if err := s.DB.WithContext(ctx).First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// GetUserSellerApplication returns the user's most recent application:
// a user may apply more than once, the latest one is the current one.
func (s *Store) GetUserSellerApplication(ctx context.Context, userID string) (*models.SellerApplication, error) {
	var app models.SellerApplication
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}
