package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mkostrikov/marketplace/internal/models"
)

// UpsertUserParams carries the fields UpsertUser is allowed to write.
// Anything not listed here (password hash, created_at) is retained on
// conflict, so a login-time profile sync cannot wipe credentials and a role
// promotion cannot wipe the profile.
type UpsertUserParams struct {
	ID              string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
	Role            models.Role
	IsApproved      bool
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// UpsertUser inserts the user or, when the identity already exists, merges
// only the listed columns onto the row and refreshes updated_at. Used for
// login-time profile sync and for the seller promotion on application
// approval.
func (s *Store) UpsertUser(ctx context.Context, p UpsertUserParams) (*models.User, error) {
	row := models.User{
		ID:              p.ID,
		Email:           p.Email,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		ProfileImageURL: p.ProfileImageURL,
		Role:            p.Role,
		IsApproved:      p.IsApproved,
		UpdatedAt:       time.Now().UTC(),
	}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email", "first_name", "last_name", "profile_image_url",
			"role", "is_approved", "updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		if isDuplicate(err) {
			// Conflict on something other than the identity (e.g. email).
			return nil, ErrConflict
		}
		return nil, err
	}
	return s.GetUser(ctx, p.ID)
}
