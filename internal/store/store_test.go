package store

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/mkostrikov/marketplace/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Favorite{},
		&models.CartItem{},
		&models.Order{},
		&models.SellerApplication{},
		&models.RefreshToken{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return New(db)
}

func seedUser(t *testing.T, s *Store, id string, role models.Role) *models.User {
	t.Helper()
	user := models.User{
		ID:           id,
		Email:        id + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	if err := s.CreateUser(context.Background(), &user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return &user
}

func seedProduct(t *testing.T, s *Store, sellerID string, approved bool) *models.Product {
	t.Helper()
	product := models.Product{
		Name:       "test product",
		Price:      9.99,
		SellerID:   sellerID,
		CategoryID: 1,
		IsApproved: approved,
	}
	if err := s.CreateProduct(context.Background(), &product); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return &product
}
