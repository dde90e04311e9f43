package models

import (
	"time"
)

type User struct {
	ID              string    `gorm:"primaryKey"               json:"id"`
	Email           string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash    string    `gorm:"not null"                 json:"-"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	ProfileImageURL string    `json:"profile_image_url"`
	Role            Role      `gorm:"not null;default:buyer"   json:"role"`
	IsApproved      bool      `gorm:"not null;default:false"   json:"is_approved"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Category struct {
	ID    int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"uniqueIndex;not null"     json:"name"`
	Slug  string `gorm:"uniqueIndex;not null"     json:"slug"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

type Product struct {
	ID            int       `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name          string    `gorm:"not null"                    json:"name"`
	Description   string    `json:"description"`
	Price         float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	ImageURL      string    `json:"image_url"`
	SellerID      string    `gorm:"index;not null"              json:"seller_id"`
	CategoryID    int       `gorm:"index;not null"              json:"category_id"`
	IsApproved    bool      `gorm:"not null;default:false"      json:"is_approved"`
	FavoriteCount int       `gorm:"not null;default:0"          json:"favorite_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Favorite is keyed on (user, product): one row per pair, never duplicated.
type Favorite struct {
	UserID    string    `gorm:"primaryKey"    json:"user_id"`
	ProductID int       `gorm:"primaryKey"    json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

type CartItem struct {
	ID        int    `gorm:"primaryKey;autoIncrement"                   json:"id"`
	UserID    string `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID int    `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int    `gorm:"not null;default:1;check:quantity>0"        json:"quantity"`
}

type Order struct {
	ID         int         `gorm:"primaryKey;autoIncrement"    json:"id"`
	BuyerID    string      `gorm:"index;not null"              json:"buyer_id"`
	ProductID  int         `gorm:"not null"                    json:"product_id"`
	SellerID   string      `gorm:"index;not null"              json:"seller_id"`
	Quantity   int         `gorm:"not null;default:1"          json:"quantity"`
	TotalPrice float64     `gorm:"type:numeric(10,2);not null" json:"total_price"`
	Status     OrderStatus `gorm:"not null;default:pending"    json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
}

type SellerApplication struct {
	ID             int               `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         string            `gorm:"index;not null"           json:"user_id"`
	Email          string            `gorm:"not null"                 json:"email"`
	Phone          string            `gorm:"not null"                 json:"phone"`
	PaymentDetails string            `json:"payment_details"`
	Status         ApplicationStatus `gorm:"not null;default:pending" json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    string `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}
