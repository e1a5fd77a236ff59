package models

import (
	"time"

	"github.com/google/uuid"
)

// User model
type User struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email              string    `gorm:"unique;not null" json:"email"`
	Password           string    `gorm:"not null" json:"-"`
	Name               string    `gorm:"not null" json:"name"`
	EmailVerified      bool      `gorm:"default:false" json:"email_verified"`
	VerificationCode   string    `gorm:"size:6" json:"-"`
	VerificationExpiry time.Time `json:"-"`
	Role               string    `gorm:"type:varchar(50);default:'user'" json:"role"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Address is a saved shipping or billing address for a user.
type Address struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Type       string    `gorm:"type:varchar(20);not null" json:"type"`
	Name       string    `gorm:"not null" json:"name"`
	Phone      string    `json:"phone,omitempty"`
	Street1    string    `gorm:"not null" json:"street1"`
	Street2    string    `json:"street2,omitempty"`
	City       string    `gorm:"not null" json:"city"`
	State      string    `gorm:"not null" json:"state"`
	PostalCode string    `gorm:"not null" json:"postal_code"`
	Country    string    `gorm:"not null;default:'IN'" json:"country"`
	IsDefault  bool      `gorm:"default:false" json:"is_default"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Measurement stores a customer's saved garment measurements, used for
// made-to-order pieces.
type Measurement struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Label      string    `gorm:"not null" json:"label"`
	BustCm     float64   `json:"bust_cm"`
	WaistCm    float64   `json:"waist_cm"`
	HipCm      float64   `json:"hip_cm"`
	ShoulderCm float64   `json:"shoulder_cm"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// WishlistItem links a user to a catalog product.
type WishlistItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_wishlist_user_product" json:"user_id"`
	ProductID string    `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"product_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
