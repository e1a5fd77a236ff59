package models

import (
	"time"

	"github.com/google/uuid"
)

// Order lifecycle: created pending/unpaid at checkout initiation, moved to
// processing/paid exactly once by payment verification. All amounts are
// whole rupees.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"

	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

type Order struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNumber      string    `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	TotalAmount      int       `gorm:"not null" json:"total_amount"`
	Status           string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentStatus    string    `gorm:"type:varchar(20);not null;default:'unpaid'" json:"payment_status"`
	GatewayOrderID   string    `gorm:"uniqueIndex;not null" json:"gateway_order_id"`
	GatewayPaymentID string    `gorm:"type:varchar(64)" json:"gateway_payment_id,omitempty"`
	GatewaySignature string    `gorm:"type:varchar(128)" json:"-"`

	ShipName       string `gorm:"not null" json:"ship_name"`
	ShipPhone      string `json:"ship_phone,omitempty"`
	ShipStreet1    string `gorm:"not null" json:"ship_street1"`
	ShipStreet2    string `json:"ship_street2,omitempty"`
	ShipCity       string `gorm:"not null" json:"ship_city"`
	ShipState      string `gorm:"not null" json:"ship_state"`
	ShipPostalCode string `gorm:"not null" json:"ship_postal_code"`
	ShipCountry    string `gorm:"not null;default:'IN'" json:"ship_country"`

	CreatedAt  time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem is created atomically with its order and immutable afterward.
// UnitPrice is the catalog price at purchase time.
type OrderItem struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID      uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID    string    `gorm:"not null" json:"product_id"`
	Title        string    `gorm:"not null" json:"title"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	UnitPrice    int       `gorm:"not null" json:"unit_price"`
	SelectedSize *string   `gorm:"type:varchar(20)" json:"selected_size,omitempty"`
}
