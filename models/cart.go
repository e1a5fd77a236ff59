package models

import "time"

const (
	PriceDisplayNumeric   = "numeric"
	PriceDisplayOnRequest = "on_request"
)

// CartItem is client-originated and untrusted: UnitPrice is cross-checked
// against the catalog before checkout. Items priced "on request" carry a
// nil UnitPrice.
type CartItem struct {
	ProductID    string  `json:"product_id"`
	Title        string  `json:"title"`
	UnitPrice    *int    `json:"unit_price"`
	PriceDisplay string  `json:"price_display" binding:"omitempty,oneof=numeric on_request"`
	Quantity     int     `json:"quantity" binding:"required,min=1"`
	SelectedSize *string `json:"selected_size,omitempty"`
}

type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}
