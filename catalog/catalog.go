// Package catalog reads product data from the headless content store.
// The content store owns product truth: prices and availability returned
// here are authoritative and client-submitted values are checked against
// them.
package catalog

import "context"

const (
	AvailabilityInStock     = "in_stock"
	AvailabilityMadeToOrder = "made_to_order"
	AvailabilitySoldOut     = "sold_out"
)

// Product is the read-only catalog view of a product. Price is nil for
// pieces priced on request.
type Product struct {
	ID           string `json:"_id"`
	Title        string `json:"title"`
	Price        *int   `json:"price"`
	Availability string `json:"availability"`
	ImageURL     string `json:"imageUrl"`
}

// Reader is the collaborator contract consumed by the services layer.
// Lookups are batched; result order is not guaranteed to match input order.
type Reader interface {
	GetProductsByIDs(ctx context.Context, ids []string) ([]Product, error)
	ListProducts(ctx context.Context, limit int) ([]Product, error)
}
