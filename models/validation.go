package models

// ValidatedItem records the outcome of cross-checking one cart item
// against the catalog. CartPrice and DBPrice are kept side by side so
// tampering detections can be audited.
type ValidatedItem struct {
	ProductID string `json:"product_id"`
	CartPrice *int   `json:"cart_price"`
	DBPrice   *int   `json:"db_price"`
	IsValid   bool   `json:"is_valid"`
}

// ValidationResult is transient; it is never persisted. Valid is true only
// when Errors is empty; a non-empty Errors list blocks checkout regardless
// of the computed total.
type ValidationResult struct {
	Valid          bool            `json:"valid"`
	Errors         []string        `json:"errors"`
	Warnings       []string        `json:"warnings"`
	ValidatedItems []ValidatedItem `json:"validated_items"`
	ValidatedTotal int             `json:"validated_total"`
}
