package services

import (
	"context"
	"fmt"

	"storefront-backend/catalog"
	"storefront-backend/models"

	"go.uber.org/zap"
)

// ValidationService cross-checks client-submitted cart prices against the
// catalog before any payment is captured.
type ValidationService interface {
	ValidateCart(ctx context.Context, items []models.CartItem) (*models.ValidationResult, *ServiceError)
}

type validationServiceImpl struct {
	catalog catalog.Reader
	logger  *zap.Logger
}

func NewValidationService(cat catalog.Reader, logger *zap.Logger) ValidationService {
	return &validationServiceImpl{catalog: cat, logger: logger}
}

// ValidateCart fetches the referenced products in one batched lookup and
// checks each item. Hard errors (missing product, missing numeric price,
// price mismatch) make the whole submission invalid; availability and
// on-request oddities are soft warnings only. The returned total sums
// authoritative prices over valid entries; invalid entries contribute
// zero, so callers must treat a non-empty Errors list as fully blocking.
func (s *validationServiceImpl) ValidateCart(ctx context.Context, items []models.CartItem) (*models.ValidationResult, *ServiceError) {
	if len(items) == 0 {
		return nil, &ServiceError{StatusCode: 400, Message: "Cart is empty"}
	}

	result := &models.ValidationResult{
		Errors:         []string{},
		Warnings:       []string{},
		ValidatedItems: []models.ValidatedItem{},
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.ProductID == "" {
			result.Warnings = append(result.Warnings, "cart item without product id skipped")
			continue
		}
		ids = append(ids, item.ProductID)
	}

	products, err := s.catalog.GetProductsByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("catalog lookup failed during cart validation", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to validate cart"}
	}

	byID := make(map[string]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, item := range items {
		if item.ProductID == "" {
			continue
		}

		product, ok := byID[item.ProductID]
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("product %s not found", item.ProductID))
			result.ValidatedItems = append(result.ValidatedItems, models.ValidatedItem{
				ProductID: item.ProductID,
				CartPrice: item.UnitPrice,
				IsValid:   false,
			})
			s.logger.Warn("cart references unknown product", zap.String("product_id", item.ProductID))
			continue
		}

		if product.Availability != catalog.AvailabilityInStock &&
			product.Availability != catalog.AvailabilityMadeToOrder {
			// Preorder leniency: not a hard stock gate.
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("product %s is %s", item.ProductID, product.Availability))
		}

		validated := models.ValidatedItem{
			ProductID: item.ProductID,
			CartPrice: item.UnitPrice,
			DBPrice:   product.Price,
		}

		switch item.PriceDisplay {
		case models.PriceDisplayOnRequest:
			validated.IsValid = true
			if item.UnitPrice != nil {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("product %s is priced on request but cart carries a price", item.ProductID))
			}
		default: // numeric
			switch {
			case item.UnitPrice == nil:
				result.Errors = append(result.Errors,
					fmt.Sprintf("product %s has no cart price", item.ProductID))
			case product.Price == nil:
				result.Errors = append(result.Errors,
					fmt.Sprintf("product %s has no catalog price", item.ProductID))
			case *item.UnitPrice != *product.Price:
				diff := *item.UnitPrice - *product.Price
				if diff < 0 {
					diff = -diff
				}
				result.Errors = append(result.Errors,
					fmt.Sprintf("price mismatch for product %s: difference %d", item.ProductID, diff))
				// Tampering is logged distinctly from "not found" and
				// carries both values for audit.
				s.logger.Warn("price tampering detected",
					zap.String("product_id", item.ProductID),
					zap.Int("cart_price", *item.UnitPrice),
					zap.Int("db_price", *product.Price),
					zap.Int("difference", diff),
				)
			default:
				validated.IsValid = true
			}
		}

		result.ValidatedItems = append(result.ValidatedItems, validated)

		if validated.IsValid && product.Price != nil {
			result.ValidatedTotal += *product.Price * item.Quantity
		}
	}

	result.Valid = len(result.Errors) == 0
	return result, nil
}
