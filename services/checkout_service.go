package services

import (
	"context"
	"fmt"
	"strings"

	"storefront-backend/gateway"
	"storefront-backend/models"
	"storefront-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ShippingAddressRequest is the structured address submitted at checkout.
type ShippingAddressRequest struct {
	Name       string `json:"name" binding:"required"`
	Phone      string `json:"phone"`
	Street1    string `json:"street1" binding:"required"`
	Street2    string `json:"street2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country"`
}

// CheckoutRequest initiates an order from the server-side cart.
type CheckoutRequest struct {
	ShippingAddress ShippingAddressRequest `json:"shipping_address" binding:"required"`
}

// CheckoutResponse is what the client-side payment widget needs.
type CheckoutResponse struct {
	OrderID        string `json:"order_id"`
	OrderNumber    string `json:"order_number"`
	GatewayOrderID string `json:"gateway_order_id"`
	AmountPaise    int    `json:"amount_paise"`
	Currency       string `json:"currency"`
	GatewayKeyID   string `json:"gateway_key_id"`
}

// CheckoutService validates the cart, creates the gateway order and
// persists the pending order with its items.
type CheckoutService interface {
	Checkout(ctx context.Context, userID string, req *CheckoutRequest) (*CheckoutResponse, *models.ValidationResult, *ServiceError)
}

type checkoutServiceImpl struct {
	carts        repository.CartStore
	orders       repository.OrderRepository
	validation   ValidationService
	gateway      gateway.OrderCreator
	gatewayKeyID string
	logger       *zap.Logger
}

func NewCheckoutService(
	carts repository.CartStore,
	orders repository.OrderRepository,
	validation ValidationService,
	gw gateway.OrderCreator,
	gatewayKeyID string,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		carts:        carts,
		orders:       orders,
		validation:   validation,
		gateway:      gw,
		gatewayKeyID: gatewayKeyID,
		logger:       logger,
	}
}

// Checkout runs price validation before any payment capture. A non-empty
// error list blocks the whole submission; the ValidationResult is returned
// alongside so the storefront can show what failed.
func (s *checkoutServiceImpl) Checkout(ctx context.Context, userID string, req *CheckoutRequest) (*CheckoutResponse, *models.ValidationResult, *ServiceError) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, nil, &ServiceError{StatusCode: 400, Message: "Invalid user ID format"}
	}

	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		s.logger.Error("cart load failed at checkout", zap.String("user_id", userID), zap.Error(err))
		return nil, nil, &ServiceError{StatusCode: 500, Message: "Failed to load cart"}
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, nil, &ServiceError{StatusCode: 400, Message: "Cart is empty"}
	}

	// Pieces priced on request cannot be bought through the online flow.
	for _, item := range cart.Items {
		if item.PriceDisplay == models.PriceDisplayOnRequest {
			return nil, nil, &ServiceError{
				StatusCode: 400,
				Message:    "Cart contains items priced on request; please contact us to order them",
			}
		}
	}

	result, svcErr := s.validation.ValidateCart(ctx, cart.Items)
	if svcErr != nil {
		return nil, nil, svcErr
	}
	if !result.Valid {
		return nil, result, &ServiceError{StatusCode: 400, Message: "Cart validation failed"}
	}

	orderNumber := generateOrderNumber()
	amountPaise := result.ValidatedTotal * 100

	gatewayOrderID, err := s.gateway.CreateOrder(amountPaise, orderNumber)
	if err != nil {
		s.logger.Error("gateway order create failed",
			zap.String("order_number", orderNumber),
			zap.Error(err),
		)
		return nil, nil, &ServiceError{StatusCode: 502, Message: "Failed to initiate payment"}
	}

	country := req.ShippingAddress.Country
	if country == "" {
		country = "IN"
	}

	order := &models.Order{
		OrderNumber:    orderNumber,
		UserID:         userUUID,
		TotalAmount:    result.ValidatedTotal,
		Status:         models.OrderStatusPending,
		PaymentStatus:  models.PaymentStatusUnpaid,
		GatewayOrderID: gatewayOrderID,
		ShipName:       req.ShippingAddress.Name,
		ShipPhone:      req.ShippingAddress.Phone,
		ShipStreet1:    req.ShippingAddress.Street1,
		ShipStreet2:    req.ShippingAddress.Street2,
		ShipCity:       req.ShippingAddress.City,
		ShipState:      req.ShippingAddress.State,
		ShipPostalCode: req.ShippingAddress.PostalCode,
		ShipCountry:    country,
	}

	byID := make(map[string]models.ValidatedItem, len(result.ValidatedItems))
	for _, v := range result.ValidatedItems {
		byID[v.ProductID] = v
	}
	for _, item := range cart.Items {
		validated := byID[item.ProductID]
		unitPrice := 0
		if validated.DBPrice != nil {
			unitPrice = *validated.DBPrice
		}
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			ProductID:    item.ProductID,
			Title:        item.Title,
			Quantity:     item.Quantity,
			UnitPrice:    unitPrice,
			SelectedSize: item.SelectedSize,
		})
	}

	if err := s.orders.CreateWithItems(ctx, order); err != nil {
		s.logger.Error("order persist failed",
			zap.String("order_number", orderNumber),
			zap.Error(err),
		)
		return nil, nil, &ServiceError{StatusCode: 500, Message: "Failed to create order"}
	}

	// Cart clearing is best-effort: a stale cart is recoverable, a lost
	// order is not.
	if err := s.carts.DeleteCart(ctx, userID); err != nil {
		s.logger.Warn("cart clear failed after checkout", zap.String("user_id", userID), zap.Error(err))
	}

	s.logger.Info("checkout initiated",
		zap.String("order_number", orderNumber),
		zap.String("gateway_order_id", gatewayOrderID),
		zap.Int("total_amount", result.ValidatedTotal),
	)

	return &CheckoutResponse{
		OrderID:        order.ID.String(),
		OrderNumber:    orderNumber,
		GatewayOrderID: gatewayOrderID,
		AmountPaise:    amountPaise,
		Currency:       "INR",
		GatewayKeyID:   s.gatewayKeyID,
	}, result, nil
}

func generateOrderNumber() string {
	return fmt.Sprintf("KL-%s", strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:10]))
}
