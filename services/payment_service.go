package services

import (
	"context"
	"errors"

	"storefront-backend/gateway"
	"storefront-backend/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VerifyPaymentRequest carries the gateway's callback triple. All three
// fields are opaque strings from the client and are treated as untrusted.
type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"gateway_order_id"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	GatewaySignature string `json:"gateway_signature"`
}

// PaymentService runs the verification pipeline: signature check, order
// state transition, then best-effort confirmation email.
type PaymentService interface {
	VerifyPayment(ctx context.Context, req *VerifyPaymentRequest) (NotificationOutcome, *ServiceError)
}

type paymentServiceImpl struct {
	orders   repository.OrderRepository
	notifier NotifierService
	secret   string
	logger   *zap.Logger
}

func NewPaymentService(
	orders repository.OrderRepository,
	notifier NotifierService,
	secret string,
	logger *zap.Logger,
) PaymentService {
	return &paymentServiceImpl{
		orders:   orders,
		notifier: notifier,
		secret:   secret,
		logger:   logger,
	}
}

// VerifyPayment validates the signature, marks the order paid and fires
// the confirmation email. The email runs strictly after the state change
// is confirmed persisted and its failure never alters the response: a
// crash between the two steps leaves the order paid without an email,
// which is the safe direction.
func (s *paymentServiceImpl) VerifyPayment(ctx context.Context, req *VerifyPaymentRequest) (NotificationOutcome, *ServiceError) {
	if req.GatewayOrderID == "" || req.GatewayPaymentID == "" || req.GatewaySignature == "" {
		return NotificationOutcome{}, &ServiceError{StatusCode: 400, Message: "Missing payment details"}
	}

	err := gateway.VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature, s.secret)
	switch {
	case errors.Is(err, gateway.ErrSecretUnset):
		// Configuration error, never reported as a validation failure.
		s.logger.Error("payment secret not configured; failing closed")
		return NotificationOutcome{}, &ServiceError{StatusCode: 500, Message: "Server configuration error"}
	case errors.Is(err, gateway.ErrSignatureMismatch):
		s.logger.Warn("payment signature mismatch",
			zap.String("gateway_order_id", req.GatewayOrderID),
			zap.String("gateway_payment_id", req.GatewayPaymentID),
		)
		return NotificationOutcome{}, &ServiceError{StatusCode: 400, Message: "Invalid signature"}
	case err != nil:
		return NotificationOutcome{}, &ServiceError{StatusCode: 400, Message: "Missing payment details"}
	}

	if err := s.orders.MarkPaid(ctx, req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("verify called for unknown gateway order",
				zap.String("gateway_order_id", req.GatewayOrderID))
			return NotificationOutcome{}, &ServiceError{StatusCode: 404, Message: "Order not found"}
		}
		s.logger.Error("failed to update order status",
			zap.String("gateway_order_id", req.GatewayOrderID),
			zap.Error(err),
		)
		return NotificationOutcome{}, &ServiceError{StatusCode: 500, Message: "Failed to update order status"}
	}

	s.logger.Info("payment verified",
		zap.String("gateway_order_id", req.GatewayOrderID),
		zap.String("gateway_payment_id", req.GatewayPaymentID),
	)

	// Best effort from here on. The payment response is already decided.
	outcome := NotificationOutcome{}
	order, err := s.orders.FindByGatewayOrderID(ctx, req.GatewayOrderID)
	if err != nil {
		s.logger.Warn("paid order reload failed, skipping confirmation email",
			zap.String("gateway_order_id", req.GatewayOrderID),
			zap.Error(err),
		)
	} else {
		outcome = s.notifier.SendOrderConfirmation(ctx, order)
	}

	return outcome, nil
}
