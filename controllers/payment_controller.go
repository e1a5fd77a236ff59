package controllers

import (
	"net/http"

	"storefront-backend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentController struct {
	Payments services.PaymentService
	Logger   *zap.Logger
}

func NewPaymentController(payments services.PaymentService, logger *zap.Logger) *PaymentController {
	return &PaymentController{Payments: payments, Logger: logger}
}

// Verify handles the gateway callback for a completed charge. The response
// table is a contract with the storefront: anything other than
// {"success":true} is shown as "payment not confirmed, contact support",
// never as "retry payment".
func (pc *PaymentController) Verify(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			pc.Logger.Error("payment verification panicked", zap.Any("panic", r))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment verification failed"})
		}
	}()

	var req services.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing payment details"})
		return
	}

	outcome, svcErr := pc.Payments.VerifyPayment(c.Request.Context(), &req)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	if outcome.Attempted && !outcome.Sent {
		pc.Logger.Warn("payment confirmed but notification failed",
			zap.String("gateway_order_id", req.GatewayOrderID),
			zap.String("notification_error", outcome.Error),
		)
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
