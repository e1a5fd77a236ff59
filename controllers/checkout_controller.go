package controllers

import (
	"net/http"

	"storefront-backend/middleware"
	"storefront-backend/services"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct {
	Checkout services.CheckoutService
}

func NewCheckoutController(checkout services.CheckoutService) *CheckoutController {
	return &CheckoutController{Checkout: checkout}
}

// Create validates the cart against the catalog and initiates payment.
// Validation failures return the full ValidationResult so the storefront
// can show exactly what was rejected.
func (cc *CheckoutController) Create(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	resp, validation, svcErr := cc.Checkout.Checkout(c.Request.Context(), userID, &req)
	if svcErr != nil {
		body := gin.H{"error": svcErr.Message}
		if validation != nil {
			body["validation"] = validation
		}
		c.JSON(svcErr.StatusCode, body)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"checkout":   resp,
		"validation": validation,
	})
}
