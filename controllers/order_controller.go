package controllers

import (
	"net/http"
	"strconv"

	"storefront-backend/middleware"
	"storefront-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// GetOrders returns paginated orders for the authenticated user.
func (oc *OrderController) GetOrders(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, limit := parsePaginationParams(c)

	result, svcErr := oc.Orders.GetUserOrders(c.Request.Context(), userID, page, limit)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetOrderByID returns a specific order for the authenticated user.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	order, svcErr := oc.Orders.GetOrderByID(c.Request.Context(), userID, orderUUID)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// GetAllOrders returns paginated orders across all users (admin only;
// role is enforced by route middleware).
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	page, limit := parsePaginationParams(c)

	result, svcErr := oc.Orders.GetAllOrders(c.Request.Context(), page, limit)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateOrderStatus applies an admin shipment-status transition.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if svcErr := oc.Orders.UpdateOrderStatus(c.Request.Context(), orderUUID, req.Status); svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
}

// parsePaginationParams extracts and validates pagination parameters.
func parsePaginationParams(c *gin.Context) (int, int) {
	const MaxLimit = 100

	pageInt := 1
	limitInt := 10

	if p, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && p > 0 {
		pageInt = p
	}
	if l, err := strconv.Atoi(c.DefaultQuery("limit", "10")); err == nil && l > 0 {
		limitInt = l
		if limitInt > MaxLimit {
			limitInt = MaxLimit
		}
	}

	return pageInt, limitInt
}
