package controllers

import (
	"net/http"

	"storefront-backend/middleware"
	"storefront-backend/models"
	"storefront-backend/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartController struct {
	Repo   repository.CartStore
	Logger *zap.Logger
}

func NewCartController(repo repository.CartStore, logger *zap.Logger) *CartController {
	return &CartController{Repo: repo, Logger: logger}
}

// GetCart returns the current cart for the authenticated user.
func (cc *CartController) GetCart(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cart, err := cc.Repo.GetCart(c.Request.Context(), userID)
	if err != nil {
		cc.Logger.Error("get cart failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get cart"})
		return
	}

	if cart == nil {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	}

	c.JSON(http.StatusOK, cart)
}

// AddItem adds or updates an item in the cart. Quantities merge on the
// same product and size.
func (cc *CartController) AddItem(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var item models.CartItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	if item.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
		return
	}
	if item.PriceDisplay == "" {
		item.PriceDisplay = models.PriceDisplayNumeric
	}

	ctx := c.Request.Context()
	cart, err := cc.Repo.GetCart(ctx, userID)
	if err != nil {
		// A read failure is not an empty cart; saving over it would drop
		// whatever the user had.
		cc.Logger.Error("get cart failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get cart"})
		return
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	}

	found := false
	for i, existing := range cart.Items {
		if existing.ProductID == item.ProductID && sizeEqual(existing.SelectedSize, item.SelectedSize) {
			cart.Items[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, item)
	}

	if err := cc.Repo.SaveCart(ctx, cart); err != nil {
		cc.Logger.Error("save cart failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

// RemoveItem removes a specific item from the cart.
func (cc *CartController) RemoveItem(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	productID := c.Param("product_id")

	ctx := c.Request.Context()
	cart, err := cc.Repo.GetCart(ctx, userID)
	if err != nil {
		cc.Logger.Error("get cart failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get cart"})
		return
	}
	if cart == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return
	}

	newItems := []models.CartItem{}
	for _, item := range cart.Items {
		if item.ProductID != productID {
			newItems = append(newItems, item)
		}
	}
	cart.Items = newItems

	if err := cc.Repo.SaveCart(ctx, cart); err != nil {
		cc.Logger.Error("update cart failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

// ClearCart removes all items from the cart.
func (cc *CartController) ClearCart(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := cc.Repo.DeleteCart(c.Request.Context(), userID); err != nil {
		cc.Logger.Error("clear cart failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

func sizeEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
