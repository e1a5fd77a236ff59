package controllers

import (
	"errors"
	"net/http"

	"storefront-backend/catalog"
	"storefront-backend/middleware"
	"storefront-backend/models"
	"storefront-backend/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type WishlistController struct {
	Repo    repository.WishlistRepository
	Catalog catalog.Reader
	Logger  *zap.Logger
}

func NewWishlistController(repo repository.WishlistRepository, cat catalog.Reader, logger *zap.Logger) *WishlistController {
	return &WishlistController{Repo: repo, Catalog: cat, Logger: logger}
}

// GetWishlist returns the user's wishlist enriched with catalog data.
// Catalog failures degrade to bare product ids rather than failing the
// request.
func (wc *WishlistController) GetWishlist(c *gin.Context) {
	userUUID, ok := authedUserUUID(c)
	if !ok {
		return
	}

	items, err := wc.Repo.FindByUserID(c.Request.Context(), userUUID)
	if err != nil {
		wc.Logger.Error("wishlist fetch failed", zap.String("user_id", userUUID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
		return
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	byID := map[string]catalog.Product{}
	if len(ids) > 0 {
		if products, err := wc.Catalog.GetProductsByIDs(c.Request.Context(), ids); err == nil {
			for _, p := range products {
				byID[p.ID] = p
			}
		} else {
			wc.Logger.Warn("wishlist catalog enrichment failed", zap.Error(err))
		}
	}

	type wishlistEntry struct {
		models.WishlistItem
		Product *catalog.Product `json:"product,omitempty"`
	}
	entries := make([]wishlistEntry, 0, len(items))
	for _, item := range items {
		entry := wishlistEntry{WishlistItem: item}
		if p, ok := byID[item.ProductID]; ok {
			entry.Product = &p
		}
		entries = append(entries, entry)
	}

	c.JSON(http.StatusOK, gin.H{"wishlist": entries})
}

// AddToWishlist saves a product for the user. Duplicates are a no-op.
func (wc *WishlistController) AddToWishlist(c *gin.Context) {
	userUUID, ok := authedUserUUID(c)
	if !ok {
		return
	}
	productID := c.Param("product_id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
		return
	}

	item := &models.WishlistItem{UserID: userUUID, ProductID: productID}
	if err := wc.Repo.Add(c.Request.Context(), item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusOK, gin.H{"message": "Already in wishlist"})
			return
		}
		wc.Logger.Error("wishlist add failed", zap.String("product_id", productID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Added to wishlist"})
}

// RemoveFromWishlist removes a saved product.
func (wc *WishlistController) RemoveFromWishlist(c *gin.Context) {
	userUUID, ok := authedUserUUID(c)
	if !ok {
		return
	}
	productID := c.Param("product_id")

	if err := wc.Repo.Remove(c.Request.Context(), userUUID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not in wishlist"})
			return
		}
		wc.Logger.Error("wishlist remove failed", zap.String("product_id", productID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Removed from wishlist"})
}

// authedUserUUID resolves the authenticated user id as a UUID, writing
// the error response itself on failure.
func authedUserUUID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return uuid.Nil, false
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return uuid.Nil, false
	}
	return userUUID, true
}
