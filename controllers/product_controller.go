package controllers

import (
	"net/http"
	"strconv"

	"storefront-backend/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductController struct {
	Catalog catalog.Reader
	Logger  *zap.Logger
}

func NewProductController(cat catalog.Reader, logger *zap.Logger) *ProductController {
	return &ProductController{Catalog: cat, Logger: logger}
}

// ListProducts returns the storefront product listing from the content
// store.
func (pc *ProductController) ListProducts(c *gin.Context) {
	limit := 50
	if l, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil && l > 0 {
		limit = l
	}

	products, err := pc.Catalog.ListProducts(c.Request.Context(), limit)
	if err != nil {
		pc.Logger.Error("product listing failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProduct returns a single product by catalog id.
func (pc *ProductController) GetProduct(c *gin.Context) {
	id := c.Param("id")

	products, err := pc.Catalog.GetProductsByIDs(c.Request.Context(), []string{id})
	if err != nil {
		pc.Logger.Error("product fetch failed", zap.String("product_id", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch product"})
		return
	}
	if len(products) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": products[0]})
}
