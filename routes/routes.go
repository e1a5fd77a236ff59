package routes

import (
	"net/http"
	"time"

	"storefront-backend/controllers"
	"storefront-backend/middleware"

	"github.com/gin-gonic/gin"
)

// Controllers bundles everything RegisterRoutes wires up.
type Controllers struct {
	Auth     *controllers.AuthController
	Cart     *controllers.CartController
	Checkout *controllers.CheckoutController
	Payment  *controllers.PaymentController
	Orders   *controllers.OrderController
	Products *controllers.ProductController
	Wishlist *controllers.WishlistController
	Profile  *controllers.ProfileController
}

func RegisterRoutes(r *gin.Engine, ctrl *Controllers, jwtSecret string, counters middleware.CounterStore) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public catalog.
	products := r.Group("/products")
	products.GET("/", ctrl.Products.ListProducts)
	products.GET("/:id", ctrl.Products.GetProduct)

	// Auth endpoints carry a tighter limit: OTP and login are the abuse
	// targets.
	auth := r.Group("/auth")
	auth.Use(middleware.RateLimit(counters, 10, time.Minute))
	auth.POST("/register", ctrl.Auth.Register)
	auth.POST("/verify-email", ctrl.Auth.VerifyEmail)
	auth.POST("/login", ctrl.Auth.Login)
	auth.POST("/logout", ctrl.Auth.Logout)

	authed := r.Group("/")
	authed.Use(middleware.AuthMiddleware(jwtSecret))

	cart := authed.Group("/cart")
	cart.GET("/", ctrl.Cart.GetCart)
	cart.POST("/items", ctrl.Cart.AddItem)
	cart.DELETE("/items/:product_id", ctrl.Cart.RemoveItem)
	cart.DELETE("/", ctrl.Cart.ClearCart)

	checkout := authed.Group("/checkout")
	checkout.POST("/", ctrl.Checkout.Create)

	payment := authed.Group("/payment")
	payment.Use(middleware.RateLimit(counters, 30, time.Minute))
	payment.POST("/verify", ctrl.Payment.Verify)

	orders := authed.Group("/orders")
	orders.GET("/", ctrl.Orders.GetOrders)
	orders.GET("/:id", ctrl.Orders.GetOrderByID)

	wishlist := authed.Group("/wishlist")
	wishlist.GET("/", ctrl.Wishlist.GetWishlist)
	wishlist.POST("/:product_id", ctrl.Wishlist.AddToWishlist)
	wishlist.DELETE("/:product_id", ctrl.Wishlist.RemoveFromWishlist)

	addresses := authed.Group("/addresses")
	addresses.GET("/", ctrl.Profile.ListAddresses)
	addresses.POST("/", ctrl.Profile.CreateAddress)
	addresses.PUT("/:id", ctrl.Profile.UpdateAddress)
	addresses.DELETE("/:id", ctrl.Profile.DeleteAddress)

	measurements := authed.Group("/measurements")
	measurements.GET("/", ctrl.Profile.ListMeasurements)
	measurements.POST("/", ctrl.Profile.CreateMeasurement)
	measurements.PUT("/:id", ctrl.Profile.UpdateMeasurement)
	measurements.DELETE("/:id", ctrl.Profile.DeleteMeasurement)

	admin := authed.Group("/admin")
	admin.Use(middleware.RequireRole("admin"))
	admin.GET("/orders", ctrl.Orders.GetAllOrders)
	admin.PATCH("/orders/:id/status", ctrl.Orders.UpdateOrderStatus)
}
