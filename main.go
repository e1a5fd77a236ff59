package main

import (
	"log"
	"time"

	"storefront-backend/catalog"
	"storefront-backend/config"
	"storefront-backend/controllers"
	"storefront-backend/database"
	"storefront-backend/gateway"
	"storefront-backend/logger"
	"storefront-backend/middleware"
	"storefront-backend/models"
	"storefront-backend/repository"
	"storefront-backend/routes"
	"storefront-backend/sender"
	"storefront-backend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Initialize(cfg.Environment)
	defer logger.Log.Sync()

	db, err := database.ConnectPostgres(cfg, logger.Log,
		&models.User{},
		&models.Order{},
		&models.OrderItem{},
		&models.Address{},
		&models.Measurement{},
		&models.WishlistItem{},
	)
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}

	rdb, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		logger.Log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	emailSender, err := sender.NewSMTPSender(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to configure email sender", zap.Error(err))
	}

	contentClient := catalog.NewClient(cfg.ContentStoreProjectID, cfg.ContentStoreDataset, cfg.ContentStoreToken)
	catalogReader := catalog.NewCachedReader(contentClient, rdb, 5*time.Minute, logger.Log)

	razorpay := gateway.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	userRepo := repository.NewGormUserRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)
	cartRepo := repository.NewCartRepository(rdb, cfg.CartTTL)
	addressRepo := repository.NewGormAddressRepository(db)
	measurementRepo := repository.NewGormMeasurementRepository(db)
	wishlistRepo := repository.NewGormWishlistRepository(db)

	validationSvc := services.NewValidationService(catalogReader, logger.Log)
	notifierSvc, err := services.NewNotifierService(userRepo, catalogReader, emailSender, logger.Log)
	if err != nil {
		logger.Log.Fatal("Failed to build notifier", zap.Error(err))
	}
	paymentSvc := services.NewPaymentService(orderRepo, notifierSvc, cfg.RazorpayKeySecret, logger.Log)
	checkoutSvc := services.NewCheckoutService(cartRepo, orderRepo, validationSvc, razorpay, cfg.RazorpayKeyID, logger.Log)
	orderSvc := services.NewOrderService(orderRepo, logger.Log)
	authSvc := services.NewAuthService(userRepo, emailSender, cfg.JWTSecret, logger.Log)

	ctrl := &routes.Controllers{
		Auth:     controllers.NewAuthController(authSvc),
		Cart:     controllers.NewCartController(cartRepo, logger.Log),
		Checkout: controllers.NewCheckoutController(checkoutSvc),
		Payment:  controllers.NewPaymentController(paymentSvc, logger.Log),
		Orders:   controllers.NewOrderController(orderSvc),
		Products: controllers.NewProductController(catalogReader, logger.Log),
		Wishlist: controllers.NewWishlistController(wishlistRepo, catalogReader, logger.Log),
		Profile:  controllers.NewProfileController(addressRepo, measurementRepo, logger.Log),
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middleware.IPRateLimitMiddleware())

	counters := middleware.NewRedisCounterStore(rdb)
	routes.RegisterRoutes(r, ctrl, cfg.JWTSecret, counters)

	logger.Log.Info("Starting storefront backend", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatal("Server exited", zap.Error(err))
	}
}
