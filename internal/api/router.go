package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/experium/bookingapi/internal/api/handlers"
	"github.com/experium/bookingapi/internal/api/middleware"
	"github.com/experium/bookingapi/internal/cart"
	"github.com/experium/bookingapi/internal/catalog"
	"github.com/experium/bookingapi/internal/config"
	"github.com/experium/bookingapi/internal/geo"
	"github.com/experium/bookingapi/internal/repository"
)

// NewRouter creates and configures the Gin router
func NewRouter(
	cfg *config.Config,
	cat *catalog.Catalog,
	store *cart.Store,
	resolver geo.Resolver,
	repos *repository.Repositories,
	logger *zap.Logger,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Catalog browsing (public)
		v1.GET("/experiences", handlers.HandleListExperiences(cat, logger))
		v1.GET("/experiences/nearby", handlers.HandleNearbyExperiences(cat, resolver, logger))
		v1.GET("/experiences/:id", handlers.HandleGetExperience(cat, logger))

		// Cart (public, session-scoped)
		v1.GET("/cart", handlers.HandleGetCart(store, logger))
		v1.POST("/cart/items", handlers.HandleAddCartItem(store, cat, logger))
		v1.PATCH("/cart/items/:id", handlers.HandleUpdateCartItem(store, logger))
		v1.DELETE("/cart/items/:id", handlers.HandleRemoveCartItem(store, logger))
		v1.POST("/cart/clear", handlers.HandleClearCart(store, logger))
		v1.PUT("/cart/delivery", handlers.HandleSetDelivery(store, logger))

		// Checkout and vouchers (require authentication)
		authRoutes := v1.Group("")
		authRoutes.Use(middleware.AuthMiddleware(repos, logger))
		{
			authRoutes.POST("/checkout", handlers.HandleCheckout(store, repos, logger))
			authRoutes.GET("/vouchers", handlers.HandleListVouchers(repos, logger))
			authRoutes.GET("/vouchers/:code", handlers.HandleGetVoucher(repos, logger))
			authRoutes.POST("/vouchers/:code/redeem", handlers.HandleRedeemVoucher(repos, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
