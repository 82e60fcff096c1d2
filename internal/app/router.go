package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"travel/internal/handler"
	"travel/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	ListingHandler *handler.ListingHandler
	BookingHandler *handler.BookingHandler
	GuestHandler   *handler.GuestHandler
	PaymentHandler *handler.PaymentHandler
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Listing routes.
		listings := v1.Group("/listings")
		{
			listings.POST("", deps.ListingHandler.CreateListing)
			listings.GET("", deps.ListingHandler.GetAll)
			listings.GET("/:id", deps.ListingHandler.GetListing)
		}

		// Guest routes.
		guests := v1.Group("/guests")
		{
			guests.POST("", deps.GuestHandler.CreateGuest)
			guests.GET("", deps.GuestHandler.GetAll)
			guests.GET("/:id", deps.GuestHandler.GetGuest)
		}

		// Booking routes.
		bookings := v1.Group("/bookings")
		{
			bookings.POST("", deps.BookingHandler.CreateBooking)
			bookings.GET("", deps.BookingHandler.GetAll)
			bookings.GET("/:id", deps.BookingHandler.GetBooking)
		}

		// Payment routes. The verify endpoint doubles as the gateway's
		// callback URL, so it stays a GET with the reference in the path.
		v1.POST("/initiate-payment", deps.PaymentHandler.InitiatePayment)
		v1.GET("/verify-payment/:tx_ref", deps.PaymentHandler.VerifyPayment)
		v1.GET("/payments/:tx_ref", deps.PaymentHandler.GetPayment)
	}

	return router
}
