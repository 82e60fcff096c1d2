package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"travel/internal/app"
	"travel/internal/config"
	"travel/internal/email"
	"travel/internal/gateway/chapa"
	"travel/internal/handler"
	internalRedis "travel/internal/redis"
	"travel/internal/repository/postgres"
	"travel/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server, notificationService := wireServer(db, redisClient, nrApp, cfg)

	// Start the notification worker.
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go notificationService.Run(workerCtx)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	stopWorker()

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server together
// with the notification worker to run alongside it.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) (*http.Server, *service.NotificationService) {
	// Initialize Redis stores.
	cacheStore := internalRedis.NewCacheStore(redisClient)
	queueStore := internalRedis.NewQueueStore(redisClient)

	// Initialize repositories.
	listingRepo := postgres.NewListingRepository(db)
	guestRepo := postgres.NewGuestRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)

	// Initialize the payment gateway client.
	gatewayClient := chapa.New(chapa.Config{
		SecretKey: cfg.Chapa.SecretKey,
		BaseURL:   cfg.Chapa.BaseURL,
		Timeout:   cfg.Chapa.Timeout,
	})

	// Initialize the email sender; without an API key, email goes to the log.
	var sender email.Sender
	if cfg.Email.SendGridAPIKey != "" {
		sender = email.NewSendGridSender(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	} else {
		sender = email.NewLogSender()
		log.Println("SendGrid API key not set, email delivery goes to the log")
	}

	// Initialize services.
	notificationService := service.NewNotificationService(queueStore, sender)
	listingService := service.NewListingService(listingRepo, cacheStore)
	guestService := service.NewGuestService(guestRepo)
	bookingService := service.NewBookingService(bookingRepo, listingRepo, guestRepo)
	paymentService := service.NewPaymentService(
		bookingRepo,
		guestRepo,
		listingRepo,
		paymentRepo,
		gatewayClient,
		notificationService,
		service.PaymentConfig{
			CallbackBaseURL: cfg.Chapa.CallbackBaseURL,
			ReturnURL:       cfg.Chapa.ReturnURL,
			Currency:        cfg.Chapa.Currency,
		},
	)

	// Initialize handlers.
	listingHandler := handler.NewListingHandler(listingService)
	guestHandler := handler.NewGuestHandler(guestService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	paymentHandler := handler.NewPaymentHandler(paymentService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		ListingHandler: listingHandler,
		BookingHandler: bookingHandler,
		GuestHandler:   guestHandler,
		PaymentHandler: paymentHandler,
		RedisClient:    redisClient,
		NewRelicApp:    nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, notificationService
}
