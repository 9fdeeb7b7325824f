package cmd

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"event-management/config"
	"event-management/internal/cache"
	"event-management/internal/handlers"
	"event-management/internal/payments"
	"event-management/internal/realtime"
	"event-management/internal/services"
	"event-management/internal/store"
	"event-management/monitoring"
	"event-management/security"
	"event-management/utils"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"

	_ "event-management/migrations"
)

func Start() error {
	app := pocketbase.New()

	cfg := config.LoadConfig()

	redisClient, err := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	// Payment gateway: simulator behind a circuit breaker. An open breaker
	// reads as a declined payment upstream.
	var gateway payments.Gateway = payments.NewSimulator(cfg.PaymentDelay, cfg.PaymentFailureRate)
	gateway = payments.WithBreaker(gateway, utils.NewCircuitBreaker("payment-gateway"))

	// Realtime notifier is optional; without keys everything still works,
	// clients just poll.
	var notifier services.Notifier = services.NopNotifier{}
	if cfg.PubNubPublishKey != "" && cfg.PubNubSubscribeKey != "" {
		notifier = realtime.NewPubNubNotifier(
			cfg.PubNubPublishKey,
			cfg.PubNubSubscribeKey,
			cfg.PubNubSecretKey,
			"event-management-server",
		)
	}

	db := store.New(app)
	availabilityCache := cache.NewAvailabilityCache(redisClient, cfg.AvailabilityCacheTTL)
	availability := cache.NewCachedChecker(services.NewAvailabilityService(db, db), availabilityCache)

	locks := services.NewEventLocks()
	purchaseService := services.NewPurchaseService(db, db, gateway, locks,
		notifier, availabilityCache, cfg.PaymentTimeout)
	ticketService := services.NewTicketService(db, db, gateway, locks,
		notifier, availabilityCache, cfg.CancellationWindow)
	reportingService := services.NewReportingService(db)

	authHandler := handlers.NewAuthHandler(app)
	eventHandler := handlers.NewEventHandler(db, availability, reportingService)
	categoryHandler := handlers.NewCategoryHandler(db, reportingService)
	ticketHandler := handlers.NewTicketHandler(purchaseService, ticketService)
	userHandler := handlers.NewUserHandler(db, ticketService, reportingService)
	adminHandler := handlers.NewAdminHandler(reportingService)

	limiter := security.NewRateLimiter(redisClient)

	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go handleShutdown(cancel)

	if cfg.EnableMetrics {
		go monitoring.Serve(cfg.MetricsPort)
	}

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		go warmAvailability(ctx, db, availability)

		// Auth endpoints
		e.Router.POST("/api/v1/auth/register", authHandler.Register)
		e.Router.POST("/api/v1/auth/login", authHandler.Login)
		e.Router.GET("/api/v1/auth/me", authHandler.Me)

		// Event endpoints. Static paths before the {id} wildcard.
		e.Router.GET("/api/v1/events", eventHandler.List)
		e.Router.POST("/api/v1/events", eventHandler.Create)
		e.Router.GET("/api/v1/events/upcoming", eventHandler.Upcoming)
		e.Router.GET("/api/v1/events/search", eventHandler.Search)
		e.Router.GET("/api/v1/events/time-range", eventHandler.TimeRange)
		e.Router.GET("/api/v1/events/top/registered", eventHandler.TopRegistered)
		e.Router.GET("/api/v1/events/top/rated", eventHandler.TopRated)
		e.Router.GET("/api/v1/events/count-by-status", eventHandler.CountByStatus)
		e.Router.GET("/api/v1/events/revenue/by-event", eventHandler.RevenueByEvent)
		e.Router.GET("/api/v1/events/{id}", eventHandler.Get)
		e.Router.PATCH("/api/v1/events/{id}", eventHandler.Update)
		e.Router.DELETE("/api/v1/events/{id}", eventHandler.Delete)
		e.Router.GET("/api/v1/events/{eventId}/availability", eventHandler.Availability)
		e.Router.GET("/api/v1/events/{eventId}/tickets-sold", eventHandler.TicketsSold)

		// Category endpoints
		e.Router.GET("/api/v1/categories", categoryHandler.List)
		e.Router.POST("/api/v1/categories", categoryHandler.Create)
		e.Router.POST("/api/v1/categories/initialize", categoryHandler.Initialize)
		e.Router.GET("/api/v1/categories/with-count", categoryHandler.WithCounts)

		// Ticket endpoints
		e.Router.POST("/api/v1/tickets/purchase", ticketHandler.Purchase).
			BindFunc(limiter.BlockBots()).
			BindFunc(limiter.Limit("purchase", int64(cfg.PurchaseRateLimit), cfg.PurchaseRateWindow))
		e.Router.GET("/api/v1/tickets/my-tickets", ticketHandler.MyTickets)
		e.Router.GET("/api/v1/tickets/{ticketId}", ticketHandler.Get)
		e.Router.POST("/api/v1/tickets/{ticketId}/cancel", ticketHandler.Cancel)

		// User endpoints
		e.Router.GET("/api/v1/users/search/by-email", userHandler.SearchByEmail)
		e.Router.GET("/api/v1/users/{userId}/profile", userHandler.Profile)
		e.Router.GET("/api/v1/users/{userId}/booking-history", userHandler.BookingHistory)

		// Admin endpoints
		e.Router.GET("/api/v1/admin/dashboard", adminHandler.Dashboard)
		e.Router.GET("/api/v1/admin/payment-summary/by-event", adminHandler.PaymentSummary)

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(200, map[string]string{"status": "healthy"})
		})

		slog.Info("routes registered", "environment", cfg.Environment)

		return e.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
	return nil
}

// warmAvailability primes the cache and gauges for events still on sale so
// the first availability reads after startup are hits.
func warmAvailability(ctx context.Context, db *store.Store, availability cache.Checker) {
	events, err := db.UpcomingEvents(ctx, 100)
	if err != nil {
		slog.Warn("availability warmup skipped", "error", err)
		return
	}
	for _, event := range events {
		if ctx.Err() != nil {
			return
		}
		if _, err := availability.Check(ctx, event.ID); err != nil {
			slog.Warn("availability warmup failed", "event_id", event.ID, "error", err)
		}
	}
	slog.Info("availability warmed", "events", len(events))
}

func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	slog.Info("shutting down")
	cancel()
}
