package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"travelex/internal/app"
	"travelex/internal/config"
	"travelex/internal/events"
	"travelex/internal/handler"
	internalRedis "travelex/internal/redis"
	"travelex/internal/repository/postgres"
	"travelex/internal/service"
	"travelex/internal/weather"
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
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
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

	// Seed the rate catalog if a seed file is configured.
	if cfg.Pricing.SeedFile != "" {
		seed, err := app.LoadCatalogSeed(cfg.Pricing.SeedFile)
		if err != nil {
			log.Fatalf("failed to load catalog seed: %v", err)
		}
		created, err := app.ApplyCatalogSeed(ctx, postgres.NewCatalogRepository(db), seed)
		if err != nil {
			log.Fatalf("failed to apply catalog seed: %v", err)
		}
		log.Printf("Catalog seeded from %s (%d new adjustments)", cfg.Pricing.SeedFile, created)
	}

	publisher := app.NewPublisher(cfg.Events)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Printf("failed to close event publisher: %v", err)
		}
	}()

	weatherCache, err := app.NewWeatherCache(cfg.Weather, redisClient)
	if err != nil {
		log.Fatalf("failed to create weather cache: %v", err)
	}

	// Wire dependencies.
	server, assessor := wireServer(db, redisClient, nrApp, publisher, weatherCache, cfg)

	// Evict stale weather assessments until shutdown.
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go assessor.RunSweeper(sweepCtx)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	stopSweeper()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	if nrApp != nil {
		nrApp.Shutdown(5 * time.Second)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server and the
// weather assessor whose sweeper the caller runs.
func wireServer(
	db *sql.DB,
	redisClient *redis.Client,
	nrApp *newrelic.Application,
	publisher events.Publisher,
	weatherCache weather.Cache,
	cfg *config.Config,
) (*http.Server, *weather.Assessor) {
	// Initialize Redis stores.
	lockStore := internalRedis.NewLockStore(redisClient)
	catalogCache := internalRedis.NewCatalogCache(redisClient, cfg.Pricing.PreviewCatalogTTL)

	// Initialize repositories.
	userRepo := postgres.NewUserRepository(db)
	catalogRepo := postgres.NewCatalogRepository(db)
	tripRepo := postgres.NewTripRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	invoiceRepo := postgres.NewInvoiceRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Initialize services.
	notificationService := service.NewNotificationService(publisher)
	httpClient := app.NewHTTPClient(cfg.Weather.ProviderTimeout*2, nrApp)
	assessor := app.NewWeatherAssessor(cfg.Weather, httpClient, weatherCache, notificationService)

	accessService := service.NewAccessService(userRepo)
	userService := service.NewUserService(userRepo, accessService)
	catalogService := service.NewCatalogService(catalogRepo, catalogCache, accessService)
	quoteService := service.NewQuoteService(catalogRepo, catalogService)
	tripService := service.NewTripService(tripRepo, quoteService, accessService, assessor, notificationService)
	orderService := service.NewOrderService(orderRepo, tripService, accessService, notificationService)
	invoiceService := service.NewInvoiceService(uow, invoiceRepo, orderService, tripRepo, lockStore, accessService, notificationService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		UserHandler:    handler.NewUserHandler(userService),
		CatalogHandler: handler.NewCatalogHandler(catalogService),
		QuoteHandler:   handler.NewQuoteHandler(quoteService),
		TripHandler:    handler.NewTripHandler(tripService),
		OrderHandler:   handler.NewOrderHandler(orderService, invoiceService),
		WeatherHandler: handler.NewWeatherHandler(assessor),
		RedisClient:    redisClient,
		NewRelicApp:    nrApp,
	})

	// Create HTTP server.
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return server, assessor
}
