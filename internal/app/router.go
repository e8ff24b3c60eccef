package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"travelex/internal/domain"
	"travelex/internal/handler"
	"travelex/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	UserHandler    *handler.UserHandler
	CatalogHandler *handler.CatalogHandler
	QuoteHandler   *handler.QuoteHandler
	TripHandler    *handler.TripHandler
	OrderHandler   *handler.OrderHandler
	WeatherHandler *handler.WeatherHandler
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

	router.Use(middleware.Caller())
	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// User routes.
		users := v1.Group("/users")
		{
			users.POST("", deps.UserHandler.Register)
			users.GET("", deps.UserHandler.GetAll)
			users.GET("/:id", deps.UserHandler.GetUser)
		}

		// Catalog routes.
		catalog := v1.Group("/catalog")
		{
			catalog.GET("", deps.CatalogHandler.GetCatalog)
			catalog.PUT("/rates", deps.CatalogHandler.UpdateRates)
			registerAdjustmentRoutes(catalog.Group("/surcharges"), deps.CatalogHandler, domain.AdjustmentTypeSurcharge)
			registerAdjustmentRoutes(catalog.Group("/discounts"), deps.CatalogHandler, domain.AdjustmentTypeDiscount)
		}

		// Quote routes.
		quotes := v1.Group("/quotes")
		{
			quotes.POST("", deps.QuoteHandler.Quote)
			quotes.POST("/preview", deps.QuoteHandler.Preview)
		}

		// Trip routes.
		trips := v1.Group("/trips")
		{
			trips.POST("", deps.TripHandler.CreateTrip)
			trips.GET("", deps.TripHandler.GetAll)
			trips.GET("/:id", deps.TripHandler.GetTrip)
			trips.DELETE("/:id", deps.TripHandler.DeleteTrip)
			trips.GET("/:id/weather", deps.TripHandler.GetWeather)
		}

		// Order and invoice routes.
		orders := v1.Group("/orders")
		{
			orders.POST("", deps.OrderHandler.CreateOrder)
			orders.GET("", deps.OrderHandler.GetAll)
			orders.GET("/:id", deps.OrderHandler.GetOrder)
			orders.POST("/:id/invoice", deps.OrderHandler.IssueInvoice)
		}
		invoices := v1.Group("/invoices")
		{
			invoices.GET("/:id", deps.OrderHandler.GetInvoice)
			invoices.GET("/:id/text", deps.OrderHandler.GetInvoiceText)
		}

		// Weather routes.
		v1.GET("/weather", deps.WeatherHandler.GetForecast)
	}

	return router
}

func registerAdjustmentRoutes(group *gin.RouterGroup, h *handler.CatalogHandler, typ domain.AdjustmentType) {
	group.GET("", h.ListAdjustments(typ))
	group.POST("", h.CreateAdjustment(typ))
	group.PUT("/:id", h.UpdateAdjustment(typ))
	group.DELETE("/:id", h.DeleteAdjustment(typ))
}
