package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jraflores/tindahan-api/internal/application/service"
	"github.com/jraflores/tindahan-api/internal/config"
	"github.com/jraflores/tindahan-api/internal/presentation/http/handler"
	"github.com/jraflores/tindahan-api/internal/presentation/http/middleware"
	"github.com/jraflores/tindahan-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Settlement *handler.SettlementHandler
	Inventory  *handler.InventoryHandler
	Report     *handler.ReportHandler
	Catalog    *handler.CatalogHandler
	Terminal   *handler.TerminalHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Tokens *utils.TerminalTokenManager
	Cfg    *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	registerValidators()

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no terminal token required)
		v1.POST("/terminal/register", h.Terminal.Register)
		v1.GET("/discounts", h.Settlement.Discounts)

		// Terminal routes (token required when a secret is configured)
		terminal := v1.Group("")
		terminal.Use(middleware.TerminalAuth(deps.Tokens))

		// Per-terminal rate limiter
		rateLimiter := middleware.NewTerminalRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		terminal.Use(rateLimiter.Middleware())

		registerTerminalRoutes(terminal, h)
	}

	return router
}

func registerTerminalRoutes(terminal *gin.RouterGroup, h *Handlers) {
	// Settlement
	sales := terminal.Group("/sales")
	{
		sales.POST("", h.Settlement.Settle)
		sales.GET("", h.Settlement.List)
		sales.GET("/:id", h.Settlement.Get)
		sales.POST("/:id/void", h.Settlement.Void)
	}

	// Inventory ledger
	inventory := terminal.Group("/inventory")
	{
		inventory.GET("", h.Inventory.List)
		inventory.GET("/low-stock", h.Inventory.LowStock)
		inventory.GET("/:id", h.Inventory.Get)
		inventory.GET("/:id/movements", h.Inventory.Movements)
		inventory.POST("/:id/movements", h.Inventory.CreateMovement)
	}

	// Daily reports
	reports := terminal.Group("/reports")
	{
		reports.GET("/:date", h.Report.Get)
		reports.POST("/:date/finalize", h.Report.Finalize)
	}

	// Catalog (read-only)
	products := terminal.Group("/products")
	{
		products.GET("", h.Catalog.List)
		products.GET("/:id", h.Catalog.Get)
		products.GET("/:id/recipe", h.Catalog.Recipe)
	}
}

// registerValidators adds custom binding validators.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("discountcode", func(fl validator.FieldLevel) bool {
			return service.IsDiscountCode(fl.Field().String())
		})
	}
}
