package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jraflores/tindahan-api/internal/application/service"
	"github.com/jraflores/tindahan-api/internal/config"
	"github.com/jraflores/tindahan-api/internal/infrastructure/database"
	"github.com/jraflores/tindahan-api/internal/infrastructure/repository"
	"github.com/jraflores/tindahan-api/internal/presentation/http/handler"
	"github.com/jraflores/tindahan-api/internal/presentation/http/routes"
	"github.com/jraflores/tindahan-api/pkg/logger"
	"github.com/jraflores/tindahan-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.SetDebug(cfg.App.Debug)
	log := logger.Get()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	// Seed the demo catalog when asked
	if cfg.App.SeedDemo {
		if err := database.SeedDemoData(db); err != nil {
			log.WithError(err).Warn("failed to seed demo data")
		}
	}

	// Initialize terminal token manager
	tokens := utils.NewTerminalTokenManager(cfg.Terminal.TokenSecret, cfg.Terminal.TokenExpiry)

	// Initialize repositories
	inventoryRepo := repository.NewInventoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	reportRepo := repository.NewDailyReportRepository(db)

	// Initialize services
	ledgerService := service.NewLedgerService(inventoryRepo)
	reportService := service.NewReportService(reportRepo)
	catalogService := service.NewCatalogService(productRepo)
	settlementService := service.NewSettlementService(saleRepo, productRepo, ledgerService, reportService, cfg.Tax.Rate)

	// Initialize handlers
	handlers := &routes.Handlers{
		Settlement: handler.NewSettlementHandler(settlementService),
		Inventory:  handler.NewInventoryHandler(ledgerService),
		Report:     handler.NewReportHandler(reportService),
		Catalog:    handler.NewCatalogHandler(catalogService),
		Terminal:   handler.NewTerminalHandler(tokens, cfg.Terminal.TokenSecret),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Tokens: tokens,
		Cfg:    cfg,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.WithField("port", port).WithField("env", cfg.App.Env).Info("starting " + cfg.App.Name)

	if err := router.Run(":" + port); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}
