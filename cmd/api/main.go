package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/ndthang/storepos-api/internal/application/service"
	"github.com/ndthang/storepos-api/internal/config"
	"github.com/ndthang/storepos-api/internal/infrastructure/cache"
	"github.com/ndthang/storepos-api/internal/infrastructure/database"
	"github.com/ndthang/storepos-api/internal/infrastructure/repository"
	"github.com/ndthang/storepos-api/internal/presentation/http/handler"
	"github.com/ndthang/storepos-api/internal/presentation/http/routes"
	"github.com/ndthang/storepos-api/pkg/printer"
	"github.com/ndthang/storepos-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize cache: Redis when configured, in-process otherwise
	var appCache cache.Cache
	if cfg.Redis.Addr != "" {
		appCache = cache.NewRedis(cfg.Redis.Addr)
		log.Printf("Using Redis cache at %s", cfg.Redis.Addr)
	} else {
		appCache = cache.NewMemory()
		log.Printf("REDIS_ADDR not set, using in-process cache")
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	staffRepo := repository.NewStaffRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reportRepo := repository.NewReportRepository(db)
	configRepo := repository.NewConfigRepository(db)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	authService := service.NewAuthService(staffRepo, storeRepo, jwtManager)
	orderService := service.NewOrderService(orderRepo, storeRepo)
	configService := service.NewConfigService(configRepo, appCache)
	reportService := service.NewReportService(reportRepo, appCache)
	printService := service.NewPrintService(orderRepo, storeRepo, configService, thermalPrinter)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:   handler.NewAuthHandler(authService),
		Order:  handler.NewOrderHandler(orderService, printService),
		Config: handler.NewConfigHandler(configService),
		Report: handler.NewReportHandler(reportService),
		Print:  handler.NewPrintHandler(printService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
