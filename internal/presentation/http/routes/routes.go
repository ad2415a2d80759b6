package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ndthang/storepos-api/internal/config"
	"github.com/ndthang/storepos-api/internal/presentation/http/handler"
	"github.com/ndthang/storepos-api/internal/presentation/http/middleware"
	"github.com/ndthang/storepos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth   *handler.AuthHandler
	Order  *handler.OrderHandler
	Config *handler.ConfigHandler
	Report *handler.ReportHandler
	Print  *handler.PrintHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
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

	// The route casing is uneven (TaxConfig vs printconfig); it is the
	// contract the deployed terminals already speak, so it stays.
	api := router.Group("/api")
	{
		// Public routes (no authentication required)
		staff := api.Group("/staff")
		{
			staff.POST("/login", h.Auth.Login)
			staff.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-staff rate limiter
		rateLimiter := middleware.NewStaffRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Store switching works before a store has been selected; everything
	// else requires an active store.
	storeswitch := protected.Group("/storeswitch")
	{
		storeswitch.GET("/my-stores", h.Auth.MyStores)
		storeswitch.POST("/set-current", h.Auth.SetCurrentStore)
	}

	scoped := protected.Group("")
	scoped.Use(middleware.RequireStore())

	registerOrderRoutes(scoped, h)
	registerConfigRoutes(scoped, h)
	registerReportRoutes(scoped, h)
	registerPrintRoutes(scoped, h)
}

func registerOrderRoutes(scoped *gin.RouterGroup, h *Handlers) {
	orders := scoped.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.GET("/:id/document", h.Order.Document)
		orders.POST("/:id/cancel", h.Order.Cancel)
	}
}

func registerConfigRoutes(scoped *gin.RouterGroup, h *Handlers) {
	scoped.GET("/TaxConfig", h.Config.GetTaxConfig)
	scoped.POST("/TaxConfig", h.Config.SaveTaxConfig)

	scoped.GET("/PaymentMethodConfig", h.Config.GetPaymentMethodConfig)
	scoped.POST("/PaymentMethodConfig", h.Config.SavePaymentMethodConfig)

	scoped.GET("/printconfig", h.Config.GetPrintConfig)
	scoped.POST("/printconfig", h.Config.SavePrintConfig)
}

func registerReportRoutes(scoped *gin.RouterGroup, h *Handlers) {
	reports := scoped.Group("/reports")
	reports.Use(middleware.RequireRole("manager", "cashier"))
	{
		reports.GET("/cancelled-orders", h.Report.CancelledOrders)
	}
}

func registerPrintRoutes(scoped *gin.RouterGroup, h *Handlers) {
	printGroup := scoped.Group("/print")
	{
		printGroup.GET("/status", h.Print.Status)
		printGroup.POST("/test", h.Print.TestPrint)
		printGroup.POST("/orders/:id", h.Print.PrintOrder)
		printGroup.GET("/jobs/:id", h.Print.GetJob)
	}
}
