package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-api/internal/config"
	"github.com/sangkips/pos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-api/internal/domain/repository"
	"github.com/sangkips/pos-api/internal/presentation/http/handler"
	"github.com/sangkips/pos-api/internal/presentation/http/middleware"
	"github.com/sangkips/pos-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Catalog     *handler.CatalogHandler
	PricingRule *handler.PricingRuleHandler
	Order       *handler.OrderHandler
	Transaction *handler.TransactionHandler
	Report      *handler.ReportHandler
	Receipt     *handler.ReceiptHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	// Ctx bounds background work started by the router, such as limiter cleanup
	Ctx             context.Context
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Logger          *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ctx := deps.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	router := gin.New()

	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, h)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewBusinessRateLimiter(deps.Cfg.RateLimit)
		go rateLimiter.Run(ctx, 5*time.Minute)
		protected.Use(rateLimiter.Middleware())

		idempotency := middleware.Idempotency(middleware.IdempotencyConfig{
			Repo:   deps.IdempotencyRepo,
			TTL:    deps.Cfg.Idempotency.TTL,
			Logger: log,
		})

		protected.GET("/auth/me", h.Auth.Me)

		registerCatalogRoutes(protected, h)
		registerPricingRoutes(protected, h)
		registerOrderRoutes(protected, h, idempotency)
		registerReportRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	admin := middleware.RequireRole(entity.RoleAdmin)

	businesses := protected.Group("/businesses")
	{
		businesses.POST("", admin, h.Catalog.CreateBusiness)
		businesses.GET("/:business_id", h.Catalog.GetBusiness)
	}

	products := protected.Group("/products")
	{
		products.POST("", admin, h.Catalog.CreateProduct)
		products.GET("/:product_id", h.Catalog.GetProduct)
		products.PUT("/:product_id/stock", admin, h.Catalog.SetStock)
	}

	services := protected.Group("/services")
	{
		services.POST("", admin, h.Catalog.CreateService)
		services.GET("/:service_id", h.Catalog.GetService)
	}

	protected.POST("/product-groups", admin, h.Catalog.CreateProductGroup)
	protected.GET("/product-groups/:group_id", h.Catalog.GetProductGroup)
	protected.POST("/service-groups", admin, h.Catalog.CreateServiceGroup)
	protected.GET("/service-groups/:group_id", h.Catalog.GetServiceGroup)
}

func registerPricingRoutes(protected *gin.RouterGroup, h *Handlers) {
	admin := middleware.RequireRole(entity.RoleAdmin)

	protected.POST("/discounts", admin, h.PricingRule.CreateDiscount)
	protected.GET("/discounts/:discount_id", h.PricingRule.GetDiscount)
	protected.POST("/taxes", admin, h.PricingRule.CreateTax)
	protected.GET("/taxes/:tax_id", h.PricingRule.GetTax)

	giftcards := protected.Group("/giftcards")
	{
		giftcards.POST("", admin, h.PricingRule.IssueGiftcard)
		giftcards.GET("/:code", h.PricingRule.GetGiftcard)
	}
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, idempotency gin.HandlerFunc) {
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", h.Order.Create)
		orders.GET("/:order_id", h.Order.Get)
		orders.DELETE("/:order_id", h.Order.Delete)

		orders.GET("/:order_id/items", h.Order.ListItems)
		orders.POST("/:order_id/items", h.Order.AddItem)
		orders.PATCH("/:order_id/items/:item_id", h.Order.UpdateItem)
		orders.DELETE("/:order_id/items/:item_id", h.Order.RemoveItem)
		orders.POST("/:order_id/items/:item_id/discount", h.Order.ApplyDiscount)

		orders.POST("/:order_id/card-authorizations", idempotency, h.Transaction.AuthorizeCard)
		orders.GET("/:order_id/transactions", h.Transaction.List)
		orders.POST("/:order_id/transactions", idempotency, h.Transaction.Process)
		orders.GET("/:order_id/transactions/:transaction_id", h.Transaction.Get)
		orders.POST("/:order_id/transactions/:transaction_id/refund", idempotency, h.Transaction.Refund)
		orders.POST("/:order_id/transactions/:transaction_id/receipt", h.Receipt.Print)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/printer/status", h.Receipt.PrinterStatus)
	protected.GET("/reports/transactions.xlsx", middleware.RequireRole(entity.RoleAdmin), h.Report.TransactionsXLSX)
}
