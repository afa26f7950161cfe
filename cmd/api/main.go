package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-api/internal/application/service"
	"github.com/sangkips/pos-api/internal/config"
	domainRepo "github.com/sangkips/pos-api/internal/domain/repository"
	"github.com/sangkips/pos-api/internal/infrastructure/cache"
	"github.com/sangkips/pos-api/internal/infrastructure/database"
	"github.com/sangkips/pos-api/internal/infrastructure/memory"
	"github.com/sangkips/pos-api/internal/infrastructure/messaging"
	"github.com/sangkips/pos-api/internal/infrastructure/messaging/kafka"
	"github.com/sangkips/pos-api/internal/infrastructure/repository"
	"github.com/sangkips/pos-api/internal/presentation/http/handler"
	"github.com/sangkips/pos-api/internal/presentation/http/routes"
	"github.com/sangkips/pos-api/pkg/logger"
	"github.com/sangkips/pos-api/pkg/payments"
	"github.com/sangkips/pos-api/pkg/printer"
	"github.com/sangkips/pos-api/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.JWT.Secret == "" {
		zlog.Fatal("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, idempotencyRepo := buildRepositories(cfg, zlog)

	// Redis replaces the database for idempotency records when configured
	if cfg.Idempotency.Backend == "redis" {
		redisRepo := cache.NewRedisIdempotencyRepository(cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB))
		if err := redisRepo.Ping(ctx); err != nil {
			zlog.Fatal("Failed to connect to redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		defer redisRepo.Close()
		idempotencyRepo = redisRepo
	}
	go sweepIdempotency(ctx, idempotencyRepo, zlog)

	// Order events
	var publisher messaging.Publisher = messaging.NewNoopPublisher()
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(cfg.Kafka.Brokers)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		zlog.Info("publishing order events", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.OrdersTopic))
	}
	events := service.NewEventSink(publisher, cfg.Kafka.OrdersTopic, zlog)

	// Card processor
	var processor payments.Processor
	if cfg.Stripe.APIKey != "" {
		stripeProcessor, err := payments.NewStripeProcessor(payments.StripeConfig{
			APIKey:    cfg.Stripe.APIKey,
			AccountID: cfg.Stripe.AccountID,
			Logger:    zlog,
		})
		if err != nil {
			zlog.Fatal("Failed to configure stripe", zap.Error(err))
		}
		processor = stripeProcessor
	}

	// Receipt printer
	receiptPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		zlog.Warn("Failed to initialize printer", zap.Error(err))
		receiptPrinter = printer.Null()
	}

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize services
	authService := service.NewAuthService(repos.Users, repos.Businesses, jwtManager)
	catalogService := service.NewCatalogService(repos)
	ruleService := service.NewPricingRuleService(repos)
	giftcardService := service.NewGiftcardService(repos)
	orderService := service.NewOrderService(repos, events, zlog)
	pricingService := service.NewPricingService(repos, events, zlog)
	settlementService := service.NewSettlementService(repos, processor, events, zlog)
	reportService := service.NewReportService(repos.Transactions)
	receiptService := service.NewReceiptService(repos, receiptPrinter, cfg.Printer.Type, cfg.Printer.Width, zlog)

	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Catalog:     handler.NewCatalogHandler(catalogService),
		PricingRule: handler.NewPricingRuleHandler(ruleService, giftcardService),
		Order:       handler.NewOrderHandler(orderService, pricingService),
		Transaction: handler.NewTransactionHandler(settlementService),
		Report:      handler.NewReportHandler(reportService),
		Receipt:     handler.NewReceiptHandler(receiptService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		Ctx:             ctx,
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Logger:          zlog,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("starting server",
			zap.String("app", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
			zap.String("db_driver", cfg.Database.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}

// buildRepositories connects the configured store. The memory driver keeps
// everything in process and is meant for demos and local runs.
func buildRepositories(cfg *config.Config, zlog *zap.Logger) (service.Repositories, domainRepo.IdempotencyRepository) {
	if cfg.Database.Driver == "memory" {
		zlog.Warn("using the in-memory store; data is lost on restart")
		store := memory.NewStore()
		return service.Repositories{
			Tx:             store,
			Businesses:     store.Businesses(),
			Users:          store.Users(),
			Products:       store.Products(),
			Services:       store.Services(),
			Categories:     store.Categories(),
			Discounts:      store.Discounts(),
			Taxes:          store.Taxes(),
			AppliedPricing: store.AppliedPricing(),
			Giftcards:      store.Giftcards(),
			Orders:         store.Orders(),
			OrderItems:     store.OrderItems(),
			Transactions:   store.Transactions(),
		}, store.Idempotency()
	}

	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug, zlog)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	if cfg.Database.Migrate {
		if err := database.AutoMigrate(db, zlog); err != nil {
			zlog.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	return service.Repositories{
		Tx:             repository.NewTxManager(db),
		Businesses:     repository.NewBusinessRepository(db),
		Users:          repository.NewUserRepository(db),
		Products:       repository.NewProductRepository(db),
		Services:       repository.NewServiceRepository(db),
		Categories:     repository.NewCategoryRepository(db),
		Discounts:      repository.NewDiscountRepository(db),
		Taxes:          repository.NewTaxRepository(db),
		AppliedPricing: repository.NewAppliedPricingRepository(db),
		Giftcards:      repository.NewGiftcardRepository(db),
		Orders:         repository.NewOrderRepository(db),
		OrderItems:     repository.NewOrderItemRepository(db),
		Transactions:   repository.NewTransactionRepository(db),
	}, repository.NewIdempotencyRepository(db)
}

// sweepIdempotency removes expired idempotency records every hour
func sweepIdempotency(ctx context.Context, repo domainRepo.IdempotencyRepository, zlog *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx, time.Now()); err != nil {
				zlog.Warn("failed to sweep idempotency records", zap.Error(err))
			}
		}
	}
}
