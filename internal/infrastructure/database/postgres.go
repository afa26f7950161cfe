package database

import (
	"fmt"
	"time"

	"github.com/sangkips/pos-api/internal/config"
	"github.com/sangkips/pos-api/internal/domain/entity"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection. Timestamps are
// written in UTC.
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool, log *zap.Logger) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if debug {
		logLevel = gormlogger.Info
	}
	gormLog := gormlogger.New(zap.NewStdLog(log.Named("gorm")), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logLevel,
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger:  gormLog,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("connected to PostgreSQL database", zap.String("host", cfg.Host), zap.String("database", cfg.Name))
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	if err := db.SetupJoinTable(&entity.ProductGroup{}, "Products", &entity.ProductGroupMember{}); err != nil {
		return fmt.Errorf("failed to set up product group members: %w", err)
	}
	if err := db.SetupJoinTable(&entity.ServiceGroup{}, "Services", &entity.ServiceGroupMember{}); err != nil {
		return fmt.Errorf("failed to set up service group members: %w", err)
	}

	err := db.AutoMigrate(
		// Accounts
		&entity.Business{},
		&entity.User{},

		// Catalog
		&entity.Product{},
		&entity.ProductStock{},
		&entity.Service{},
		&entity.ProductGroup{},
		&entity.ServiceGroup{},

		// Pricing rules
		&entity.Discount{},
		&entity.Tax{},

		// Orders and settlement
		&entity.Order{},
		&entity.OrderItem{},
		&entity.AppliedDiscount{},
		&entity.AppliedTax{},
		&entity.Giftcard{},
		&entity.Transaction{},
		&entity.Payment{},

		// System
		&entity.IdempotencyRecord{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("database migrations completed")
	return nil
}
