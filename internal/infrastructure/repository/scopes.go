package repository

import (
	"context"

	"github.com/sangkips/pos-api/internal/domain/enum"
	domainRepo "github.com/sangkips/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type ctxKey string

// txKey is the context key holding the *gorm.DB of the running transaction
const txKey ctxKey = "gorm_tx"

type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager backed by gorm
func NewTxManager(db *gorm.DB) domainRepo.TxManager {
	return &txManager{db: db}
}

// WithinTransaction runs fn in a gorm transaction. A nested call joins the
// outer transaction.
func (m *txManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}

// conn returns the transaction bound to ctx, or db when none is running
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// StatusScope filters orders by status when one is given
func StatusScope(status *enum.OrderStatus) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if status == nil {
			return db
		}
		return db.Where("status = ?", *status)
	}
}

// preloadApplied loads the applied discount and tax records of order items
func preloadApplied(db *gorm.DB) *gorm.DB {
	return db.
		Preload("AppliedDiscounts", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("AppliedTaxes", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") })
}
