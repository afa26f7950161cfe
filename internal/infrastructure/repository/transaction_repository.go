package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	return conn(ctx, r.db).Create(transaction).Error
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transaction entity.Transaction
	err := conn(ctx, r.db).Preload("Payments").First(&transaction, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transaction, err
}

func (r *transactionRepository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Transaction, error) {
	transactions := []entity.Transaction{}
	err := conn(ctx, r.db).
		Preload("Payments").
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID, from, to time.Time) ([]entity.Transaction, error) {
	transactions := []entity.Transaction{}
	err := conn(ctx, r.db).
		Preload("Payments").
		Joins("JOIN orders ON orders.id = transactions.order_id").
		Where("orders.business_id = ? AND transactions.created_at >= ? AND transactions.created_at < ?", businessID, from, to).
		Order("transactions.created_at ASC").
		Find(&transactions).Error
	return transactions, err
}
