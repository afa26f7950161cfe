package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
)

// TransactionRepository defines the interface for transaction data operations
type TransactionRepository interface {
	// Create stores the transaction and its Payments
	Create(ctx context.Context, transaction *entity.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Transaction, error)
	// ListByBusiness returns the transactions of a business created in [from, to)
	ListByBusiness(ctx context.Context, businessID uuid.UUID, from, to time.Time) ([]entity.Transaction, error)
}
