package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// GiftcardRepository defines the interface for giftcard data operations
type GiftcardRepository interface {
	Create(ctx context.Context, giftcard *entity.Giftcard) error
	GetByCode(ctx context.Context, code string) (*entity.Giftcard, error)
	// AtomicDebit subtracts amount only if the balance covers it.
	// Returns (false, nil) when the balance is insufficient.
	AtomicDebit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error)
}
