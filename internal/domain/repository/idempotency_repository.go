package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for cached settlement responses
type IdempotencyRepository interface {
	// GetByKey retrieves a record by its key and the user that sent it
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyRecord, error)
	Create(ctx context.Context, record *entity.IdempotencyRecord) error
	// DeleteExpired removes records expired at now
	DeleteExpired(ctx context.Context, now time.Time) error
}
