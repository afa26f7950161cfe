package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
)

// BusinessRepository defines the interface for business data operations
type BusinessRepository interface {
	Create(ctx context.Context, business *entity.Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Business, error)
}
