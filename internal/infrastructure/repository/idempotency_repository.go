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

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates a postgres backed idempotency repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyRecord, error) {
	var record entity.IdempotencyRecord
	err := conn(ctx, r.db).
		Where("key = ? AND user_id = ?", key, userID).
		First(&record).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

// Create stores the record, replacing an expired record for the same key
func (r *idempotencyRepository) Create(ctx context.Context, record *entity.IdempotencyRecord) error {
	db := conn(ctx, r.db)
	if err := db.
		Where("key = ? AND user_id = ? AND expires_at < ?", record.Key, record.UserID, time.Now()).
		Delete(&entity.IdempotencyRecord{}).Error; err != nil {
		return err
	}
	return db.Create(record).Error
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	return conn(ctx, r.db).
		Where("expires_at < ?", now).
		Delete(&entity.IdempotencyRecord{}).Error
}
