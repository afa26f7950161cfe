package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type giftcardRepository struct {
	db *gorm.DB
}

// NewGiftcardRepository creates a new giftcard repository
func NewGiftcardRepository(db *gorm.DB) domainRepo.GiftcardRepository {
	return &giftcardRepository{db: db}
}

func (r *giftcardRepository) Create(ctx context.Context, giftcard *entity.Giftcard) error {
	return conn(ctx, r.db).Create(giftcard).Error
}

func (r *giftcardRepository) GetByCode(ctx context.Context, code string) (*entity.Giftcard, error) {
	var giftcard entity.Giftcard
	err := conn(ctx, r.db).First(&giftcard, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &giftcard, err
}

// AtomicDebit uses: UPDATE giftcards SET amount = amount - x WHERE id = ? AND amount >= x
func (r *giftcardRepository) AtomicDebit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	result := conn(ctx, r.db).Model(&entity.Giftcard{}).
		Where("id = ? AND amount >= ?", id, amount).
		Update("amount", gorm.Expr("amount - ?", amount))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
