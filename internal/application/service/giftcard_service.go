package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
	"github.com/sangkips/pos-api/pkg/apperror"
	"github.com/sangkips/pos-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// GiftcardService issues giftcards and reports their balance
type GiftcardService struct {
	repos Repositories
}

// NewGiftcardService creates a new giftcard service
func NewGiftcardService(repos Repositories) *GiftcardService {
	return &GiftcardService{repos: repos}
}

// IssueGiftcardInput represents a new giftcard. An empty code is generated.
type IssueGiftcardInput struct {
	BusinessID uuid.UUID
	Code       string
	Amount     decimal.Decimal
}

// Issue creates a giftcard with an initial balance
func (s *GiftcardService) Issue(ctx context.Context, input *IssueGiftcardInput) (*entity.Giftcard, error) {
	if !input.Amount.IsPositive() {
		return nil, apperror.NewInvalidArgumentError("Giftcard amount must be positive")
	}

	code := strings.TrimSpace(input.Code)
	if code == "" {
		generated, err := utils.GenerateGiftcardCode()
		if err != nil {
			return nil, err
		}
		code = generated
	}

	existing, err := s.repos.Giftcards.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Giftcard code already in use")
	}

	giftcard := &entity.Giftcard{
		BusinessID: input.BusinessID,
		Code:       code,
		Amount:     input.Amount.Round(2),
	}
	giftcard.Stamp(ActorFromContext(ctx))
	if err := s.repos.Giftcards.Create(ctx, giftcard); err != nil {
		return nil, err
	}
	return giftcard, nil
}

// GetByCode returns a giftcard and its balance
func (s *GiftcardService) GetByCode(ctx context.Context, code string) (*entity.Giftcard, error) {
	giftcard, err := s.repos.Giftcards.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}
	if giftcard == nil {
		return nil, apperror.NewNotFoundError("Giftcard")
	}
	return giftcard, nil
}
