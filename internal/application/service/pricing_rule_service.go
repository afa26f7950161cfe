package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
	"github.com/sangkips/pos-api/internal/domain/enum"
	"github.com/sangkips/pos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

var maxPercentage = decimal.NewFromInt(100)

// PricingRuleService administers discounts and taxes
type PricingRuleService struct {
	repos Repositories
}

// NewPricingRuleService creates a new pricing rule service
func NewPricingRuleService(repos Repositories) *PricingRuleService {
	return &PricingRuleService{repos: repos}
}

// CreateDiscountInput represents the create discount input
type CreateDiscountInput struct {
	BusinessID uuid.UUID
	Name       string
	Method     string
	Active     bool
	Amount     decimal.Decimal
	Percentage decimal.Decimal
	EndDate    time.Time
	CategoryID *uuid.UUID
}

// CreateDiscount creates a discount rule
func (s *PricingRuleService) CreateDiscount(ctx context.Context, input *CreateDiscountInput) (*entity.Discount, error) {
	method, err := enum.ParseDiscountMethod(input.Method)
	if err != nil {
		return nil, apperror.NewInvalidArgumentError("Invalid discount method")
	}

	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(input.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "is required"})
	}
	if input.Amount.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "amount", Message: "must not be negative"})
	}
	if input.Percentage.IsNegative() || input.Percentage.GreaterThan(maxPercentage) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "percentage", Message: "must be between 0 and 100"})
	}
	if input.EndDate.IsZero() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "end_date", Message: "is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	discount := &entity.Discount{
		BusinessID: input.BusinessID,
		Name:       strings.TrimSpace(input.Name),
		Method:     method,
		Active:     input.Active,
		Amount:     input.Amount.Round(2),
		Percentage: input.Percentage.Round(2),
		EndDate:    input.EndDate.UTC(),
		CategoryID: input.CategoryID,
	}
	discount.Stamp(ActorFromContext(ctx))
	if err := s.repos.Discounts.Create(ctx, discount); err != nil {
		return nil, err
	}
	return discount, nil
}

// GetDiscount returns a discount by ID
func (s *PricingRuleService) GetDiscount(ctx context.Context, id uuid.UUID) (*entity.Discount, error) {
	discount, err := s.repos.Discounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, apperror.NewNotFoundError("Discount")
	}
	return discount, nil
}

// CreateTaxInput represents the create tax input
type CreateTaxInput struct {
	BusinessID uuid.UUID
	Name       string
	Active     bool
	Percentage decimal.Decimal
	CategoryID *uuid.UUID
	ProductID  *uuid.UUID
	ServiceID  *uuid.UUID
}

// CreateTax creates a tax rule
func (s *PricingRuleService) CreateTax(ctx context.Context, input *CreateTaxInput) (*entity.Tax, error) {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(input.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "is required"})
	}
	if input.Percentage.IsNegative() || input.Percentage.GreaterThan(maxPercentage) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "percentage", Message: "must be between 0 and 100"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	tax := &entity.Tax{
		BusinessID: input.BusinessID,
		Name:       strings.TrimSpace(input.Name),
		Active:     input.Active,
		Percentage: input.Percentage.Round(2),
		CategoryID: input.CategoryID,
		ProductID:  input.ProductID,
		ServiceID:  input.ServiceID,
	}
	tax.Stamp(ActorFromContext(ctx))
	if err := s.repos.Taxes.Create(ctx, tax); err != nil {
		return nil, err
	}
	return tax, nil
}

// GetTax returns a tax by ID
func (s *PricingRuleService) GetTax(ctx context.Context, id uuid.UUID) (*entity.Tax, error) {
	tax, err := s.repos.Taxes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tax == nil {
		return nil, apperror.NewNotFoundError("Tax")
	}
	return tax, nil
}
