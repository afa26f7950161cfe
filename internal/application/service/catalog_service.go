package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
	"github.com/sangkips/pos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// CatalogService administers businesses, products, services and their groups
type CatalogService struct {
	repos Repositories
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repos Repositories) *CatalogService {
	return &CatalogService{repos: repos}
}

// CreateBusinessInput represents the create business input
type CreateBusinessInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// CreateBusiness creates a new business
func (s *CatalogService) CreateBusiness(ctx context.Context, input *CreateBusinessInput) (*entity.Business, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "name", Message: "is required"}})
	}
	business := &entity.Business{
		Name:    strings.TrimSpace(input.Name),
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
	}
	business.Stamp(ActorFromContext(ctx))
	if err := s.repos.Businesses.Create(ctx, business); err != nil {
		return nil, err
	}
	return business, nil
}

// GetBusiness returns a business by ID
func (s *CatalogService) GetBusiness(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	business, err := s.repos.Businesses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, apperror.NewNotFoundError("Business")
	}
	return business, nil
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	BusinessID   uuid.UUID
	Name         string
	Price        decimal.Decimal
	InitialStock int
}

// CreateProduct creates a product with its stock row
func (s *CatalogService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(input.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "is required"})
	}
	if input.Price.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price", Message: "must not be negative"})
	}
	if input.InitialStock < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "initial_stock", Message: "must not be negative"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}
	if _, err := s.GetBusiness(ctx, input.BusinessID); err != nil {
		return nil, err
	}

	actor := ActorFromContext(ctx)
	product := &entity.Product{
		BusinessID: input.BusinessID,
		Name:       strings.TrimSpace(input.Name),
		Price:      input.Price.Round(2),
		Stock:      &entity.ProductStock{Quantity: input.InitialStock},
	}
	product.Stamp(actor)
	product.Stock.Stamp(actor)
	if err := s.repos.Products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct returns a product with its stock
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// SetStock overwrites the quantity on hand of a product
func (s *CatalogService) SetStock(ctx context.Context, productID uuid.UUID, quantity int) (*entity.ProductStock, error) {
	if quantity < 0 {
		return nil, apperror.NewInvalidArgumentError("Stock must not be negative")
	}
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	if err := s.repos.Products.SetStock(ctx, productID, quantity); err != nil {
		return nil, err
	}
	return s.repos.Products.GetStock(ctx, productID)
}

// CreateServiceInput represents the create service input
type CreateServiceInput struct {
	BusinessID      uuid.UUID
	Name            string
	Price           decimal.Decimal
	DurationMinutes int
}

// CreateService creates a sellable service
func (s *CatalogService) CreateService(ctx context.Context, input *CreateServiceInput) (*entity.Service, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "name", Message: "is required"}})
	}
	if input.Price.IsNegative() {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "price", Message: "must not be negative"}})
	}
	if _, err := s.GetBusiness(ctx, input.BusinessID); err != nil {
		return nil, err
	}
	svc := &entity.Service{
		BusinessID:      input.BusinessID,
		Name:            strings.TrimSpace(input.Name),
		Price:           input.Price.Round(2),
		DurationMinutes: input.DurationMinutes,
	}
	svc.Stamp(ActorFromContext(ctx))
	if err := s.repos.Services.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// GetService returns a service by ID
func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	svc, err := s.repos.Services.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Service")
	}
	return svc, nil
}

// CreateGroupInput represents a product or service group with its members
type CreateGroupInput struct {
	BusinessID  uuid.UUID
	Name        string
	Description string
	MemberIDs   []uuid.UUID
}

// CreateProductGroup creates a product group; every member must exist
func (s *CatalogService) CreateProductGroup(ctx context.Context, input *CreateGroupInput) (*entity.ProductGroup, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "name", Message: "is required"}})
	}
	var group *entity.ProductGroup
	err := s.repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, id := range input.MemberIDs {
			if _, err := s.GetProduct(ctx, id); err != nil {
				return err
			}
		}
		group = &entity.ProductGroup{
			BusinessID:  input.BusinessID,
			Name:        strings.TrimSpace(input.Name),
			Description: input.Description,
		}
		group.Stamp(ActorFromContext(ctx))
		if err := s.repos.Categories.CreateProductGroup(ctx, group, input.MemberIDs); err != nil {
			return err
		}
		var err error
		group, err = s.repos.Categories.GetProductGroup(ctx, group.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

// CreateServiceGroup creates a service group; every member must exist
func (s *CatalogService) CreateServiceGroup(ctx context.Context, input *CreateGroupInput) (*entity.ServiceGroup, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "name", Message: "is required"}})
	}
	var group *entity.ServiceGroup
	err := s.repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, id := range input.MemberIDs {
			if _, err := s.GetService(ctx, id); err != nil {
				return err
			}
		}
		group = &entity.ServiceGroup{
			BusinessID:  input.BusinessID,
			Name:        strings.TrimSpace(input.Name),
			Description: input.Description,
		}
		group.Stamp(ActorFromContext(ctx))
		if err := s.repos.Categories.CreateServiceGroup(ctx, group, input.MemberIDs); err != nil {
			return err
		}
		var err error
		group, err = s.repos.Categories.GetServiceGroup(ctx, group.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

// GetProductGroup returns a product group with its members
func (s *CatalogService) GetProductGroup(ctx context.Context, id uuid.UUID) (*entity.ProductGroup, error) {
	group, err := s.repos.Categories.GetProductGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, apperror.NewNotFoundError("Product group")
	}
	return group, nil
}

// GetServiceGroup returns a service group with its members
func (s *CatalogService) GetServiceGroup(ctx context.Context, id uuid.UUID) (*entity.ServiceGroup, error) {
	group, err := s.repos.Categories.GetServiceGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, apperror.NewNotFoundError("Service group")
	}
	return group, nil
}
