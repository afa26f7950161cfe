package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
	"github.com/sangkips/pos-api/internal/domain/enum"
	"github.com/sangkips/pos-api/internal/infrastructure/messaging"
	"github.com/sangkips/pos-api/pkg/apperror"
	"github.com/sangkips/pos-api/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PricingService adds items to orders and attaches their discount and tax
type PricingService struct {
	repos  Repositories
	events *EventSink
	logger *zap.Logger
	now    func() time.Time
}

// NewPricingService creates a new pricing service
func NewPricingService(repos Repositories, events *EventSink, log *zap.Logger) *PricingService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PricingService{
		repos:  repos,
		events: events,
		logger: log,
		now:    utcNow,
	}
}

// AddItemInput represents an item to add to an order
type AddItemInput struct {
	OrderID   uuid.UUID
	Type      enum.OrderItemType
	ProductID *uuid.UUID
	ServiceID *uuid.UUID
	// UnitPrice overrides the catalog price when set
	UnitPrice *decimal.Decimal
	Quantity  int
}

func (in *AddItemInput) validate() error {
	if in.Quantity < 1 {
		return apperror.NewInvalidArgumentError("Quantity must be at least 1")
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return apperror.NewInvalidArgumentError("Unit price must not be negative")
	}
	switch in.Type {
	case enum.OrderItemTypeProduct:
		if in.ProductID == nil || in.ServiceID != nil {
			return apperror.NewInvalidArgumentError("Product items reference exactly one product")
		}
	case enum.OrderItemTypeService:
		if in.ServiceID == nil || in.ProductID != nil {
			return apperror.NewInvalidArgumentError("Service items reference exactly one service")
		}
	default:
		return apperror.NewInvalidArgumentError("Invalid order item type")
	}
	return nil
}

// AddItem reserves stock for product items, stores the item and applies the
// best discount and the first tax of the item's group. Nothing is kept when
// any step fails.
func (s *PricingService) AddItem(ctx context.Context, input *AddItemInput) (*entity.OrderItem, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var (
		item  *entity.OrderItem
		order *entity.Order
	)
	err := s.repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.openOrder(ctx, input.OrderID)
		if err != nil {
			return err
		}

		price, err := s.reserve(ctx, input)
		if err != nil {
			return err
		}

		actor := ActorFromContext(ctx)
		item = &entity.OrderItem{
			OrderID:   order.ID,
			Type:      input.Type,
			Price:     price,
			Quantity:  input.Quantity,
			ProductID: input.ProductID,
			ServiceID: input.ServiceID,
		}
		item.Stamp(actor)
		if err := s.repos.OrderItems.Create(ctx, item); err != nil {
			return err
		}

		return s.applyPricing(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx, s.logger).Info("order item added",
		zap.String("order_id", order.ID.String()),
		zap.String("order_item_id", item.ID.String()),
		zap.String("type", item.Type.String()),
		zap.Int("quantity", item.Quantity),
	)
	s.events.publish(ctx, messaging.OrderEvent{
		Type:        messaging.EventOrderItemAdded,
		OrderID:     order.ID,
		BusinessID:  order.BusinessID,
		OrderItemID: &item.ID,
	})
	return item, nil
}

// openOrder loads the order and requires it to be Open
func (s *PricingService) openOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || !visible(ctx, order.BusinessID) {
		return nil, apperror.NewNotFoundError("Order")
	}
	if !order.IsOpen() {
		return nil, apperror.Newf(apperror.KindInvalidState, "Order is %s", order.Status)
	}
	return order, nil
}

// reserve checks the catalog entry, takes product stock and resolves the unit price
func (s *PricingService) reserve(ctx context.Context, input *AddItemInput) (decimal.Decimal, error) {
	if input.Type == enum.OrderItemTypeService {
		svc, err := s.repos.Services.GetByID(ctx, *input.ServiceID)
		if err != nil {
			return decimal.Zero, err
		}
		if svc == nil {
			return decimal.Zero, apperror.NewNotFoundError("Service")
		}
		return priceOr(input.UnitPrice, svc.Price), nil
	}

	product, err := s.repos.Products.GetByID(ctx, *input.ProductID)
	if err != nil {
		return decimal.Zero, err
	}
	if product == nil {
		return decimal.Zero, apperror.NewNotFoundError("Product")
	}
	ok, err := s.repos.Products.AtomicDecrementStock(ctx, product.ID, input.Quantity)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		return decimal.Zero, apperror.Newf(apperror.KindInsufficientResource, "Insufficient stock for %s", product.Name)
	}
	return priceOr(input.UnitPrice, product.Price), nil
}

// applyPricing attaches at most one discount and one tax to a new item.
// Items outside any group get neither.
func (s *PricingService) applyPricing(ctx context.Context, item *entity.OrderItem) error {
	item.AppliedDiscounts = []entity.AppliedDiscount{}
	item.AppliedTaxes = []entity.AppliedTax{}

	categoryID, err := s.categoryOf(ctx, item)
	if err != nil || categoryID == nil {
		return err
	}

	total := item.Total()
	actor := ActorFromContext(ctx)

	discount, err := s.repos.Discounts.FindBestForCategory(ctx, *categoryID, s.now())
	if err != nil {
		return err
	}
	if discount != nil {
		applied := entity.AppliedDiscount{
			OrderID:     item.OrderID,
			OrderItemID: item.ID,
			DiscountID:  discount.ID,
			Method:      discount.Method,
			Amount:      discount.AmountFor(total),
			Percentage:  discount.Percentage,
		}
		applied.Stamp(actor)
		if err := s.repos.AppliedPricing.CreateDiscount(ctx, &applied); err != nil {
			return err
		}
		item.AppliedDiscounts = append(item.AppliedDiscounts, applied)
	}

	tax, err := s.repos.Taxes.FindFirstForCategory(ctx, *categoryID)
	if err != nil {
		return err
	}
	if tax != nil {
		applied := entity.AppliedTax{
			OrderID:     item.OrderID,
			OrderItemID: item.ID,
			TaxID:       tax.ID,
			Amount:      tax.AmountFor(total),
			Percentage:  tax.Percentage,
		}
		applied.Stamp(actor)
		if err := s.repos.AppliedPricing.CreateTax(ctx, &applied); err != nil {
			return err
		}
		item.AppliedTaxes = append(item.AppliedTaxes, applied)
	}
	return nil
}

func (s *PricingService) categoryOf(ctx context.Context, item *entity.OrderItem) (*uuid.UUID, error) {
	switch item.Type {
	case enum.OrderItemTypeProduct:
		group, err := s.repos.Categories.FindProductGroupFor(ctx, *item.ProductID)
		if err != nil || group == nil {
			return nil, err
		}
		return &group.ID, nil
	case enum.OrderItemTypeService:
		group, err := s.repos.Categories.FindServiceGroupFor(ctx, *item.ServiceID)
		if err != nil || group == nil {
			return nil, err
		}
		return &group.ID, nil
	}
	return nil, nil
}

// ApplyDiscountToItem folds a discount into the item's unit price:
// newPrice = max(0, price*qty - discount) / qty, rounded to cents.
func (s *PricingService) ApplyDiscountToItem(ctx context.Context, orderID, itemID, discountID uuid.UUID) (*entity.OrderItem, error) {
	var item *entity.OrderItem
	err := s.repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.repos.Orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil || !visible(ctx, order.BusinessID) {
			return apperror.NewNotFoundError("Order")
		}
		item, err = s.repos.OrderItems.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil || item.OrderID != orderID {
			return apperror.NewNotFoundError("Order item")
		}
		discount, err := s.repos.Discounts.GetByID(ctx, discountID)
		if err != nil {
			return err
		}
		if discount == nil {
			return apperror.NewNotFoundError("Discount")
		}

		if !order.IsOpen() {
			return apperror.Newf(apperror.KindInvalidState, "Order is %s", order.Status)
		}
		if item.IsPaid() {
			return apperror.NewInvalidStateError("Order item is already paid")
		}
		if !discount.IsApplicable(s.now()) {
			return apperror.NewInvalidStateError("Discount is inactive or expired")
		}
		if item.Quantity <= 0 {
			return nil
		}

		total := item.Total()
		remaining := decimal.Max(decimal.Zero, total.Sub(discount.AmountFor(total)))
		item.Price = remaining.Div(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		item.PriceDiscounted = true
		item.UpdatedBy = ActorFromContext(ctx)
		return s.repos.OrderItems.Update(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func priceOr(override *decimal.Decimal, catalog decimal.Decimal) decimal.Decimal {
	if override != nil {
		return *override
	}
	return catalog
}
