package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
	"github.com/sangkips/pos-api/internal/domain/enum"
	"github.com/sangkips/pos-api/internal/domain/repository"
	"github.com/sangkips/pos-api/internal/infrastructure/messaging"
	"github.com/sangkips/pos-api/pkg/apperror"
	"github.com/sangkips/pos-api/pkg/logger"
	"github.com/sangkips/pos-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderService handles order-related operations
type OrderService struct {
	repos  Repositories
	events *EventSink
	logger *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(repos Repositories, events *EventSink, log *zap.Logger) *OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderService{repos: repos, events: events, logger: log}
}

// AddOrderInput represents the create order input. Status and Currency are
// enum names; empty means the first value (Open, EUR).
type AddOrderInput struct {
	BusinessID uuid.UUID
	Status     string
	Currency   string
	Tip        decimal.Decimal
}

// AddOrder creates a new order
func (s *OrderService) AddOrder(ctx context.Context, input *AddOrderInput) (*entity.Order, error) {
	status := enum.OrderStatusOpen
	if strings.TrimSpace(input.Status) != "" {
		parsed, err := enum.ParseOrderStatus(input.Status)
		if err != nil {
			return nil, apperror.NewInvalidArgumentError("Invalid order status")
		}
		status = parsed
	}
	currency := enum.CurrencyEUR
	if strings.TrimSpace(input.Currency) != "" {
		parsed, err := enum.ParseCurrency(input.Currency)
		if err != nil {
			return nil, apperror.NewInvalidArgumentError("Invalid currency")
		}
		currency = parsed
	}
	if input.Tip.IsNegative() {
		return nil, apperror.NewInvalidArgumentError("Tip must not be negative")
	}

	business, err := s.repos.Businesses.GetByID(ctx, input.BusinessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, apperror.NewNotFoundError("Business")
	}

	order := &entity.Order{
		BusinessID: business.ID,
		Currency:   currency,
		Tip:        input.Tip.Round(2),
		Status:     status,
	}
	order.Stamp(ActorFromContext(ctx))
	if err := s.repos.Orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrderByID returns an order with its items
func (s *OrderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.repos.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil || !visible(ctx, order.BusinessID) {
		return nil, apperror.NewNotFoundError("Order")
	}
	items, err := s.repos.OrderItems.GetByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

// ListOrders returns a page of a business's orders
func (s *OrderService) ListOrders(ctx context.Context, businessID uuid.UUID, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	if params == nil {
		params = &repository.OrderFilterParams{}
	}
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	orders, total, err := s.repos.Orders.List(ctx, businessID, params)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []entity.Order{}
	}
	page := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, page), nil
}

// GetAllItemsOfOrder returns the order's items with their applied discounts and taxes
func (s *OrderService) GetAllItemsOfOrder(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error) {
	order, err := s.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || !visible(ctx, order.BusinessID) {
		return nil, apperror.NewNotFoundError("Order")
	}
	return s.repos.OrderItems.GetByOrderID(ctx, orderID)
}

// UpdateOrderItemInput represents changes to an unpaid order item. Nil fields
// keep their current value.
type UpdateOrderItemInput struct {
	// OrderID, when set, must be the item's order
	OrderID   uuid.UUID
	ItemID    uuid.UUID
	Type      *enum.OrderItemType
	ProductID *uuid.UUID
	ServiceID *uuid.UUID
	Price     *decimal.Decimal
	Quantity  *int
}

// UpdateOrderItem overwrites an item and reconciles product stock with the
// change. Applied discounts and taxes are not re-evaluated.
func (s *OrderService) UpdateOrderItem(ctx context.Context, input *UpdateOrderItemInput) (*entity.OrderItem, error) {
	if input.Quantity != nil && *input.Quantity < 1 {
		return nil, apperror.NewInvalidArgumentError("Quantity must be at least 1")
	}
	if input.Price != nil && input.Price.IsNegative() {
		return nil, apperror.NewInvalidArgumentError("Price must not be negative")
	}
	if input.Type != nil && !input.Type.IsValid() {
		return nil, apperror.NewInvalidArgumentError("Invalid order item type")
	}

	var updated *entity.OrderItem
	err := s.repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repos.OrderItems.GetByID(ctx, input.ItemID)
		if err != nil {
			return err
		}
		if current == nil {
			return apperror.NewNotFoundError("Order item")
		}
		if input.OrderID != uuid.Nil && input.OrderID != current.OrderID {
			return apperror.NewInvalidArgumentError("Order item does not belong to the order")
		}
		if err := s.requireOpen(ctx, current.OrderID); err != nil {
			return err
		}
		if current.IsPaid() {
			return apperror.NewInvalidStateError("Order item is already paid")
		}

		next := *current
		if input.Type != nil {
			next.Type = *input.Type
		}
		switch next.Type {
		case enum.OrderItemTypeProduct:
			if input.ProductID != nil {
				next.ProductID = input.ProductID
			}
			next.ServiceID = nil
		case enum.OrderItemTypeService:
			if input.ServiceID != nil {
				next.ServiceID = input.ServiceID
			}
			next.ProductID = nil
		}
		if input.Quantity != nil {
			next.Quantity = *input.Quantity
		}

		catalogPrice, err := s.catalogPrice(ctx, &next)
		if err != nil {
			return err
		}
		switch {
		case input.Price != nil:
			next.Price = *input.Price
		case !sameCatalogEntry(current, &next):
			next.Price = catalogPrice
		}

		if err := s.reconcileStock(ctx, current, &next); err != nil {
			return err
		}

		next.UpdatedBy = ActorFromContext(ctx)
		if err := s.repos.OrderItems.Update(ctx, &next); err != nil {
			return err
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// catalogPrice checks that the item's product or service exists and returns its price
func (s *OrderService) catalogPrice(ctx context.Context, item *entity.OrderItem) (decimal.Decimal, error) {
	if item.Type == enum.OrderItemTypeProduct {
		if item.ProductID == nil {
			return decimal.Zero, apperror.NewInvalidArgumentError("Product items reference exactly one product")
		}
		product, err := s.repos.Products.GetByID(ctx, *item.ProductID)
		if err != nil {
			return decimal.Zero, err
		}
		if product == nil {
			return decimal.Zero, apperror.NewNotFoundError("Product")
		}
		return product.Price, nil
	}
	if item.ServiceID == nil {
		return decimal.Zero, apperror.NewInvalidArgumentError("Service items reference exactly one service")
	}
	svc, err := s.repos.Services.GetByID(ctx, *item.ServiceID)
	if err != nil {
		return decimal.Zero, err
	}
	if svc == nil {
		return decimal.Zero, apperror.NewNotFoundError("Service")
	}
	return svc.Price, nil
}

// reconcileStock moves stock from the old line to the new one. The same
// product only moves the quantity delta.
func (s *OrderService) reconcileStock(ctx context.Context, before, after *entity.OrderItem) error {
	oldProduct := productOf(before)
	newProduct := productOf(after)

	if oldProduct != nil && newProduct != nil && *oldProduct == *newProduct {
		delta := after.Quantity - before.Quantity
		switch {
		case delta > 0:
			return s.takeStock(ctx, *newProduct, delta)
		case delta < 0:
			return s.repos.Products.IncrementStock(ctx, *oldProduct, -delta)
		}
		return nil
	}

	if oldProduct != nil {
		if err := s.repos.Products.IncrementStock(ctx, *oldProduct, before.Quantity); err != nil {
			return err
		}
	}
	if newProduct != nil {
		return s.takeStock(ctx, *newProduct, after.Quantity)
	}
	return nil
}

func (s *OrderService) takeStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	ok, err := s.repos.Products.AtomicDecrementStock(ctx, productID, quantity)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NewInsufficientResourceError("Insufficient stock")
	}
	return nil
}

// RemoveOrderItem deletes an unpaid item, returning its stock
func (s *OrderService) RemoveOrderItem(ctx context.Context, orderID, itemID uuid.UUID) error {
	return s.repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		item, err := s.repos.OrderItems.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil || item.OrderID != orderID {
			return apperror.NewNotFoundError("Order item")
		}
		if err := s.requireOpen(ctx, orderID); err != nil {
			return err
		}
		if item.IsPaid() {
			return apperror.NewInvalidStateError("Order item is already paid")
		}
		if pid := productOf(item); pid != nil {
			if err := s.repos.Products.IncrementStock(ctx, *pid, item.Quantity); err != nil {
				return err
			}
		}
		if err := s.repos.AppliedPricing.DeleteByOrderItemID(ctx, item.ID); err != nil {
			return err
		}
		return s.repos.OrderItems.Delete(ctx, item.ID)
	})
}

// DeleteOrder returns every product quantity to stock and removes the order
// with its items. Only Open orders without paid items can be deleted.
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	var order *entity.Order
	returned := 0
	err := s.repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.repos.Orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if order == nil || !visible(ctx, order.BusinessID) {
			return apperror.NewNotFoundError("Order")
		}
		if !order.IsOpen() {
			return apperror.Newf(apperror.KindInvalidState, "Order is %s", order.Status)
		}

		items, err := s.repos.OrderItems.GetByOrderID(ctx, id)
		if err != nil {
			return err
		}
		for i := range items {
			if items[i].IsPaid() {
				return apperror.NewInvalidStateError("Order has paid items")
			}
		}
		for i := range items {
			if pid := productOf(&items[i]); pid != nil {
				if err := s.repos.Products.IncrementStock(ctx, *pid, items[i].Quantity); err != nil {
					return err
				}
				returned += items[i].Quantity
			}
		}

		if err := s.repos.AppliedPricing.DeleteByOrderID(ctx, id); err != nil {
			return err
		}
		if err := s.repos.OrderItems.DeleteByOrderID(ctx, id); err != nil {
			return err
		}
		return s.repos.Orders.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx, s.logger).Info("order deleted",
		zap.String("order_id", id.String()),
		zap.Int("stock_returned", returned),
	)
	s.events.publish(ctx, messaging.OrderEvent{
		Type:       messaging.EventOrderDeleted,
		OrderID:    order.ID,
		BusinessID: order.BusinessID,
	})
	return nil
}

func (s *OrderService) requireOpen(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil || !visible(ctx, order.BusinessID) {
		return apperror.NewNotFoundError("Order")
	}
	if !order.IsOpen() {
		return apperror.Newf(apperror.KindInvalidState, "Order is %s", order.Status)
	}
	return nil
}

func productOf(item *entity.OrderItem) *uuid.UUID {
	if item.Type == enum.OrderItemTypeProduct && item.ProductID != nil {
		return item.ProductID
	}
	return nil
}

func sameCatalogEntry(a, b *entity.OrderItem) bool {
	if a.Type != b.Type {
		return false
	}
	x, y := a.CatalogID(), b.CatalogID()
	return x != nil && y != nil && *x == *y
}
