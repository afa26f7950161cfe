package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-api/internal/application/service"
	"github.com/sangkips/pos-api/internal/domain/enum"
	"github.com/sangkips/pos-api/internal/domain/repository"
	"github.com/sangkips/pos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/pos-api/internal/presentation/http/dto/response"
)

// OrderHandler handles orders and their items
type OrderHandler struct {
	orderService   *service.OrderService
	pricingService *service.PricingService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, pricingService *service.PricingService) *OrderHandler {
	return &OrderHandler{orderService: orderService, pricingService: pricingService}
}

// List handles listing the orders of a business
func (h *OrderHandler) List(c *gin.Context) {
	businessID, ok := businessScope(c)
	if !ok {
		return
	}

	var filter request.OrderFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	params := &repository.OrderFilterParams{
		Pagination: pageParams(c),
		SortOrder:  filter.SortOrder,
	}
	if filter.Status != "" {
		status, err := enum.ParseOrderStatus(filter.Status)
		if err != nil {
			response.BadRequest(c, "Invalid order status")
			return
		}
		params.Status = &status
	}
	if filter.StartDate != "" {
		start, err := parseDate(filter.StartDate)
		if err != nil {
			response.BadRequest(c, "Invalid start_date")
			return
		}
		params.StartDate = &start
	}
	if filter.EndDate != "" {
		end, err := parseDate(filter.EndDate)
		if err != nil {
			response.BadRequest(c, "Invalid end_date")
			return
		}
		params.EndDate = &end
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), businessID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, "Orders retrieved successfully", result)
}

// Create handles creating an order
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	businessID, ok := bodyBusiness(c, req.BusinessID)
	if !ok {
		return
	}

	order, err := h.orderService.AddOrder(c.Request.Context(), &service.AddOrderInput{
		BusinessID: businessID,
		Status:     req.Status,
		Currency:   req.Currency,
		Tip:        req.Tip,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// Get handles getting an order with its items
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "order_id", "order")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// Delete handles deleting an open order, returning its stock
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "order_id", "order")
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order deleted successfully", nil)
}

// ListItems handles listing the items of an order
func (h *OrderHandler) ListItems(c *gin.Context) {
	id, ok := pathID(c, "order_id", "order")
	if !ok {
		return
	}

	items, err := h.orderService.GetAllItemsOfOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order items retrieved successfully", items)
}

// AddItem handles adding a product or service to an order
func (h *OrderHandler) AddItem(c *gin.Context) {
	orderID, ok := pathID(c, "order_id", "order")
	if !ok {
		return
	}

	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	itemType, err := enum.ParseOrderItemType(req.Type)
	if err != nil {
		response.BadRequest(c, "Invalid order item type")
		return
	}

	item, err := h.pricingService.AddItem(c.Request.Context(), &service.AddItemInput{
		OrderID:   orderID,
		Type:      itemType,
		ProductID: req.ProductID,
		ServiceID: req.ServiceID,
		UnitPrice: req.UnitPrice,
		Quantity:  req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order item added successfully", item)
}

// UpdateItem handles changing an unpaid order item
func (h *OrderHandler) UpdateItem(c *gin.Context) {
	orderID, ok := pathID(c, "order_id", "order")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "item_id", "order item")
	if !ok {
		return
	}

	var req request.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdateOrderItemInput{
		OrderID:   orderID,
		ItemID:    itemID,
		ProductID: req.ProductID,
		ServiceID: req.ServiceID,
		Price:     req.Price,
		Quantity:  req.Quantity,
	}
	if req.Type != nil {
		itemType, err := enum.ParseOrderItemType(*req.Type)
		if err != nil {
			response.BadRequest(c, "Invalid order item type")
			return
		}
		input.Type = &itemType
	}

	item, err := h.orderService.UpdateOrderItem(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order item updated successfully", item)
}

// RemoveItem handles removing an unpaid item from an order
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	orderID, ok := pathID(c, "order_id", "order")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "item_id", "order item")
	if !ok {
		return
	}

	if err := h.orderService.RemoveOrderItem(c.Request.Context(), orderID, itemID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order item removed successfully", nil)
}

// ApplyDiscount folds a discount into an item's price
func (h *OrderHandler) ApplyDiscount(c *gin.Context) {
	orderID, ok := pathID(c, "order_id", "order")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "item_id", "order item")
	if !ok {
		return
	}

	var req request.ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.pricingService.ApplyDiscountToItem(c.Request.Context(), orderID, itemID, req.DiscountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount applied successfully", item)
}
