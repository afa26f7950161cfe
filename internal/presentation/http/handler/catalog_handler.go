package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-api/internal/application/service"
	"github.com/sangkips/pos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/pos-api/internal/presentation/http/dto/response"
)

// CatalogHandler handles businesses, products, services and their groups
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CreateBusiness handles creating a business
func (h *CatalogHandler) CreateBusiness(c *gin.Context) {
	var req request.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	business, err := h.catalogService.CreateBusiness(c.Request.Context(), &service.CreateBusinessInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Business created successfully", business)
}

// GetBusiness handles getting a business by ID
func (h *CatalogHandler) GetBusiness(c *gin.Context) {
	id, ok := pathID(c, "business_id", "business")
	if !ok {
		return
	}

	business, err := h.catalogService.GetBusiness(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Business retrieved successfully", business)
}

// CreateProduct handles creating a product with its initial stock
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	businessID, ok := bodyBusiness(c, req.BusinessID)
	if !ok {
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		BusinessID:   businessID,
		Name:         req.Name,
		Price:        req.Price,
		InitialStock: req.InitialStock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// GetProduct handles getting a product by ID
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "product_id", "product")
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// SetStock overwrites the quantity on hand of a product
func (h *CatalogHandler) SetStock(c *gin.Context) {
	id, ok := pathID(c, "product_id", "product")
	if !ok {
		return
	}

	var req request.SetStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	stock, err := h.catalogService.SetStock(c.Request.Context(), id, *req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock updated successfully", stock)
}

// CreateService handles creating a service
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req request.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	businessID, ok := bodyBusiness(c, req.BusinessID)
	if !ok {
		return
	}

	svc, err := h.catalogService.CreateService(c.Request.Context(), &service.CreateServiceInput{
		BusinessID:      businessID,
		Name:            req.Name,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Service created successfully", svc)
}

// GetService handles getting a service by ID
func (h *CatalogHandler) GetService(c *gin.Context) {
	id, ok := pathID(c, "service_id", "service")
	if !ok {
		return
	}

	svc, err := h.catalogService.GetService(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service retrieved successfully", svc)
}

// CreateProductGroup handles creating a product group with its members
func (h *CatalogHandler) CreateProductGroup(c *gin.Context) {
	input, ok := bindGroup(c)
	if !ok {
		return
	}

	group, err := h.catalogService.CreateProductGroup(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product group created successfully", group)
}

// GetProductGroup handles getting a product group by ID
func (h *CatalogHandler) GetProductGroup(c *gin.Context) {
	id, ok := pathID(c, "group_id", "group")
	if !ok {
		return
	}

	group, err := h.catalogService.GetProductGroup(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product group retrieved successfully", group)
}

// CreateServiceGroup handles creating a service group with its members
func (h *CatalogHandler) CreateServiceGroup(c *gin.Context) {
	input, ok := bindGroup(c)
	if !ok {
		return
	}

	group, err := h.catalogService.CreateServiceGroup(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Service group created successfully", group)
}

// GetServiceGroup handles getting a service group by ID
func (h *CatalogHandler) GetServiceGroup(c *gin.Context) {
	id, ok := pathID(c, "group_id", "group")
	if !ok {
		return
	}

	group, err := h.catalogService.GetServiceGroup(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service group retrieved successfully", group)
}

func bindGroup(c *gin.Context) (*service.CreateGroupInput, bool) {
	var req request.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return nil, false
	}
	businessID, ok := bodyBusiness(c, req.BusinessID)
	if !ok {
		return nil, false
	}
	return &service.CreateGroupInput{
		BusinessID:  businessID,
		Name:        req.Name,
		Description: req.Description,
		MemberIDs:   req.MemberIDs,
	}, true
}
