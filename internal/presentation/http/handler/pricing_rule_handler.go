package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-api/internal/application/service"
	"github.com/sangkips/pos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/pos-api/internal/presentation/http/dto/response"
)

// PricingRuleHandler handles discounts, taxes and giftcards
type PricingRuleHandler struct {
	ruleService     *service.PricingRuleService
	giftcardService *service.GiftcardService
}

// NewPricingRuleHandler creates a new pricing rule handler
func NewPricingRuleHandler(ruleService *service.PricingRuleService, giftcardService *service.GiftcardService) *PricingRuleHandler {
	return &PricingRuleHandler{ruleService: ruleService, giftcardService: giftcardService}
}

// CreateDiscount handles creating a discount. Discounts are active unless
// the request says otherwise.
func (h *PricingRuleHandler) CreateDiscount(c *gin.Context) {
	var req request.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	businessID, ok := bodyBusiness(c, req.BusinessID)
	if !ok {
		return
	}

	discount, err := h.ruleService.CreateDiscount(c.Request.Context(), &service.CreateDiscountInput{
		BusinessID: businessID,
		Name:       req.Name,
		Method:     req.Method,
		Active:     req.Active == nil || *req.Active,
		Amount:     req.Amount,
		Percentage: req.Percentage,
		EndDate:    req.EndDate,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Discount created successfully", discount)
}

// GetDiscount handles getting a discount by ID
func (h *PricingRuleHandler) GetDiscount(c *gin.Context) {
	id, ok := pathID(c, "discount_id", "discount")
	if !ok {
		return
	}

	discount, err := h.ruleService.GetDiscount(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount retrieved successfully", discount)
}

// CreateTax handles creating a tax
func (h *PricingRuleHandler) CreateTax(c *gin.Context) {
	var req request.CreateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	businessID, ok := bodyBusiness(c, req.BusinessID)
	if !ok {
		return
	}

	tax, err := h.ruleService.CreateTax(c.Request.Context(), &service.CreateTaxInput{
		BusinessID: businessID,
		Name:       req.Name,
		Active:     req.Active == nil || *req.Active,
		Percentage: req.Percentage,
		CategoryID: req.CategoryID,
		ProductID:  req.ProductID,
		ServiceID:  req.ServiceID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Tax created successfully", tax)
}

// GetTax handles getting a tax by ID
func (h *PricingRuleHandler) GetTax(c *gin.Context) {
	id, ok := pathID(c, "tax_id", "tax")
	if !ok {
		return
	}

	tax, err := h.ruleService.GetTax(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax retrieved successfully", tax)
}

// IssueGiftcard handles issuing a giftcard
func (h *PricingRuleHandler) IssueGiftcard(c *gin.Context) {
	var req request.IssueGiftcardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	businessID, ok := bodyBusiness(c, req.BusinessID)
	if !ok {
		return
	}

	giftcard, err := h.giftcardService.Issue(c.Request.Context(), &service.IssueGiftcardInput{
		BusinessID: businessID,
		Code:       req.Code,
		Amount:     req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Giftcard issued successfully", giftcard)
}

// GetGiftcard returns a giftcard and its balance by code
func (h *PricingRuleHandler) GetGiftcard(c *gin.Context) {
	giftcard, err := h.giftcardService.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Giftcard retrieved successfully", giftcard)
}
