package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-api/internal/application/service"
	"github.com/sangkips/pos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/pos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/pos-api/internal/presentation/http/middleware"
)

// TransactionHandler handles payment settlement of orders
type TransactionHandler struct {
	settlementService *service.SettlementService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(settlementService *service.SettlementService) *TransactionHandler {
	return &TransactionHandler{settlementService: settlementService}
}

// Process handles paying for items of an order
// @Summary Process transaction
// @Description Settle order items with cash, giftcard and bankcard shares
// @Tags transactions
// @Accept json
// @Produce json
// @Param order_id path string true "Order ID"
// @Param Idempotency-Key header string false "Idempotency key"
// @Param request body request.ProcessTransactionRequest true "Payment"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /orders/{order_id}/transactions [post]
func (h *TransactionHandler) Process(c *gin.Context) {
	orderID, ok := pathID(c, "order_id", "order")
	if !ok {
		return
	}

	var req request.ProcessTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	transaction, err := h.settlementService.ProcessTransaction(c.Request.Context(), &service.ProcessTransactionInput{
		OrderID:               orderID,
		ItemIDs:               req.OrderItemIDs,
		PaidByCash:            req.PaidByCash,
		PaidByGiftcard:        req.PaidByGiftcard,
		GiftcardCode:          req.GiftcardCode,
		PaidByBankcard:        req.PaidByBankcard,
		ExternalTransactionID: req.ExternalTransactionID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transaction processed successfully", transaction)
}

// List handles listing the transactions of an order
func (h *TransactionHandler) List(c *gin.Context) {
	orderID, ok := pathID(c, "order_id", "order")
	if !ok {
		return
	}

	transactions, err := h.settlementService.ListTransactions(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transactions retrieved successfully", transactions)
}

// Get handles getting one transaction of an order
func (h *TransactionHandler) Get(c *gin.Context) {
	orderID, ok := pathID(c, "order_id", "order")
	if !ok {
		return
	}
	transactionID, ok := pathID(c, "transaction_id", "transaction")
	if !ok {
		return
	}

	transaction, err := h.settlementService.GetTransaction(c.Request.Context(), orderID, transactionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved successfully", transaction)
}

// Refund handles refunding a purchase transaction
// @Summary Refund transaction
// @Description Refund a purchase in cash or to the bankcard it was paid with. Giftcard refunds are rejected.
// @Tags transactions
// @Accept json
// @Produce json
// @Param order_id path string true "Order ID"
// @Param transaction_id path string true "Purchase transaction ID"
// @Param Idempotency-Key header string false "Idempotency key"
// @Param request body request.RefundRequest true "Refund"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /orders/{order_id}/transactions/{transaction_id}/refund [post]
func (h *TransactionHandler) Refund(c *gin.Context) {
	orderID, ok := pathID(c, "order_id", "order")
	if !ok {
		return
	}
	transactionID, ok := pathID(c, "transaction_id", "transaction")
	if !ok {
		return
	}

	var req request.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	refund, err := h.settlementService.RefundTransaction(c.Request.Context(), &service.RefundInput{
		OrderID:       orderID,
		TransactionID: transactionID,
		Method:        req.Method,
		Amount:        req.Amount,
		Reason:        req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Refund processed successfully", refund)
}

// AuthorizeCard handles charging a card for an open order. The returned
// reference is passed back as external_transaction_id when settling.
func (h *TransactionHandler) AuthorizeCard(c *gin.Context) {
	orderID, ok := pathID(c, "order_id", "order")
	if !ok {
		return
	}

	var req request.AuthorizeCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	auth, err := h.settlementService.AuthorizeCardPayment(c.Request.Context(), &service.AuthorizeCardInput{
		OrderID:         orderID,
		Amount:          req.Amount,
		PaymentMethodID: req.PaymentMethodID,
		IdempotencyKey:  c.GetHeader(middleware.IdempotencyKeyHeader),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Card payment authorized", gin.H{
		"reference": auth.Reference,
		"status":    auth.Status,
		"amount":    auth.Amount,
		"currency":  auth.Currency,
	})
}
