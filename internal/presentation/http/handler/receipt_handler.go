package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-api/internal/application/service"
	"github.com/sangkips/pos-api/internal/presentation/http/dto/response"
)

// ReceiptHandler handles receipt printing
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// PrinterStatus returns the current printer connection status
func (h *ReceiptHandler) PrinterStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.receiptService.Status(c.Request.Context()))
}

// Print prints the receipt of a transaction. The ESC/POS bytes are returned
// base64 encoded even when the printer could not be reached.
func (h *ReceiptHandler) Print(c *gin.Context) {
	orderID, ok := pathID(c, "order_id", "order")
	if !ok {
		return
	}
	transactionID, ok := pathID(c, "transaction_id", "transaction")
	if !ok {
		return
	}

	out, err := h.receiptService.PrintTransactionReceipt(c.Request.Context(), orderID, transactionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !out.Printed {
		response.OK(c, "Receipt generated but printing failed", out)
		return
	}
	response.OK(c, "Receipt printed successfully", out)
}
