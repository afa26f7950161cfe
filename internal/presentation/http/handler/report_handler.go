package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-api/internal/application/service"
	"github.com/sangkips/pos-api/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles settlement exports
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// TransactionsXLSX downloads the business's transactions created between
// from (inclusive) and to (exclusive) as a workbook
func (h *ReportHandler) TransactionsXLSX(c *gin.Context) {
	businessID, ok := businessScope(c)
	if !ok {
		return
	}

	from, err := parseDate(c.Query("from"))
	if err != nil {
		response.BadRequest(c, "Invalid from date")
		return
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		response.BadRequest(c, "Invalid to date")
		return
	}

	data, err := h.reportService.TransactionsWorkbook(c.Request.Context(), businessID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := "transactions-" + from.Format("20060102") + "-" + to.Format("20060102") + ".xlsx"
	response.File(c, filename, xlsxContentType, data)
}
