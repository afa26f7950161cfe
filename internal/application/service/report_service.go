package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/repository"
	"github.com/sangkips/pos-api/pkg/apperror"
	"github.com/sangkips/pos-api/pkg/report"
)

// ReportService exports settlement data
type ReportService struct {
	transactionRepo repository.TransactionRepository
}

// NewReportService creates a new report service
func NewReportService(transactionRepo repository.TransactionRepository) *ReportService {
	return &ReportService{transactionRepo: transactionRepo}
}

// TransactionsWorkbook renders the business's transactions created in
// [from, to) and their payments as an XLSX workbook
func (s *ReportService) TransactionsWorkbook(ctx context.Context, businessID uuid.UUID, from, to time.Time) ([]byte, error) {
	if !from.Before(to) {
		return nil, apperror.NewInvalidArgumentError("Report start must be before its end")
	}

	transactions, err := s.transactionRepo.ListByBusiness(ctx, businessID, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}

	txRows := make([]report.TransactionRow, 0, len(transactions))
	var paymentRows []report.PaymentRow
	for _, t := range transactions {
		txRows = append(txRows, report.TransactionRow{
			ID:          t.ID.String(),
			OrderID:     t.OrderID.String(),
			Type:        t.Type.String(),
			Currency:    t.Currency.String(),
			Amount:      t.Amount,
			ChangeGiven: t.ChangeGiven,
			CreatedAt:   t.CreatedAt,
		})
		for _, p := range t.Payments {
			paymentRows = append(paymentRows, report.PaymentRow{
				TransactionID:     t.ID.String(),
				Method:            p.Method.String(),
				Currency:          p.Currency.String(),
				Amount:            p.Amount,
				ExternalReference: p.ExternalReference,
			})
		}
	}

	return report.BuildTransactionsWorkbook(txRows, paymentRows)
}
