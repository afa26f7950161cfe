// Package report renders settlement data as spreadsheets.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	transactionsSheet = "Transactions"
	paymentsSheet     = "Payments"
)

// TransactionRow is one transaction line of the report
type TransactionRow struct {
	ID          string
	OrderID     string
	Type        string
	Currency    string
	Amount      decimal.Decimal
	ChangeGiven decimal.Decimal
	CreatedAt   time.Time
}

// PaymentRow is one payment line of the report
type PaymentRow struct {
	TransactionID     string
	Method            string
	Currency          string
	Amount            decimal.Decimal
	ExternalReference string
}

var (
	transactionHeader = []any{"Transaction", "Order", "Type", "Currency", "Amount", "Change", "Created (UTC)"}
	paymentHeader     = []any{"Transaction", "Method", "Currency", "Amount", "External reference"}
)

// BuildTransactionsWorkbook writes transactions and payments to two sheets and
// returns the XLSX bytes.
func BuildTransactionsWorkbook(transactions []TransactionRow, payments []PaymentRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", transactionsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(paymentsSheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	if err := writeRow(f, transactionsSheet, 1, transactionHeader); err != nil {
		return nil, err
	}
	for i, t := range transactions {
		row := []any{
			t.ID,
			t.OrderID,
			t.Type,
			t.Currency,
			t.Amount.InexactFloat64(),
			t.ChangeGiven.InexactFloat64(),
			t.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := writeRow(f, transactionsSheet, i+2, row); err != nil {
			return nil, err
		}
	}

	if err := writeRow(f, paymentsSheet, 1, paymentHeader); err != nil {
		return nil, err
	}
	for i, p := range payments {
		row := []any{p.TransactionID, p.Method, p.Currency, p.Amount.InexactFloat64(), p.ExternalReference}
		if err := writeRow(f, paymentsSheet, i+2, row); err != nil {
			return nil, err
		}
	}

	for _, sheet := range []string{transactionsSheet, paymentsSheet} {
		if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
