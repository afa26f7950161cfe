package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/pos-api/internal/domain/entity"
	"github.com/sangkips/pos-api/internal/domain/enum"
	"github.com/sangkips/pos-api/pkg/apperror"
	"github.com/sangkips/pos-api/pkg/logger"
	"github.com/sangkips/pos-api/pkg/printer"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReceiptService renders transaction receipts and sends them to the receipt printer
type ReceiptService struct {
	repos       Repositories
	printer     printer.Printer
	printerType string
	width       int
	logger      *zap.Logger
}

// NewReceiptService creates a new receipt service. A nil printer drops every job.
func NewReceiptService(repos Repositories, p printer.Printer, printerType string, width int, log *zap.Logger) *ReceiptService {
	if p == nil {
		p = printer.Null()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ReceiptService{repos: repos, printer: p, printerType: printerType, width: width, logger: log}
}

// PrinterStatus describes the configured receipt printer
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// Status reports whether a printer is configured and reachable
func (s *ReceiptService) Status(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "" && s.printerType != "none",
		Connected:  s.printer.Connected(ctx),
		Type:       s.printerType,
	}
}

// ReceiptOutput is a rendered receipt. Warning is set when printing failed;
// the receipt itself is still returned.
type ReceiptOutput struct {
	Receipt []byte `json:"receipt"`
	Printed bool   `json:"printed"`
	Warning string `json:"warning,omitempty"`
}

// PrintTransactionReceipt renders the receipt of a transaction of the order
// and prints it
func (s *ReceiptService) PrintTransactionReceipt(ctx context.Context, orderID, transactionID uuid.UUID) (*ReceiptOutput, error) {
	receipt, err := s.build(ctx, orderID, transactionID)
	if err != nil {
		return nil, err
	}

	out := &ReceiptOutput{Receipt: receipt.Render(s.width)}
	if err := s.printer.Print(ctx, out.Receipt); err != nil {
		logger.FromContext(ctx, s.logger).Warn("receipt not printed",
			zap.String("transaction_id", transactionID.String()),
			zap.Error(err),
		)
		out.Warning = err.Error()
		return out, nil
	}
	out.Printed = true
	return out, nil
}

func (s *ReceiptService) build(ctx context.Context, orderID, transactionID uuid.UUID) (*printer.Receipt, error) {
	transaction, err := s.repos.Transactions.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if transaction == nil || transaction.OrderID != orderID {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	order, err := s.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || !visible(ctx, order.BusinessID) {
		return nil, apperror.NewNotFoundError("Order")
	}
	business, err := s.repos.Businesses.GetByID(ctx, order.BusinessID)
	if err != nil {
		return nil, err
	}

	receipt := &printer.Receipt{
		OrderID:       order.ID.String(),
		TransactionID: transaction.ID.String(),
		Refund:        transaction.Type == enum.TransactionTypeRefund,
		Currency:      transaction.Currency.String(),
		IssuedAt:      transaction.CreatedAt,
		Total:         transaction.Amount,
		Change:        transaction.ChangeGiven,
	}
	if business != nil {
		receipt.BusinessName = business.Name
		receipt.Address = business.Address
		receipt.Phone = business.Phone
	}
	for _, p := range transaction.Payments {
		receipt.Payments = append(receipt.Payments, printer.ReceiptPayment{Method: p.Method.String(), Amount: p.Amount})
	}

	if receipt.Refund {
		return receipt, nil
	}

	items, err := s.repos.OrderItems.GetByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		item := &items[i]
		if item.TransactionID == nil || *item.TransactionID != transaction.ID {
			continue
		}
		name, err := s.itemName(ctx, item)
		if err != nil {
			return nil, err
		}
		receipt.Lines = append(receipt.Lines, printer.ReceiptLine{Name: name, Quantity: item.Quantity, Total: item.Total()})
		receipt.Subtotal = receipt.Subtotal.Add(item.Total())
		receipt.Discount = receipt.Discount.Add(item.DiscountTotal())
	}
	net := decimal.Max(decimal.Zero, receipt.Subtotal.Sub(receipt.Discount)).Round(2)
	if tip := transaction.Amount.Sub(net); tip.IsPositive() {
		receipt.Tip = tip
	}
	return receipt, nil
}

func (s *ReceiptService) itemName(ctx context.Context, item *entity.OrderItem) (string, error) {
	switch item.Type {
	case enum.OrderItemTypeProduct:
		product, err := s.repos.Products.GetByID(ctx, *item.ProductID)
		if err != nil || product == nil {
			return "Product", err
		}
		return product.Name, nil
	default:
		svc, err := s.repos.Services.GetByID(ctx, *item.ServiceID)
		if err != nil || svc == nil {
			return "Service", err
		}
		return svc.Name, nil
	}
}
