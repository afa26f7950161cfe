package printer

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is the printable summary of one settlement transaction
type Receipt struct {
	BusinessName  string
	Address       string
	Phone         string
	OrderID       string
	TransactionID string
	Refund        bool
	Currency      string
	IssuedAt      time.Time
	Lines         []ReceiptLine
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Tip           decimal.Decimal
	Total         decimal.Decimal
	Payments      []ReceiptPayment
	Change        decimal.Decimal
}

// ReceiptLine is one paid order item
type ReceiptLine struct {
	Name     string
	Quantity int
	Total    decimal.Decimal
}

// ReceiptPayment is one tender of the transaction
type ReceiptPayment struct {
	Method string
	Amount decimal.Decimal
}

// Render lays the receipt out for paper width characters wide
func (r *Receipt) Render(width int) []byte {
	doc := NewDocument(width)

	doc.Align(AlignCenter).Bold(true).Size(SizeDouble).
		Line(r.BusinessName).
		Size(SizeNormal).Bold(false)
	if r.Address != "" {
		doc.Line(r.Address)
	}
	if r.Phone != "" {
		doc.Line(r.Phone)
	}
	if r.Refund {
		doc.Bold(true).Line("REFUND").Bold(false)
	}

	doc.Align(AlignLeft).Rule('=').
		Line("Order: " + short(r.OrderID)).
		Line("Txn:   " + short(r.TransactionID)).
		Line(r.IssuedAt.UTC().Format("2006-01-02 15:04 MST")).
		Rule('-')

	for _, l := range r.Lines {
		doc.Columns(fmt.Sprintf("%dx %s", l.Quantity, l.Name), r.money(l.Total))
	}
	if len(r.Lines) > 0 {
		doc.Rule('-').Columns("Subtotal", r.money(r.Subtotal))
	}
	if r.Discount.IsPositive() {
		doc.Columns("Discount", "-"+r.money(r.Discount))
	}
	if r.Tip.IsPositive() {
		doc.Columns("Tip", r.money(r.Tip))
	}
	doc.Bold(true).Columns("TOTAL", r.money(r.Total)).Bold(false).Rule('-')

	for _, p := range r.Payments {
		doc.Columns(p.Method, r.money(p.Amount))
	}
	if r.Change.IsPositive() {
		doc.Columns("Change", r.money(r.Change))
	}

	doc.Rule('=').Align(AlignCenter).Line("Thank you").Feed(3).Cut()
	return doc.Bytes()
}

func (r *Receipt) money(d decimal.Decimal) string {
	if r.Currency == "" {
		return d.StringFixed(2)
	}
	return d.StringFixed(2) + " " + r.Currency
}

// short keeps the first block of a uuid, enough to find it on screen
func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
