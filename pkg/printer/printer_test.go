package printer

import (
	"bytes"
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReceipt() *Receipt {
	return &Receipt{
		BusinessName:  "Corner Cafe",
		Address:       "1 Main St",
		OrderID:       "6f1c1f0e-2b7a-4c39-9a0e-1b8a0f0f0f0f",
		TransactionID: "0a5d2c44-9e0b-4a5e-8c1d-7a7a7a7a7a7a",
		Currency:      "EUR",
		IssuedAt:      time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
		Lines: []ReceiptLine{
			{Name: "Flat white", Quantity: 2, Total: decimal.RequireFromString("7.00")},
			{Name: "A very long pastry name that will not fit", Quantity: 1, Total: decimal.RequireFromString("3.50")},
		},
		Subtotal: decimal.RequireFromString("10.50"),
		Discount: decimal.RequireFromString("0.50"),
		Tip:      decimal.RequireFromString("1.00"),
		Total:    decimal.RequireFromString("11.00"),
		Payments: []ReceiptPayment{{Method: "Cash", Amount: decimal.RequireFromString("20.00")}},
		Change:   decimal.RequireFromString("9.00"),
	}
}

func TestReceiptRender(t *testing.T) {
	out := sampleReceipt().Render(Width58mm)

	assert.True(t, bytes.HasPrefix(out, []byte{esc, '@'}))
	assert.True(t, bytes.HasSuffix(out, []byte{gs, 'V', 0x42, 0x00}))
	for _, want := range []string{"Corner Cafe", "Order: 6f1c1f0e", "2x Flat white", "-0.50 EUR", "TOTAL", "11.00 EUR", "Change", "9.00 EUR", "2024-03-01 12:30 UTC"} {
		assert.Contains(t, string(out), want)
	}
	assert.NotContains(t, string(out), "REFUND")

	for _, line := range bytes.Split(out, []byte{lf}) {
		text := stripControl(line)
		assert.LessOrEqual(t, len(text), Width58mm, "line %q overflows", text)
	}
}

func TestReceiptRenderRefundSkipsEmptySections(t *testing.T) {
	r := &Receipt{
		BusinessName: "Corner Cafe",
		Refund:       true,
		Total:        decimal.RequireFromString("5.00"),
		Payments:     []ReceiptPayment{{Method: "Cash", Amount: decimal.RequireFromString("5.00")}},
	}
	out := string(r.Render(Width80mm))

	assert.Contains(t, out, "REFUND")
	assert.NotContains(t, out, "Subtotal")
	assert.NotContains(t, out, "Tip")
	assert.NotContains(t, out, "Change")
}

func TestColumnsPadsToWidth(t *testing.T) {
	doc := &Document{width: 20}
	doc.Columns("Tea", "2.00")
	assert.Equal(t, "Tea"+strings.Repeat(" ", 13)+"2.00\n", doc.buf.String())
}

func TestNew(t *testing.T) {
	p, err := New(Config{})
	require.NoError(t, err)
	assert.False(t, p.Connected(context.Background()))
	assert.NoError(t, p.Print(context.Background(), []byte("x")))

	_, err = New(Config{Type: "usb"})
	assert.Error(t, err)
	_, err = New(Config{Type: "network"})
	assert.Error(t, err)
	_, err = New(Config{Type: "bluetooth"})
	assert.Error(t, err)
}

func TestUSBPrinterWritesDevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lp0")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	p, err := New(Config{Type: "usb", USBPath: path})
	require.NoError(t, err)
	assert.True(t, p.Connected(context.Background()))
	require.NoError(t, p.Print(context.Background(), []byte("hello")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

func TestNetworkPrinterSendsJob(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		received <- data
	}()

	p, err := New(Config{Type: "network", Address: ln.Addr().String(), Timeout: time.Second})
	require.NoError(t, err)
	require.NoError(t, p.Print(context.Background(), []byte("receipt")))

	select {
	case data := <-received:
		assert.Equal(t, "receipt", string(data))
	case <-time.After(2 * time.Second):
		t.Fatal("printer job not received")
	}
}

// stripControl drops ESC/POS command sequences so only printable text remains
func stripControl(line []byte) string {
	var out []byte
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case esc, gs:
			switch {
			case i+1 < len(line) && line[i+1] == '@':
				i++
			case i+1 < len(line) && line[i+1] == 'V':
				i += 3
			default:
				i += 2
			}
		default:
			out = append(out, line[i])
		}
	}
	return string(out)
}
