package render_test

import (
	"bytes"
	"testing"
	"time"

	"billing-tool/internal/core"
	"billing-tool/internal/render"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestExportFilename(t *testing.T) {
	inv := &core.Invoice{
		InvoiceNumber: "1042",
		InvoiceDate:   time.Date(2024, 3, 5, 16, 45, 0, 0, time.UTC),
	}
	// Bit-for-bit: export compatibility depends on this exact shape.
	if got, want := render.ExportFilename(inv), "Invoice-1042-2024-03-05"; got != want {
		t.Errorf("ExportFilename = %q, want %q", got, want)
	}
}

func TestPDF_Render(t *testing.T) {
	due := time.Date(2024, 4, 14, 0, 0, 0, 0, time.UTC)
	inv := &core.Invoice{
		InvoiceNumber: "1001",
		ClientName:    "Acme Corp",
		ClientAddress: "42 Side Street",
		CompanyName:   "Studio North",
		InvoiceDate:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		DueDate:       &due,
		Items: []core.LineItem{
			{ID: 0, Description: "Design work", Quantity: dec("2"), UnitPrice: dec("100.00")},
		},
		Subtotal: dec("200.00"),
		Total:    dec("205.00"),
	}
	adj := core.Adjustments{
		TaxAmount:      dec("20.00"),
		DiscountAmount: dec("15.00"),
		Total:          dec("205.00"),
	}

	out, err := render.NewPDF().Render(inv, adj)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("empty PDF output")
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output does not start with PDF magic: %q", out[:8])
	}
}
