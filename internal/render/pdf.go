// Package render is the rendering collaborator: it turns a finalized invoice
// into a printable PDF. It consumes the engine's computed amounts as-is and
// never re-derives them, so document and record can not drift apart.
package render

import (
	"bytes"
	"fmt"

	"billing-tool/internal/core"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// ExportFilename returns the document-identifying anchor for an invoice,
// without extension: Invoice-<invoiceNumber>-<isoDate>. This format is part
// of the export compatibility contract and must not change.
func ExportFilename(inv *core.Invoice) string {
	return fmt.Sprintf("Invoice-%s-%s", inv.InvoiceNumber, inv.InvoiceDate.Format("2006-01-02"))
}

// PDF renders invoices as A4 portrait documents.
type PDF struct{}

func NewPDF() *PDF {
	return &PDF{}
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// Render produces the PDF bytes for a finalized invoice. adj carries the
// engine-computed tax/discount/total breakdown for display.
func (p *PDF) Render(inv *core.Invoice, adj core.Adjustments) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(ExportFilename(inv), false)
	pdf.AddPage()

	// Header: issuer on the left, invoice meta on the right.
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(120, 10, inv.CompanyName)
	pdf.SetFont("Arial", "B", 22)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, line := range []string{inv.CompanyAddress, inv.CompanyPhone, inv.CompanyEmail} {
		if line != "" {
			pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
		}
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 5, fmt.Sprintf("Invoice #: %s", inv.InvoiceNumber), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, fmt.Sprintf("Date: %s", inv.InvoiceDate.Format("2006-01-02")), "", 1, "R", false, 0, "")
	if inv.DueDate != nil {
		pdf.CellFormat(0, 5, fmt.Sprintf("Due Date: %s", inv.DueDate.Format("2006-01-02")), "", 1, "R", false, 0, "")
	}

	// Bill-to block.
	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, "Bill To:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, line := range []string{inv.ClientName, inv.ClientEmail, inv.ClientPhone, inv.ClientAddress} {
		if line != "" {
			pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
		}
	}

	// Line-item table in ledger order.
	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(100, 7, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range inv.Items {
		pdf.CellFormat(100, 7, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, item.Quantity.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, money(item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, money(item.Total()), "1", 1, "R", false, 0, "")
	}

	// Totals: zero-amount adjustments are omitted, matching the record.
	pdf.Ln(4)
	totalsRow := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(155, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, value, "", 1, "R", false, 0, "")
	}
	totalsRow("Subtotal:", money(inv.Subtotal), false)
	if adj.TaxAmount.Sign() > 0 {
		totalsRow("Tax:", money(adj.TaxAmount), false)
	}
	if adj.DiscountAmount.Sign() > 0 {
		totalsRow("Discount:", "-"+money(adj.DiscountAmount), false)
	}
	totalsRow("Total:", money(adj.Total), true)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", inv.InvoiceNumber, err)
	}
	return buf.Bytes(), nil
}
