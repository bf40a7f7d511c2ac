package app

import "billing-tool/internal/core"

// InvoiceListResult is returned by ListInvoices and DeleteInvoice. Summary is
// always computed over the owner's full collection, not the filtered view.
type InvoiceListResult struct {
	Invoices []core.Invoice `json:"invoices"`
	Summary  core.Summary   `json:"summary"`
}

// ExportResult is a rendered invoice document ready for download.
type ExportResult struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// UserSession identifies an authenticated user.
type UserSession struct {
	UserID      int    `json:"user_id"`
	Username    string `json:"username"`
	CompanyName string `json:"company_name"`
}
