package app

import "github.com/shopspring/decimal"

// ListInvoicesRequest selects and orders an owner's invoice list.
type ListInvoicesRequest struct {
	Search string `json:"search"`
	Status string `json:"status"`  // a status wire value, or "all"/empty for any
	SortBy string `json:"sort_by"` // date, amount, client, status
}

// LineItemInput is a single line within a CreateInvoiceRequest.
type LineItemInput struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// AdjustmentInput is a tax or discount rule within a CreateInvoiceRequest.
type AdjustmentInput struct {
	Kind  string          `json:"kind"` // "percentage" or "fixed"
	Value decimal.Decimal `json:"value"`
}

// CreateInvoiceRequest is the input for finalizing and saving a new invoice.
// Company fields left empty fall back to the owner's issuer defaults; an
// empty InvoiceNumber is filled in by the sequencer.
//
// DueDate is a pointer so three states stay distinguishable: nil applies the
// default (invoice date + 30 days), an empty string clears the due date, and
// a YYYY-MM-DD value sets it.
type CreateInvoiceRequest struct {
	OwnerID int `json:"-"` // from the authenticated session, never the body

	ClientName    string `json:"client_name"`
	ClientEmail   string `json:"client_email"`
	ClientPhone   string `json:"client_phone"`
	ClientAddress string `json:"client_address"`

	CompanyName    string `json:"company_name"`
	CompanyEmail   string `json:"company_email"`
	CompanyPhone   string `json:"company_phone"`
	CompanyAddress string `json:"company_address"`

	InvoiceNumber string  `json:"invoice_number"`
	InvoiceDate   string  `json:"invoice_date"` // YYYY-MM-DD, empty = today
	DueDate       *string `json:"due_date"`

	Items    []LineItemInput  `json:"line_items"`
	Tax      *AdjustmentInput `json:"tax"`
	Discount *AdjustmentInput `json:"discount"`
}
