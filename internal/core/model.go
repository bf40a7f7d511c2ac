package core

import (
	"time"

	"github.com/shopspring/decimal"
)

type AdjustmentKind string

const (
	AdjustmentPercentage AdjustmentKind = "percentage"
	AdjustmentFixed      AdjustmentKind = "fixed"
)

// AdjustmentRule is a tax or discount rule applied to an invoice subtotal.
// Percentage values are interpreted as 0-100. A nil rule or a value <= 0
// contributes nothing to the total.
type AdjustmentRule struct {
	Kind  AdjustmentKind  `json:"kind"`
	Value decimal.Decimal `json:"value"`
}

type InvoiceStatus string

const (
	StatusSent    InvoiceStatus = "sent"
	StatusDueSoon InvoiceStatus = "due-soon"
	StatusOverdue InvoiceStatus = "overdue"
)

// DisplayText returns the human-readable label for a status.
func (s InvoiceStatus) DisplayText() string {
	switch s {
	case StatusOverdue:
		return "Overdue"
	case StatusDueSoon:
		return "Due Soon"
	case StatusSent:
		return "Sent"
	}
	return "Draft"
}

// LineItem is a single billable row on an invoice. ID is unique within the
// owning ledger only. Items are immutable once added except by removal.
type LineItem struct {
	ID          int             `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Total returns quantity * unit price.
func (li LineItem) Total() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// Invoice is the aggregate root. It is created once by finalizing a draft and
// is immutable once persisted; the only defined mutation is deletion.
//
// Status is derived from DueDate at read time and never persisted — two reads
// at different times may legitimately yield different statuses.
type Invoice struct {
	ID             int             `json:"id"`
	OwnerID        int             `json:"owner_id"`
	InvoiceNumber  string          `json:"invoice_number"`
	ClientName     string          `json:"client_name"`
	ClientEmail    string          `json:"client_email,omitempty"`
	ClientPhone    string          `json:"client_phone,omitempty"`
	ClientAddress  string          `json:"client_address"`
	CompanyName    string          `json:"company_name"`
	CompanyEmail   string          `json:"company_email,omitempty"`
	CompanyPhone   string          `json:"company_phone,omitempty"`
	CompanyAddress string          `json:"company_address,omitempty"`
	InvoiceDate    time.Time       `json:"invoice_date"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
	Items          []LineItem      `json:"line_items"`
	TaxRule        *AdjustmentRule `json:"tax_rule,omitempty"`
	DiscountRule   *AdjustmentRule `json:"discount_rule,omitempty"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Total          decimal.Decimal `json:"total"`
	Status         InvoiceStatus   `json:"status,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// InvoiceDefaults holds the issuer profile used to pre-populate the company
// section of a new draft. It is always passed in explicitly by the caller;
// the engine never reads ambient state.
type InvoiceDefaults struct {
	CompanyName    string `json:"company_name"`
	CompanyEmail   string `json:"company_email"`
	CompanyPhone   string `json:"company_phone"`
	CompanyAddress string `json:"company_address"`
	LogoURL        string `json:"logo_url"`
}
