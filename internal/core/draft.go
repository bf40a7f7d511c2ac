package core

import (
	"strings"
	"time"
)

// DefaultDueDays is how far ahead of the invoice date a new draft's due date
// defaults to. Callers may override or clear it before finalizing.
const DefaultDueDays = 30

// InvoiceDraft accumulates invoice fields before finalization. Line items are
// mutable only while the invoice is in draft form; once Finalize succeeds the
// resulting Invoice is frozen.
type InvoiceDraft struct {
	OwnerID int

	ClientName    string
	ClientEmail   string
	ClientPhone   string
	ClientAddress string

	CompanyName    string
	CompanyEmail   string
	CompanyPhone   string
	CompanyAddress string

	InvoiceNumber string
	InvoiceDate   time.Time
	DueDate       *time.Time

	Ledger       *Ledger
	TaxRule      *AdjustmentRule
	DiscountRule *AdjustmentRule
}

// NewDraft starts a draft for the given owner, pre-populating the company
// section from the injected issuer defaults. The invoice date defaults to
// today and the due date to DefaultDueDays ahead.
func NewDraft(ownerID int, defaults InvoiceDefaults, now time.Time) *InvoiceDraft {
	due := now.AddDate(0, 0, DefaultDueDays)
	return &InvoiceDraft{
		OwnerID:        ownerID,
		CompanyName:    defaults.CompanyName,
		CompanyEmail:   defaults.CompanyEmail,
		CompanyPhone:   defaults.CompanyPhone,
		CompanyAddress: defaults.CompanyAddress,
		InvoiceDate:    now,
		DueDate:        &due,
		Ledger:         NewLedger(),
	}
}

// Finalize validates the draft and produces the immutable invoice record with
// computed subtotal and total. It rejects drafts missing a client name,
// client address, invoice number, or line items; the draft itself is left
// unchanged on failure.
func (d *InvoiceDraft) Finalize(now time.Time) (*Invoice, error) {
	if strings.TrimSpace(d.ClientName) == "" {
		return nil, &ValidationError{Field: "client_name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(d.ClientAddress) == "" {
		return nil, &ValidationError{Field: "client_address", Reason: "must not be empty"}
	}
	if strings.TrimSpace(d.InvoiceNumber) == "" {
		return nil, &ValidationError{Field: "invoice_number", Reason: "must not be empty"}
	}
	if d.Ledger == nil || d.Ledger.Len() == 0 {
		return nil, &ValidationError{Field: "line_items", Reason: "at least one line item is required"}
	}

	invoiceDate := d.InvoiceDate
	if invoiceDate.IsZero() {
		invoiceDate = now
	}

	subtotal := d.Ledger.Subtotal()
	adj := ApplyAdjustments(subtotal, d.TaxRule, d.DiscountRule)

	return &Invoice{
		OwnerID:        d.OwnerID,
		InvoiceNumber:  strings.TrimSpace(d.InvoiceNumber),
		ClientName:     d.ClientName,
		ClientEmail:    d.ClientEmail,
		ClientPhone:    d.ClientPhone,
		ClientAddress:  d.ClientAddress,
		CompanyName:    d.CompanyName,
		CompanyEmail:   d.CompanyEmail,
		CompanyPhone:   d.CompanyPhone,
		CompanyAddress: d.CompanyAddress,
		InvoiceDate:    invoiceDate,
		DueDate:        d.DueDate,
		Items:          d.Ledger.Items(),
		TaxRule:        d.TaxRule,
		DiscountRule:   d.DiscountRule,
		Subtotal:       subtotal,
		Total:          adj.Total,
		Status:         DeriveStatus(d.DueDate, now),
	}, nil
}
