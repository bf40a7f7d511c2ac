package app

import (
	"context"

	"billing-tool/internal/core"
)

// ApplicationService is the single interface all adapters (CLI, Web) call.
// It decouples presentation from the engine. Implementations must contain no
// display logic of any kind.
type ApplicationService interface {
	// ListInvoices returns the owner's invoices with derived statuses,
	// filtered and sorted per the request, plus summary aggregates computed
	// over the full unfiltered collection.
	ListInvoices(ctx context.Context, ownerID int, req ListInvoicesRequest) (*InvoiceListResult, error)

	// GetInvoice returns a single invoice with its status derived as of now.
	GetInvoice(ctx context.Context, ownerID, invoiceID int) (*core.Invoice, error)

	// CreateInvoice finalizes a draft: validates it, assigns the next invoice
	// number when the request leaves it blank, computes totals, and persists
	// the result. Nothing is saved when validation fails.
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*core.Invoice, error)

	// DeleteInvoice removes an invoice and returns the re-fetched list. A
	// failed delete leaves stored and cached state untouched.
	DeleteInvoice(ctx context.Context, ownerID, invoiceID int) (*InvoiceListResult, error)

	// NextInvoiceNumber previews the number the sequencer would assign to the
	// owner's next invoice. Advisory only — concurrent creations may race.
	NextInvoiceNumber(ctx context.Context, ownerID int) (string, error)

	// ExportInvoice renders an invoice to a PDF document named
	// Invoice-<number>-<isoDate>.pdf.
	ExportInvoice(ctx context.Context, ownerID, invoiceID int) (*ExportResult, error)

	// NewInvoiceDefaults returns the owner's issuer profile defaults used to
	// pre-populate a new draft's company section.
	NewInvoiceDefaults(ctx context.Context, ownerID int) (*core.InvoiceDefaults, error)

	// AuthenticateUser verifies credentials and returns a session on success.
	AuthenticateUser(ctx context.Context, username, password string) (*UserSession, error)

	// GetUser returns the user profile by ID.
	GetUser(ctx context.Context, userID int) (*core.User, error)
}
