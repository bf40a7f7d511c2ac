package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"billing-tool/internal/core"
	"billing-tool/internal/render"
)

type appService struct {
	store    core.InvoiceStore
	identity core.IdentityService
	renderer *render.PDF
	now      func() time.Time
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(store core.InvoiceStore, identity core.IdentityService, renderer *render.PDF) ApplicationService {
	return &appService{
		store:    store,
		identity: identity,
		renderer: renderer,
		now:      time.Now,
	}
}

func (s *appService) ListInvoices(ctx context.Context, ownerID int, req ListInvoicesRequest) (*InvoiceListResult, error) {
	invoices, err := s.store.ListInvoices(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	core.AnnotateStatuses(invoices, s.now())

	// Aggregates cover the full collection; the filter applies afterwards.
	summary := core.Summarize(invoices)

	filtered := core.FilterInvoices(invoices, core.ListQuery{
		Search: req.Search,
		Status: req.Status,
	})
	core.SortInvoices(filtered, core.SortKey(req.SortBy))

	return &InvoiceListResult{Invoices: filtered, Summary: summary}, nil
}

func (s *appService) GetInvoice(ctx context.Context, ownerID, invoiceID int) (*core.Invoice, error) {
	inv, err := s.store.GetInvoice(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}
	inv.Status = core.DeriveStatus(inv.DueDate, s.now())
	return inv, nil
}

// parseAdjustment converts an optional rule input, rejecting unknown kinds.
func parseAdjustment(in *AdjustmentInput, field string) (*core.AdjustmentRule, error) {
	if in == nil {
		return nil, nil
	}
	kind := core.AdjustmentKind(in.Kind)
	if in.Kind == "" {
		kind = core.AdjustmentPercentage
	}
	if kind != core.AdjustmentPercentage && kind != core.AdjustmentFixed {
		return nil, &core.ValidationError{Field: field, Reason: fmt.Sprintf("unknown kind %q", in.Kind)}
	}
	if in.Value.Sign() < 0 {
		return nil, &core.ValidationError{Field: field, Reason: "value must not be negative"}
	}
	return &core.AdjustmentRule{Kind: kind, Value: in.Value}, nil
}

func parseDate(value, field string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, &core.ValidationError{Field: field, Reason: "must be a YYYY-MM-DD date"}
	}
	return t, nil
}

func (s *appService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*core.Invoice, error) {
	user, err := s.identity.GetByID(ctx, req.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("load owner profile: %w", err)
	}

	now := s.now()
	draft := core.NewDraft(req.OwnerID, user.InvoiceDefaults(), now)

	draft.ClientName = req.ClientName
	draft.ClientEmail = req.ClientEmail
	draft.ClientPhone = req.ClientPhone
	draft.ClientAddress = req.ClientAddress

	// Issuer defaults are defaults only; submitted values win.
	if req.CompanyName != "" {
		draft.CompanyName = req.CompanyName
	}
	if req.CompanyEmail != "" {
		draft.CompanyEmail = req.CompanyEmail
	}
	if req.CompanyPhone != "" {
		draft.CompanyPhone = req.CompanyPhone
	}
	if req.CompanyAddress != "" {
		draft.CompanyAddress = req.CompanyAddress
	}

	if req.InvoiceDate != "" {
		invoiceDate, err := parseDate(req.InvoiceDate, "invoice_date")
		if err != nil {
			return nil, err
		}
		draft.InvoiceDate = invoiceDate
		// Keep the default due-date offset anchored to the chosen date.
		if req.DueDate == nil {
			due := invoiceDate.AddDate(0, 0, core.DefaultDueDays)
			draft.DueDate = &due
		}
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			draft.DueDate = nil
		} else {
			due, err := parseDate(*req.DueDate, "due_date")
			if err != nil {
				return nil, err
			}
			draft.DueDate = &due
		}
	}

	for _, item := range req.Items {
		if _, err := draft.Ledger.AddItem(item.Description, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
	}

	if draft.TaxRule, err = parseAdjustment(req.Tax, "tax"); err != nil {
		return nil, err
	}
	if draft.DiscountRule, err = parseAdjustment(req.Discount, "discount"); err != nil {
		return nil, err
	}

	draft.InvoiceNumber = req.InvoiceNumber
	if draft.InvoiceNumber == "" {
		number, err := s.NextInvoiceNumber(ctx, req.OwnerID)
		if err != nil {
			return nil, err
		}
		draft.InvoiceNumber = number
	}

	inv, err := draft.Finalize(now)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveInvoice(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *appService) DeleteInvoice(ctx context.Context, ownerID, invoiceID int) (*InvoiceListResult, error) {
	// Delete first, then re-fetch the full list; no optimistic local removal.
	if err := s.store.DeleteInvoice(ctx, ownerID, invoiceID); err != nil {
		return nil, err
	}
	return s.ListInvoices(ctx, ownerID, ListInvoicesRequest{})
}

func (s *appService) NextInvoiceNumber(ctx context.Context, ownerID int) (string, error) {
	raw, ok, err := s.store.FindMaxInvoiceNumber(ctx, ownerID)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(core.NextInvoiceNumber(raw, ok)), nil
}

func (s *appService) ExportInvoice(ctx context.Context, ownerID, invoiceID int) (*ExportResult, error) {
	inv, err := s.GetInvoice(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}

	// The renderer receives the computed breakdown; it never re-derives it.
	adj := core.ApplyAdjustments(inv.Subtotal, inv.TaxRule, inv.DiscountRule)
	data, err := s.renderer.Render(inv, adj)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		Filename:    render.ExportFilename(inv) + ".pdf",
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

func (s *appService) NewInvoiceDefaults(ctx context.Context, ownerID int) (*core.InvoiceDefaults, error) {
	user, err := s.identity.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	defaults := user.InvoiceDefaults()
	return &defaults, nil
}

func (s *appService) AuthenticateUser(ctx context.Context, username, password string) (*UserSession, error) {
	user, err := s.identity.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return &UserSession{
		UserID:      user.ID,
		Username:    user.Username,
		CompanyName: user.CompanyName,
	}, nil
}

func (s *appService) GetUser(ctx context.Context, userID int) (*core.User, error) {
	return s.identity.GetByID(ctx, userID)
}
