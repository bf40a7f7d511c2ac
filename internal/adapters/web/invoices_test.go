package web_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"billing-tool/internal/adapters/web"
	"billing-tool/internal/app"
	"billing-tool/internal/core"

	"github.com/shopspring/decimal"
)

// fakeService implements app.ApplicationService for handler tests.
type fakeService struct {
	invoices   []core.Invoice
	lastDelete int
}

func (f *fakeService) ListInvoices(_ context.Context, ownerID int, req app.ListInvoicesRequest) (*app.InvoiceListResult, error) {
	filtered := core.FilterInvoices(f.invoices, core.ListQuery{Search: req.Search, Status: req.Status})
	return &app.InvoiceListResult{Invoices: filtered, Summary: core.Summarize(f.invoices)}, nil
}

func (f *fakeService) GetInvoice(_ context.Context, _, invoiceID int) (*core.Invoice, error) {
	for _, inv := range f.invoices {
		if inv.ID == invoiceID {
			return &inv, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeService) CreateInvoice(_ context.Context, req app.CreateInvoiceRequest) (*core.Invoice, error) {
	if req.ClientName == "" {
		return nil, &core.ValidationError{Field: "client_name", Reason: "must not be empty"}
	}
	return &core.Invoice{ID: 99, OwnerID: req.OwnerID, InvoiceNumber: "1001", ClientName: req.ClientName}, nil
}

func (f *fakeService) DeleteInvoice(ctx context.Context, ownerID, invoiceID int) (*app.InvoiceListResult, error) {
	if _, err := f.GetInvoice(ctx, ownerID, invoiceID); err != nil {
		return nil, err
	}
	f.lastDelete = invoiceID
	return &app.InvoiceListResult{}, nil
}

func (f *fakeService) NextInvoiceNumber(context.Context, int) (string, error) {
	return "1002", nil
}

func (f *fakeService) ExportInvoice(ctx context.Context, ownerID, invoiceID int) (*app.ExportResult, error) {
	if _, err := f.GetInvoice(ctx, ownerID, invoiceID); err != nil {
		return nil, err
	}
	return &app.ExportResult{
		Filename:    "Invoice-1001-2024-03-15.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-fake"),
	}, nil
}

func (f *fakeService) NewInvoiceDefaults(context.Context, int) (*core.InvoiceDefaults, error) {
	return &core.InvoiceDefaults{CompanyName: "Studio North"}, nil
}

func (f *fakeService) AuthenticateUser(_ context.Context, username, password string) (*app.UserSession, error) {
	if username == "tester" && password == "secret" {
		return &app.UserSession{UserID: 1, Username: "tester"}, nil
	}
	return nil, core.ErrInvalidCredentials
}

func (f *fakeService) GetUser(context.Context, int) (*core.User, error) {
	return &core.User{ID: 1, Username: "tester"}, nil
}

func newTestServer(t *testing.T) (http.Handler, *fakeService, *http.Cookie) {
	t.Helper()
	svc := &fakeService{
		invoices: []core.Invoice{
			{ID: 1, OwnerID: 1, InvoiceNumber: "1001", ClientName: "Acme Corp",
				InvoiceDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
				Total:       decimal.NewFromInt(205), Status: core.StatusSent},
		},
	}
	handler := web.NewHandler(svc, "", "test-secret")

	// Log in once to obtain a session cookie for authenticated requests.
	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"username":"tester","password":"secret"}`)
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", rec.Code, rec.Body)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == "auth_token" {
			return handler, svc, c
		}
	}
	t.Fatal("login did not set auth_token cookie")
	return nil, nil, nil
}

func TestLogin_BadCredentials(t *testing.T) {
	handler := web.NewHandler(&fakeService{}, "", "test-secret")
	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"username":"tester","password":"nope"}`)
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", body))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestInvoices_RequireAuth(t *testing.T) {
	handler := web.NewHandler(&fakeService{}, "", "test-secret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/invoices", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestListInvoices(t *testing.T) {
	handler, _, cookie := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices?search=Acme&sort=amount", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var result struct {
		Invoices []core.Invoice `json:"invoices"`
		Summary  core.Summary   `json:"summary"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(result.Invoices) != 1 || result.Invoices[0].InvoiceNumber != "1001" {
		t.Errorf("invoices: %+v", result.Invoices)
	}
	if result.Summary.Count != 1 {
		t.Errorf("summary count = %d, want 1", result.Summary.Count)
	}
}

func TestCreateInvoice_ValidationStatus(t *testing.T) {
	handler, _, cookie := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/invoices", strings.NewReader(`{"client_name":""}`))
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422: %s", rec.Code, rec.Body)
	}
	var resp struct {
		Code  string `json:"code"`
		Field string `json:"field"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != "VALIDATION_ERROR" || resp.Field != "client_name" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestCreateInvoice_Created(t *testing.T) {
	handler, _, cookie := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/invoices", strings.NewReader(`{"client_name":"Acme Corp"}`))
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
	}
}

func TestDeleteInvoice(t *testing.T) {
	handler, svc, cookie := newTestServer(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/invoices/1", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if svc.lastDelete != 1 {
		t.Errorf("delete reached service with id %d, want 1", svc.lastDelete)
	}

	// Unknown invoice maps to 404.
	req = httptest.NewRequest(http.MethodDelete, "/api/invoices/42", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestExportInvoice_Headers(t *testing.T) {
	handler, _, cookie := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/1/pdf", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Errorf("content type = %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="Invoice-1001-2024-03-15.pdf"` {
		t.Errorf("disposition = %q", got)
	}
}

func TestNextInvoiceNumber(t *testing.T) {
	handler, _, cookie := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/next-number", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["invoice_number"] != "1002" {
		t.Errorf("next number = %q, want 1002", resp["invoice_number"])
	}
}

func TestHealth(t *testing.T) {
	handler := web.NewHandler(&fakeService{}, "", "test-secret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
