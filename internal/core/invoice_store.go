package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InvoiceStore is the storage collaborator. The engine treats every call as
// an atomic request/response: a failed call propagates as-is and leaves
// in-memory state unchanged.
type InvoiceStore interface {
	// ListInvoices returns the owner's invoices newest-first with their line
	// items attached. Statuses are not populated; derive them at read time.
	ListInvoices(ctx context.Context, ownerID int) ([]Invoice, error)

	// GetInvoice returns a single invoice with items, or ErrNotFound.
	GetInvoice(ctx context.Context, ownerID, id int) (*Invoice, error)

	// FindMaxInvoiceNumber returns the stored invoice number with the greatest
	// numeric value for the owner. ok is false when the owner has no invoices.
	// Non-numeric numbers rank below numeric ones; interpreting them is the
	// sequencer's concern.
	FindMaxInvoiceNumber(ctx context.Context, ownerID int) (raw string, ok bool, err error)

	// SaveInvoice persists a finalized invoice and its items in one
	// transaction, setting inv.ID and inv.CreatedAt on success.
	SaveInvoice(ctx context.Context, inv *Invoice) error

	// DeleteInvoice removes an invoice and its items. Returns ErrNotFound when
	// no matching record exists for the owner.
	DeleteInvoice(ctx context.Context, ownerID, id int) error
}

type pgInvoiceStore struct {
	pool *pgxpool.Pool
}

// NewInvoiceStore constructs an InvoiceStore backed by PostgreSQL.
func NewInvoiceStore(pool *pgxpool.Pool) InvoiceStore {
	return &pgInvoiceStore{pool: pool}
}

const invoiceColumns = `
	id, owner_id, invoice_number,
	client_name, client_email, client_phone, client_address,
	company_name, company_email, company_phone, company_address,
	invoice_date, due_date,
	tax_kind, tax_value, discount_kind, discount_value,
	subtotal, total, created_at`

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	var tax, discount AdjustmentRule
	err := row.Scan(
		&inv.ID, &inv.OwnerID, &inv.InvoiceNumber,
		&inv.ClientName, &inv.ClientEmail, &inv.ClientPhone, &inv.ClientAddress,
		&inv.CompanyName, &inv.CompanyEmail, &inv.CompanyPhone, &inv.CompanyAddress,
		&inv.InvoiceDate, &inv.DueDate,
		&tax.Kind, &tax.Value, &discount.Kind, &discount.Value,
		&inv.Subtotal, &inv.Total, &inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.TaxRule = &tax
	inv.DiscountRule = &discount
	return &inv, nil
}

func (s *pgInvoiceStore) ListInvoices(ctx context.Context, ownerID int) ([]Invoice, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM invoices
		WHERE owner_id = $1
		ORDER BY invoice_date DESC, created_at DESC, id DESC
	`, invoiceColumns), ownerID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []Invoice
	var ids []int
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, *inv)
		ids = append(ids, inv.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}
	if len(invoices) == 0 {
		return invoices, nil
	}

	items, err := s.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		invoices[i].Items = items[invoices[i].ID]
	}
	return invoices, nil
}

func (s *pgInvoiceStore) GetInvoice(ctx context.Context, ownerID, id int) (*Invoice, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM invoices
		WHERE owner_id = $1 AND id = $2
	`, invoiceColumns), ownerID, id)

	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get invoice %d: %w", id, err)
	}

	items, err := s.loadItems(ctx, []int{inv.ID})
	if err != nil {
		return nil, err
	}
	inv.Items = items[inv.ID]
	return inv, nil
}

// loadItems fetches line items for the given invoice IDs, keyed by invoice,
// each list in stored position order.
func (s *pgInvoiceStore) loadItems(ctx context.Context, invoiceIDs []int) (map[int][]LineItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT invoice_id, position, description, quantity, unit_price
		FROM invoice_items
		WHERE invoice_id = ANY($1)
		ORDER BY invoice_id, position
	`, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("load invoice items: %w", err)
	}
	defer rows.Close()

	items := make(map[int][]LineItem)
	for rows.Next() {
		var invoiceID int
		var item LineItem
		if err := rows.Scan(&invoiceID, &item.ID, &item.Description, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		items[invoiceID] = append(items[invoiceID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoice items: %w", err)
	}
	return items, nil
}

func (s *pgInvoiceStore) FindMaxInvoiceNumber(ctx context.Context, ownerID int) (string, bool, error) {
	var number string
	err := s.pool.QueryRow(ctx, `
		SELECT invoice_number FROM invoices
		WHERE owner_id = $1
		ORDER BY (CASE WHEN invoice_number ~ '^[0-9]+$' THEN invoice_number::bigint END) DESC NULLS LAST,
		         invoice_number DESC
		LIMIT 1
	`, ownerID).Scan(&number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("find max invoice number: %w", err)
	}
	return number, true, nil
}

func (s *pgInvoiceStore) SaveInvoice(ctx context.Context, inv *Invoice) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tax := inv.TaxRule
	if tax == nil {
		tax = &AdjustmentRule{Kind: AdjustmentPercentage}
	}
	discount := inv.DiscountRule
	if discount == nil {
		discount = &AdjustmentRule{Kind: AdjustmentPercentage}
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO invoices (
			owner_id, invoice_number,
			client_name, client_email, client_phone, client_address,
			company_name, company_email, company_phone, company_address,
			invoice_date, due_date,
			tax_kind, tax_value, discount_kind, discount_value,
			subtotal, total
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at
	`,
		inv.OwnerID, inv.InvoiceNumber,
		inv.ClientName, inv.ClientEmail, inv.ClientPhone, inv.ClientAddress,
		inv.CompanyName, inv.CompanyEmail, inv.CompanyPhone, inv.CompanyAddress,
		inv.InvoiceDate, inv.DueDate,
		string(tax.Kind), tax.Value, string(discount.Kind), discount.Value,
		inv.Subtotal, inv.Total,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}

	for _, item := range inv.Items {
		_, err := tx.Exec(ctx, `
			INSERT INTO invoice_items (invoice_id, position, description, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)
		`, inv.ID, item.ID, item.Description, item.Quantity, item.UnitPrice)
		if err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save transaction: %w", err)
	}
	return nil
}

func (s *pgInvoiceStore) DeleteInvoice(ctx context.Context, ownerID, id int) error {
	// invoice_items rows go with the invoice via ON DELETE CASCADE.
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM invoices WHERE owner_id = $1 AND id = $2
	`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete invoice %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
