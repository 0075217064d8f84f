package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"invoicely/m/domain"
)

// Invoices persists invoice headers and their line items. Every query
// is scoped by owner id as well as invoice id, so one authenticated
// identity can only ever see its own records.
type Invoices struct{ db *sqlx.DB }

func NewInvoices(db *sqlx.DB) *Invoices { return &Invoices{db: db} }

const invoiceColumns = `id, user_id, invoice_number, invoice_date, due_date,
    company_name, company_address, company_email, company_phone,
    client_name, client_address, client_email, client_phone,
    subtotal, tax_rate, tax_amount, total_amount, notes, status,
    created_at, updated_at`

// List returns the caller's invoices newest first, each with an
// aggregated item count. Item rows are never loaded here.
func (r *Invoices) List(ctx context.Context, userID int64) ([]domain.InvoiceSummary, error) {
	query := fmt.Sprintf(`SELECT %s, (
            SELECT COUNT(*) FROM invoice_items ii WHERE ii.invoice_id = i.id
        ) AS item_count
        FROM invoices i
        WHERE user_id = $1
        ORDER BY created_at DESC, id DESC`, prefixColumns("i", invoiceColumns))

	summaries := []domain.InvoiceSummary{}
	if err := r.db.SelectContext(ctx, &summaries, query, userID); err != nil {
		return nil, err
	}
	return summaries, nil
}

// Get loads one invoice with its items in insertion order. A missing
// invoice and a foreign-owned one are indistinguishable to the caller.
func (r *Invoices) Get(ctx context.Context, userID, invoiceID int64) (domain.InvoiceWithItems, error) {
	var result domain.InvoiceWithItems
	err := r.db.GetContext(ctx, &result.Invoice,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 AND user_id = $2`,
		invoiceID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return result, domain.ErrNotFound
	}
	if err != nil {
		return result, err
	}

	result.Items = []domain.InvoiceItem{}
	err = r.db.SelectContext(ctx, &result.Items,
		`SELECT id, invoice_id, description, quantity, price, total
         FROM invoice_items WHERE invoice_id = $1 ORDER BY id`, invoiceID)
	if err != nil {
		return result, err
	}
	return result, nil
}

// Create inserts the header and each item inside one transaction; any
// failure rolls the whole invoice back.
func (r *Invoices) Create(ctx context.Context, userID int64, in domain.InvoiceInput) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var invoiceID int64
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO invoices (
            user_id, invoice_number, invoice_date, due_date,
            company_name, company_address, company_email, company_phone,
            client_name, client_address, client_email, client_phone,
            subtotal, tax_rate, tax_amount, total_amount, notes, status
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
        RETURNING id`,
		userID, in.InvoiceNumber, in.InvoiceDate, in.DueDate,
		in.CompanyName, in.CompanyAddress, in.CompanyEmail, in.CompanyPhone,
		in.ClientName, in.ClientAddress, in.ClientEmail, in.ClientPhone,
		in.Subtotal, in.TaxRate, in.TaxAmount, in.TotalAmount, in.Notes, statusOrDraft(in.Status)).Scan(&invoiceID)
	if err != nil {
		return 0, err
	}

	if err := insertItems(ctx, tx, invoiceID, in.Items); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return invoiceID, nil
}

// Update overwrites the header and replaces the full item set
// (delete-all, insert-new) in one transaction. Ownership is verified
// first; a mid-insert failure leaves the pre-update state intact.
func (r *Invoices) Update(ctx context.Context, userID, invoiceID int64, in domain.InvoiceInput) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var owned int64
	err = tx.GetContext(ctx, &owned,
		`SELECT id FROM invoices WHERE id = $1 AND user_id = $2`, invoiceID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE invoices SET
            invoice_number = $1, invoice_date = $2, due_date = $3,
            company_name = $4, company_address = $5, company_email = $6, company_phone = $7,
            client_name = $8, client_address = $9, client_email = $10, client_phone = $11,
            subtotal = $12, tax_rate = $13, tax_amount = $14, total_amount = $15,
            notes = $16, status = $17, updated_at = CURRENT_TIMESTAMP
        WHERE id = $18`,
		in.InvoiceNumber, in.InvoiceDate, in.DueDate,
		in.CompanyName, in.CompanyAddress, in.CompanyEmail, in.CompanyPhone,
		in.ClientName, in.ClientAddress, in.ClientEmail, in.ClientPhone,
		in.Subtotal, in.TaxRate, in.TaxAmount, in.TotalAmount,
		in.Notes, statusOrDraft(in.Status), invoiceID)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID); err != nil {
		return err
	}

	if err := insertItems(ctx, tx, invoiceID, in.Items); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes the invoice row scoped by owner; items go with it via
// the cascading foreign key.
func (r *Invoices) Delete(ctx context.Context, userID, invoiceID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM invoices WHERE id = $1 AND user_id = $2`, invoiceID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func insertItems(ctx context.Context, tx *sqlx.Tx, invoiceID int64, items []domain.ItemInput) error {
	for _, item := range items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO invoice_items (invoice_id, description, quantity, price, total)
             VALUES ($1, $2, $3, $4, $5)`,
			invoiceID, item.Description, item.Quantity, item.Price, item.Total)
		if err != nil {
			return err
		}
	}
	return nil
}

func statusOrDraft(status string) string {
	if strings.TrimSpace(status) == "" {
		return "draft"
	}
	return status
}

func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, part := range parts {
		parts[i] = alias + "." + strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}
