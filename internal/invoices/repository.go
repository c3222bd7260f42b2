package invoices

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/billing/internal/platform/db"
)

const invoiceNumberConstraint = "invoices_invoice_number_key"

// Repository persists invoices in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TxRepository exposes the operations the creation and deletion units of work
// run inside one transaction.
type TxRepository interface {
	LastInvoiceNumber(ctx context.Context) (string, bool, error)
	InsertInvoice(ctx context.Context, inv Invoice) (int64, error)
	InsertItem(ctx context.Context, item Item) (int64, error)
	DecrementStock(ctx context.Context, productID int64, qty decimal.Decimal) (bool, error)
	DeleteItems(ctx context.Context, invoiceID int64) (int64, error)
	DeleteInvoice(ctx context.Context, id int64) (bool, error)
}

type txRepo struct {
	tx pgx.Tx
}

// WithTx executes the callback inside a read-committed transaction.
// Serialization failures and deadlocks surface as ErrConcurrentUpdate.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepo{tx: tx})
	})
	if db.IsRetryable(err) {
		return fmt.Errorf("%w: %w", ErrConcurrentUpdate, err)
	}
	return err
}

const summaryQuery = `SELECT i.id, i.invoice_number, i.client_id, i.invoice_date::text, i.due_date::text,
	i.subtotal, i.total_tax, i.grand_total, i.status, i.mode_of_transport, i.notes, i.created_at, c.name
	FROM invoices i LEFT JOIN clients c ON c.id = i.client_id`

// List returns every invoice with its client name, newest first.
func (r *Repository) List(ctx context.Context) ([]Summary, error) {
	rows, err := r.pool.Query(ctx, summaryQuery+` ORDER BY i.created_at DESC, i.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	out, err := pgx.CollectRows(rows, ScanSummary)
	if err != nil {
		return nil, fmt.Errorf("scan invoices: %w", err)
	}
	return out, nil
}

// ScanSummary scans one row produced by a summary-shaped query.
func ScanSummary(row pgx.CollectableRow) (Summary, error) {
	var s Summary
	err := row.Scan(&s.ID, &s.InvoiceNumber, &s.ClientID, &s.InvoiceDate, &s.DueDate,
		&s.Subtotal, &s.TotalTax, &s.GrandTotal, &s.Status, &s.ModeOfTransport, &s.Notes, &s.CreatedAt, &s.ClientName)
	return s, err
}

// Get loads one invoice with its client's columns.
func (r *Repository) Get(ctx context.Context, id int64) (Detail, bool, error) {
	var d Detail
	err := r.pool.QueryRow(ctx, `SELECT i.id, i.invoice_number, i.client_id, i.invoice_date::text, i.due_date::text,
		i.subtotal, i.total_tax, i.grand_total, i.status, i.mode_of_transport, i.notes, i.created_at,
		c.name, c.email, c.phone, c.address, c.city, c.state, c.pincode, c.gstin
		FROM invoices i LEFT JOIN clients c ON c.id = i.client_id WHERE i.id = $1`, id,
	).Scan(&d.ID, &d.InvoiceNumber, &d.ClientID, &d.InvoiceDate, &d.DueDate,
		&d.Subtotal, &d.TotalTax, &d.GrandTotal, &d.Status, &d.ModeOfTransport, &d.Notes, &d.CreatedAt,
		&d.ClientName, &d.ClientEmail, &d.ClientPhone, &d.ClientAddress, &d.ClientCity, &d.ClientState,
		&d.ClientPincode, &d.ClientGSTIN)
	if errors.Is(err, pgx.ErrNoRows) {
		return Detail{}, false, nil
	}
	if err != nil {
		return Detail{}, false, fmt.Errorf("select invoice %d: %w", id, err)
	}
	return d, true, nil
}

// Items returns an invoice's lines in insertion order.
func (r *Repository) Items(ctx context.Context, invoiceID int64) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, invoice_id, product_id, description, hsn_code, quantity, rate, tax_rate, amount
		FROM invoice_items WHERE invoice_id = $1 ORDER BY id`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("query items of invoice %d: %w", invoiceID, err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Item, error) {
		var it Item
		err := row.Scan(&it.ID, &it.InvoiceID, &it.ProductID, &it.Description, &it.HSNCode,
			&it.Quantity, &it.Rate, &it.TaxRate, &it.Amount)
		return it, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan items of invoice %d: %w", invoiceID, err)
	}
	return items, nil
}

// LastInvoiceNumber reads the number of the most recently inserted invoice
// outside any transaction. It only serves previews.
func (r *Repository) LastInvoiceNumber(ctx context.Context) (string, bool, error) {
	return lastInvoiceNumber(ctx, r.pool.QueryRow)
}

func lastInvoiceNumber(ctx context.Context, queryRow func(context.Context, string, ...any) pgx.Row) (string, bool, error) {
	var number string
	err := queryRow(ctx, `SELECT invoice_number FROM invoices ORDER BY id DESC LIMIT 1`).Scan(&number)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select last invoice number: %w", err)
	}
	return number, true, nil
}

func (t *txRepo) LastInvoiceNumber(ctx context.Context) (string, bool, error) {
	return lastInvoiceNumber(ctx, t.tx.QueryRow)
}

func (t *txRepo) InsertInvoice(ctx context.Context, inv Invoice) (int64, error) {
	invoiceDate, err := time.Parse(dateLayout, inv.InvoiceDate)
	if err != nil {
		return 0, fmt.Errorf("parse invoice_date: %w", err)
	}
	var dueDate *time.Time
	if inv.DueDate != nil {
		d, err := time.Parse(dateLayout, *inv.DueDate)
		if err != nil {
			return 0, fmt.Errorf("parse due_date: %w", err)
		}
		dueDate = &d
	}

	var id int64
	err = t.tx.QueryRow(ctx, `INSERT INTO invoices (invoice_number, client_id, invoice_date, due_date, subtotal,
		total_tax, grand_total, status, mode_of_transport, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		inv.InvoiceNumber, inv.ClientID, invoiceDate, dueDate, inv.Subtotal, inv.TotalTax, inv.GrandTotal,
		inv.Status, inv.ModeOfTransport, inv.Notes,
	).Scan(&id)
	if db.IsUniqueViolation(err, invoiceNumberConstraint) {
		return 0, fmt.Errorf("insert invoice %s: %w", inv.InvoiceNumber, ErrDuplicateInvoiceNumber)
	}
	if err != nil {
		return 0, fmt.Errorf("insert invoice %s: %w", inv.InvoiceNumber, err)
	}
	return id, nil
}

func (t *txRepo) InsertItem(ctx context.Context, it Item) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx, `INSERT INTO invoice_items (invoice_id, product_id, description, hsn_code, quantity,
		rate, tax_rate, amount) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		it.InvoiceID, it.ProductID, it.Description, it.HSNCode, it.Quantity, it.Rate, it.TaxRate, it.Amount,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert item for invoice %d: %w", it.InvoiceID, err)
	}
	return id, nil
}

// DecrementStock subtracts qty, rounded to a whole unit, from the product's
// stock with no lower bound. It reports false when the product does not exist.
func (t *txRepo) DecrementStock(ctx context.Context, productID int64, qty decimal.Decimal) (bool, error) {
	tag, err := t.tx.Exec(ctx, `UPDATE products SET stock_quantity = stock_quantity - ROUND($1::numeric)::integer
		WHERE id = $2`, qty, productID)
	if err != nil {
		return false, fmt.Errorf("decrement stock of product %d: %w", productID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (t *txRepo) DeleteItems(ctx context.Context, invoiceID int64) (int64, error) {
	tag, err := t.tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return 0, fmt.Errorf("delete items of invoice %d: %w", invoiceID, err)
	}
	return tag.RowsAffected(), nil
}

func (t *txRepo) DeleteInvoice(ctx context.Context, id int64) (bool, error) {
	tag, err := t.tx.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete invoice %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
