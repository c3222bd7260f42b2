package invoices

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/odyssey-erp/billing/internal/platform/db"
)

// pgPool connects to BILLING_TEST_PG_DSN, migrates it twice and empties the
// invoice tables. Tests using it are skipped when the variable is unset.
func pgPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("BILLING_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("BILLING_TEST_PG_DSN not set")
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, db.Migrate(dsn, logger))
	require.NoError(t, db.Migrate(dsn, logger))

	ctx := context.Background()
	pool, err := db.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	_, err = pool.Exec(ctx, `TRUNCATE invoice_items, invoices, products, clients RESTART IDENTITY`)
	require.NoError(t, err)
	return pool
}

func TestPostgresCreateAndRollback(t *testing.T) {
	pool := pgPool(t)
	ctx := context.Background()
	_, err := pool.Exec(ctx, `INSERT INTO clients (name, state) VALUES ('Acme Traders', 'Karnataka')`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO products (name, unit_price, stock_quantity) VALUES ('Widget', 100, 10)`)
	require.NoError(t, err)

	svc := NewService(NewRepository(pool), nil, nil)

	created, err := svc.Create(ctx, validRequest(line("Widget", int64p(1), "3")))
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", created.InvoiceNumber)

	var stock int64
	require.NoError(t, pool.QueryRow(ctx, `SELECT stock_quantity FROM products WHERE id = 1`).Scan(&stock))
	assert.Equal(t, int64(7), stock)

	detail, items, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.ClientName)
	assert.Equal(t, "Acme Traders", *detail.ClientName)
	assert.Equal(t, "2024-01-15", detail.InvoiceDate)
	assert.Equal(t, DefaultStatus, detail.Status)
	assert.Nil(t, detail.DueDate)
	require.Len(t, items, 1)
	assert.True(t, items[0].Quantity.Equal(dec("3")))

	_, err = svc.Create(ctx, validRequest(line("Widget", int64p(1), "1"), line("Ghost", int64p(99), "1")))
	require.ErrorIs(t, err, ErrProductNotFound)
	require.NoError(t, pool.QueryRow(ctx, `SELECT stock_quantity FROM products WHERE id = 1`).Scan(&stock))
	assert.Equal(t, int64(7), stock, "failed creation must not touch stock")

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	next, err := svc.PeekNextNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-0002", next)

	dup := validRequest()
	dup.InvoiceNumber = "INV-0001"
	_, err = svc.Create(ctx, dup)
	require.ErrorIs(t, err, ErrDuplicateInvoiceNumber)

	require.NoError(t, svc.Delete(ctx, created.ID))
	require.ErrorIs(t, svc.Delete(ctx, created.ID), ErrNotFound)
}

func TestPostgresConcurrentCreationsShareStock(t *testing.T) {
	pool := pgPool(t)
	ctx := context.Background()
	_, err := pool.Exec(ctx, `INSERT INTO clients (name) VALUES ('Acme Traders')`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO products (name, unit_price, stock_quantity) VALUES ('Widget', 100, 50)`)
	require.NoError(t, err)

	svc := NewService(NewRepository(pool), nil, nil)
	const writers = 8

	var g errgroup.Group
	for i := 0; i < writers; i++ {
		g.Go(func() error {
			req := validRequest(line("Widget", int64p(1), "2"))
			req.InvoiceNumber = fmt.Sprintf("PAR-%d", i)
			_, err := svc.Create(ctx, req)
			return err
		})
		g.Go(func() error {
			_, err := pool.Exec(ctx, `UPDATE products SET unit_price = unit_price + 1 WHERE id = 1`)
			return err
		})
	}
	require.NoError(t, g.Wait())

	var stock int64
	require.NoError(t, pool.QueryRow(ctx, `SELECT stock_quantity FROM products WHERE id = 1`).Scan(&stock))
	assert.Equal(t, int64(50-2*writers), stock)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, writers)
}
