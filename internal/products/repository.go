package products

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	List(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, product Product) (int64, error)
	Update(ctx context.Context, id int64, product Product) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const productColumns = `id, name, description, hsn_code, unit_price, stock_quantity, tax_rate, category, created_at`

func (r *repository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	products, err := pgx.CollectRows(rows, scanProduct)
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}
	return products, nil
}

func (r *repository) Create(ctx context.Context, p Product) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO products (name, description, hsn_code, unit_price, stock_quantity, tax_rate, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		p.Name, p.Description, p.HSNCode, p.UnitPrice, p.StockQuantity, p.TaxRate, p.Category,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, p Product) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE products SET name = $1, description = $2, hsn_code = $3, unit_price = $4,
		stock_quantity = $5, tax_rate = $6, category = $7 WHERE id = $8`,
		p.Name, p.Description, p.HSNCode, p.UnitPrice, p.StockQuantity, p.TaxRate, p.Category, id,
	)
	if err != nil {
		return false, fmt.Errorf("update product %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete product %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanProduct(row pgx.CollectableRow) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.HSNCode, &p.UnitPrice, &p.StockQuantity, &p.TaxRate, &p.Category, &p.CreatedAt)
	return p, err
}
