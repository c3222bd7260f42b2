package clients

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	List(ctx context.Context) ([]Client, error)
	Create(ctx context.Context, client Client) (int64, error)
	Update(ctx context.Context, id int64, client Client) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const clientColumns = `id, name, email, phone, address, city, state, pincode, gstin, created_at`

func (r *repository) List(ctx context.Context) ([]Client, error) {
	rows, err := r.db.Query(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	clients, err := pgx.CollectRows(rows, scanClient)
	if err != nil {
		return nil, fmt.Errorf("scan clients: %w", err)
	}
	return clients, nil
}

func (r *repository) Create(ctx context.Context, c Client) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO clients (name, email, phone, address, city, state, pincode, gstin)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		c.Name, c.Email, c.Phone, c.Address, c.City, c.State, c.Pincode, c.GSTIN,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert client: %w", err)
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, c Client) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE clients SET name = $1, email = $2, phone = $3, address = $4, city = $5,
		state = $6, pincode = $7, gstin = $8 WHERE id = $9`,
		c.Name, c.Email, c.Phone, c.Address, c.City, c.State, c.Pincode, c.GSTIN, id,
	)
	if err != nil {
		return false, fmt.Errorf("update client %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete client %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanClient(row pgx.CollectableRow) (Client, error) {
	var c Client
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.City, &c.State, &c.Pincode, &c.GSTIN, &c.CreatedAt)
	return c, err
}
