package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// singletonID is the only id the company_settings table accepts.
const singletonID = 1

type Repository interface {
	Get(ctx context.Context) (CompanySettings, bool, error)
	Update(ctx context.Context, s CompanySettings) (bool, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context) (CompanySettings, bool, error) {
	var s CompanySettings
	err := r.db.QueryRow(ctx, `SELECT id, company_name, address, city, state, pincode, gstin, phone, email,
		logo_path, terms_and_conditions, banking_details FROM company_settings WHERE id = $1`, singletonID,
	).Scan(&s.ID, &s.CompanyName, &s.Address, &s.City, &s.State, &s.Pincode, &s.GSTIN, &s.Phone, &s.Email,
		&s.LogoPath, &s.TermsAndConditions, &s.BankingDetails)
	if errors.Is(err, pgx.ErrNoRows) {
		return CompanySettings{}, false, nil
	}
	if err != nil {
		return CompanySettings{}, false, fmt.Errorf("select company settings: %w", err)
	}
	return s, true, nil
}

func (r *repository) Update(ctx context.Context, s CompanySettings) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE company_settings SET company_name = $1, address = $2, city = $3, state = $4,
		pincode = $5, gstin = $6, phone = $7, email = $8, logo_path = $9, terms_and_conditions = $10,
		banking_details = $11 WHERE id = $12`,
		s.CompanyName, s.Address, s.City, s.State, s.Pincode, s.GSTIN, s.Phone, s.Email, s.LogoPath,
		s.TermsAndConditions, s.BankingDetails, singletonID,
	)
	if err != nil {
		return false, fmt.Errorf("update company settings: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
