package products

import (
	"context"
	"fmt"

	"github.com/odyssey-erp/billing/internal/shared"
)

// ErrNotFound indicates the product id does not exist.
var ErrNotFound = shared.NewError(shared.ErrNotFound, "Product not found")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every product ordered by name.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}

func (s *Service) Create(ctx context.Context, form ProductForm) (int64, error) {
	if err := s.validate(form); err != nil {
		return 0, err
	}
	return s.repo.Create(ctx, form.toProduct())
}

// Update replaces every field of the product; absent optional fields reset to
// their defaults.
func (s *Service) Update(ctx context.Context, id int64, form ProductForm) error {
	if err := s.validate(form); err != nil {
		return err
	}
	ok, err := s.repo.Update(ctx, id, form.toProduct())
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("update product %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes the product. Invoice items that reference it keep the id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("delete product %d: %w", id, ErrNotFound)
	}
	return nil
}
