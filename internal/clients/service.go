package clients

import (
	"context"
	"fmt"
	"strings"

	"github.com/odyssey-erp/billing/internal/shared"
)

// ErrNotFound indicates the client id does not exist.
var ErrNotFound = shared.NewError(shared.ErrNotFound, "Client not found")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Client, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if clients == nil {
		clients = []Client{}
	}
	return clients, nil
}

func (s *Service) Create(ctx context.Context, form ClientForm) (int64, error) {
	if err := validate(form); err != nil {
		return 0, err
	}
	return s.repo.Create(ctx, form.toClient())
}

func (s *Service) Update(ctx context.Context, id int64, form ClientForm) error {
	if err := validate(form); err != nil {
		return err
	}
	ok, err := s.repo.Update(ctx, id, form.toClient())
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("update client %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes the client. Invoices keep the now dangling client id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("delete client %d: %w", id, ErrNotFound)
	}
	return nil
}

func validate(f ClientForm) error {
	if err := shared.Validate(f); err != nil {
		return err
	}
	if strings.TrimSpace(f.Name) == "" {
		return &shared.Error{Kind: shared.ErrValidation, Message: "name is required", Fields: map[string]string{"name": "required"}}
	}
	return nil
}
