package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/odyssey-erp/billing/internal/shared"
)

// ErrNotFound means the singleton row is missing, which only happens before
// migrations have run.
var ErrNotFound = shared.NewError(shared.ErrNotFound, "Settings not found")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (CompanySettings, error) {
	cs, ok, err := s.repo.Get(ctx)
	if err != nil {
		return CompanySettings{}, err
	}
	if !ok {
		return CompanySettings{}, fmt.Errorf("get settings: %w", ErrNotFound)
	}
	return cs, nil
}

// Update overwrites the fields present in form and keeps the rest.
func (s *Service) Update(ctx context.Context, form SettingsForm) error {
	if err := shared.Validate(form); err != nil {
		return err
	}
	if strings.TrimSpace(form.CompanyName) == "" {
		return &shared.Error{Kind: shared.ErrValidation, Message: "company_name is required", Fields: map[string]string{"company_name": "required"}}
	}
	current, err := s.Get(ctx)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	next := form.apply(current)
	next.ID = singletonID
	ok, err := s.repo.Update(ctx, next)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("update settings: %w", ErrNotFound)
	}
	return nil
}
