package invoices

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/odyssey-erp/billing/internal/platform/lock"
	"github.com/odyssey-erp/billing/internal/shared"
)

var (
	// ErrNotFound indicates the invoice id does not exist.
	ErrNotFound = shared.NewError(shared.ErrNotFound, "Invoice not found")
	// ErrDuplicateInvoiceNumber indicates the number is already taken.
	ErrDuplicateInvoiceNumber = shared.NewError(shared.ErrConflict, "invoice_number already exists")
	// ErrConcurrentUpdate indicates the transaction lost a race with another
	// writer and can be retried as is.
	ErrConcurrentUpdate = shared.NewError(shared.ErrConflict, "invoice conflicted with a concurrent update; please retry")
	// ErrProductNotFound indicates an item references a product id that does not exist.
	ErrProductNotFound = shared.NewError(shared.ErrUnprocessable, "item references a product that does not exist")
)

// RepositoryPort abstracts repository usage for service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	List(ctx context.Context) ([]Summary, error)
	Get(ctx context.Context, id int64) (Detail, bool, error)
	Items(ctx context.Context, invoiceID int64) ([]Item, error)
	LastInvoiceNumber(ctx context.Context) (string, bool, error)
}

// Locker serializes invoice numbering across processes.
type Locker interface {
	Acquire(ctx context.Context, key string) (lock.Release, error)
}

// Service coordinates invoice operations.
type Service struct {
	repo   RepositoryPort
	locker Locker
	logger *slog.Logger
}

// NewService builds Service. locker may be nil, in which case concurrent
// auto-numbered creations can race and the loser fails with
// ErrDuplicateInvoiceNumber.
func NewService(repo RepositoryPort, locker Locker, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, locker: locker, logger: logger}
}

// Create stores the header, its items and the matching stock decrements as
// one unit of work. Caller-supplied totals are stored as given.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Created, error) {
	req.normalize()
	if err := shared.Validate(req); err != nil {
		return Created{}, err
	}
	if err := req.checkRange(); err != nil {
		return Created{}, err
	}
	header := req.header()

	if header.InvoiceNumber == "" && s.locker != nil {
		release, err := s.locker.Acquire(ctx, shared.InvoiceNumberLockKey)
		if err != nil {
			return Created{}, fmt.Errorf("create invoice: %w", err)
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				s.logger.Warn("release invoice number lock", slog.Any("error", err))
			}
		}()
	}

	var created Created
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if header.InvoiceNumber == "" {
			last, ok, err := tx.LastInvoiceNumber(ctx)
			if err != nil {
				return err
			}
			if header.InvoiceNumber, err = NextInvoiceNumber(last, ok); err != nil {
				return err
			}
		}

		id, err := tx.InsertInvoice(ctx, header)
		if err != nil {
			return err
		}

		for i, line := range req.Items {
			item := line.item(id)
			if _, err := tx.InsertItem(ctx, item); err != nil {
				return fmt.Errorf("item %d: %w", i+1, err)
			}
			if item.ProductID == nil {
				continue
			}
			ok, err := tx.DecrementStock(ctx, *item.ProductID, item.Quantity)
			if err != nil {
				return fmt.Errorf("item %d: %w", i+1, err)
			}
			if !ok {
				return fmt.Errorf("item %d product %d: %w", i+1, *item.ProductID, ErrProductNotFound)
			}
		}

		created = Created{ID: id, InvoiceNumber: header.InvoiceNumber}
		return nil
	})
	if err != nil {
		return Created{}, fmt.Errorf("create invoice: %w", err)
	}
	return created, nil
}

// List returns every invoice with its client name, newest first.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Summary{}
	}
	return out, nil
}

// Get returns the invoice and its items.
func (s *Service) Get(ctx context.Context, id int64) (Detail, []Item, error) {
	d, err := s.Header(ctx, id)
	if err != nil {
		return Detail{}, nil, err
	}
	items, err := s.Items(ctx, id)
	if err != nil {
		return Detail{}, nil, err
	}
	return d, items, nil
}

// Header loads only the invoice with its client columns.
func (s *Service) Header(ctx context.Context, id int64) (Detail, error) {
	d, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	if !ok {
		return Detail{}, fmt.Errorf("get invoice %d: %w", id, ErrNotFound)
	}
	return d, nil
}

// Items loads an invoice's lines in insertion order.
func (s *Service) Items(ctx context.Context, id int64) ([]Item, error) {
	items, err := s.repo.Items(ctx, id)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// Delete removes the invoice's items and then the invoice in one transaction.
// Stock consumed by the items is not restored.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if _, err := tx.DeleteItems(ctx, id); err != nil {
			return err
		}
		ok, err := tx.DeleteInvoice(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete invoice %d: %w", id, err)
	}
	return nil
}

// PeekNextNumber previews the number an auto-numbered creation would get now.
// The value is not reserved. A malformed latest number yields "".
func (s *Service) PeekNextNumber(ctx context.Context) (string, error) {
	last, ok, err := s.repo.LastInvoiceNumber(ctx)
	if err != nil {
		return "", err
	}
	next, err := NextInvoiceNumber(last, ok)
	if errors.Is(err, ErrMalformedInvoiceNumber) {
		return "", nil
	}
	return next, err
}
