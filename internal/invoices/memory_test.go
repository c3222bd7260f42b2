package invoices

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type memoryState struct {
	invoices      []Invoice
	items         []Item
	stock         map[int64]int64
	nextInvoiceID int64
	nextItemID    int64
}

func (s memoryState) clone() memoryState {
	out := s
	out.invoices = append([]Invoice(nil), s.invoices...)
	out.items = append([]Item(nil), s.items...)
	out.stock = make(map[int64]int64, len(s.stock))
	for k, v := range s.stock {
		out.stock[k] = v
	}
	return out
}

// memoryRepo commits a transaction's working copy only when fn succeeds, so
// tests observe the same all-or-nothing behaviour as PostgreSQL.
type memoryRepo struct {
	mu         sync.Mutex
	state      memoryState
	clients    map[int64]string
	failOnItem string
	commits    int
	rollbacks  int
}

var errInjected = errors.New("injected item failure")

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		state:   memoryState{stock: map[int64]int64{}},
		clients: map[int64]string{},
	}
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	working := r.state.clone()
	if err := fn(ctx, &memoryTx{repo: r, s: &working}); err != nil {
		r.rollbacks++
		return err
	}
	r.state = working
	r.commits++
	return nil
}

func (r *memoryRepo) List(ctx context.Context) ([]Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Summary
	for _, inv := range r.state.invoices {
		out = append(out, Summary{Invoice: inv, ClientName: r.clientName(inv.ClientID)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Detail, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.state.invoices {
		if inv.ID == id {
			return Detail{Invoice: inv, ClientName: r.clientName(inv.ClientID)}, true, nil
		}
	}
	return Detail{}, false, nil
}

func (r *memoryRepo) Items(ctx context.Context, invoiceID int64) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Item
	for _, it := range r.state.items {
		if it.InvoiceID == invoiceID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memoryRepo) LastInvoiceNumber(ctx context.Context) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lastNumber(r.state)
}

func (r *memoryRepo) clientName(id *int64) *string {
	if id == nil {
		return nil
	}
	name, ok := r.clients[*id]
	if !ok {
		return nil
	}
	return &name
}

func lastNumber(s memoryState) (string, bool, error) {
	if len(s.invoices) == 0 {
		return "", false, nil
	}
	return s.invoices[len(s.invoices)-1].InvoiceNumber, true, nil
}

type memoryTx struct {
	repo *memoryRepo
	s    *memoryState
}

func (t *memoryTx) LastInvoiceNumber(ctx context.Context) (string, bool, error) {
	return lastNumber(*t.s)
}

func (t *memoryTx) InsertInvoice(ctx context.Context, inv Invoice) (int64, error) {
	for _, existing := range t.s.invoices {
		if existing.InvoiceNumber == inv.InvoiceNumber {
			return 0, ErrDuplicateInvoiceNumber
		}
	}
	t.s.nextInvoiceID++
	inv.ID = t.s.nextInvoiceID
	inv.CreatedAt = time.Now()
	t.s.invoices = append(t.s.invoices, inv)
	return inv.ID, nil
}

func (t *memoryTx) InsertItem(ctx context.Context, it Item) (int64, error) {
	if t.repo.failOnItem != "" && it.Description == t.repo.failOnItem {
		return 0, errInjected
	}
	t.s.nextItemID++
	it.ID = t.s.nextItemID
	t.s.items = append(t.s.items, it)
	return it.ID, nil
}

func (t *memoryTx) DecrementStock(ctx context.Context, productID int64, qty decimal.Decimal) (bool, error) {
	stock, ok := t.s.stock[productID]
	if !ok {
		return false, nil
	}
	t.s.stock[productID] = stock - qty.Round(0).IntPart()
	return true, nil
}

func (t *memoryTx) DeleteItems(ctx context.Context, invoiceID int64) (int64, error) {
	kept := t.s.items[:0]
	var n int64
	for _, it := range t.s.items {
		if it.InvoiceID == invoiceID {
			n++
			continue
		}
		kept = append(kept, it)
	}
	t.s.items = kept
	return n, nil
}

func (t *memoryTx) DeleteInvoice(ctx context.Context, id int64) (bool, error) {
	for i, inv := range t.s.invoices {
		if inv.ID == id {
			t.s.invoices = append(t.s.invoices[:i], t.s.invoices[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
