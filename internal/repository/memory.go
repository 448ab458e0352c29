package repository

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"pharmacy/internal/domain"
)

// table is one id-keyed collection with its own sequence.
type table[T any] struct {
	next int64
	rows map[int64]T
}

func newTable[T any]() *table[T] {
	return &table[T]{next: 1, rows: make(map[int64]T)}
}

func (t *table[T]) nextID() int64 {
	id := t.next
	t.next++
	return id
}

// all returns rows ordered by id.
func (t *table[T]) all() []T {
	out := make([]T, 0, len(t.rows))
	for _, id := range slices.Sorted(maps.Keys(t.rows)) {
		out = append(out, t.rows[id])
	}
	return out
}

// MemoryStore is the backend stand-in's whole database.
type MemoryStore struct {
	mu        sync.RWMutex
	drugs     *table[domain.Drug]
	accounts  *table[domain.Account]
	employees *table[domain.Employee]
	suppliers *table[domain.Supplier]
	sales     *table[domain.Sale]
	tokens    map[string]int64
	now       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		drugs:     newTable[domain.Drug](),
		accounts:  newTable[domain.Account](),
		employees: newTable[domain.Employee](),
		suppliers: newTable[domain.Supplier](),
		sales:     newTable[domain.Sale](),
		tokens:    make(map[string]int64),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// transaction-aware locking helpers
type txKey struct{}

func isTx(ctx context.Context) bool {
	v := ctx.Value(txKey{})
	if v == nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Lock()
	}
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Unlock()
	}
}

var (
	_ DrugRepository     = (*MemoryStore)(nil)
	_ AccountRepository  = (*MemoryStore)(nil)
	_ TokenRepository    = (*MemoryStore)(nil)
	_ EmployeeRepository = (*MemoryStore)(nil)
	_ SupplierRepository = (*MemoryStore)(nil)
	_ SaleRepository     = (*MemoryStore)(nil)
)

// Drugs

func withAvailability(d domain.Drug) domain.Drug {
	d.Available = d.StockQuantity > 0
	return d
}

func (m *MemoryStore) CreateDrug(ctx context.Context, d *domain.Drug) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	d.ID = m.drugs.nextID()
	*d = withAvailability(*d)
	m.drugs.rows[d.ID] = *d
	return nil
}

func (m *MemoryStore) GetDrug(ctx context.Context, id int64) (*domain.Drug, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	d, ok := m.drugs.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	// return copy
	cp := d
	return &cp, nil
}

func (m *MemoryStore) UpdateDrug(ctx context.Context, d *domain.Drug) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.drugs.rows[d.ID]; !ok {
		return ErrNotFound
	}
	*d = withAvailability(*d)
	m.drugs.rows[d.ID] = *d
	return nil
}

func (m *MemoryStore) DeleteDrug(ctx context.Context, id int64) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.drugs.rows[id]; !ok {
		return ErrNotFound
	}
	delete(m.drugs.rows, id)
	return nil
}

func (m *MemoryStore) ListDrugs(ctx context.Context) ([]domain.Drug, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	return m.drugs.all(), nil
}

// Accounts

func (m *MemoryStore) CreateAccount(ctx context.Context, a *domain.Account) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	for _, existing := range m.accounts.rows {
		if strings.EqualFold(existing.Username, a.Username) {
			return ErrDuplicate
		}
	}
	a.ID = m.accounts.nextID()
	m.accounts.rows[a.ID] = *a
	return nil
}

func (m *MemoryStore) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	a, ok := m.accounts.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := a
	return &cp, nil
}

func (m *MemoryStore) GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	for _, a := range m.accounts.rows {
		if strings.EqualFold(a.Username, username) {
			cp := a
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) UpdateAccount(ctx context.Context, a *domain.Account) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.accounts.rows[a.ID]; !ok {
		return ErrNotFound
	}
	for id, existing := range m.accounts.rows {
		if id != a.ID && strings.EqualFold(existing.Username, a.Username) {
			return ErrDuplicate
		}
	}
	m.accounts.rows[a.ID] = *a
	return nil
}

// ListAccounts filters by role; an empty role lists everyone.
func (m *MemoryStore) ListAccounts(ctx context.Context, role domain.Role) ([]domain.Account, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Account, 0)
	for _, a := range m.accounts.all() {
		if role == "" || a.Role == role {
			out = append(out, a)
		}
	}
	return out, nil
}

// Tokens

func (m *MemoryStore) SaveToken(ctx context.Context, token string, accountID int64) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	m.tokens[token] = accountID
	return nil
}

func (m *MemoryStore) LookupToken(ctx context.Context, token string) (int64, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	id, ok := m.tokens[token]
	if !ok {
		return 0, ErrNotFound
	}
	return id, nil
}

func (m *MemoryStore) RevokeTokens(ctx context.Context, accountID int64) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	for tok, id := range m.tokens {
		if id == accountID {
			delete(m.tokens, tok)
		}
	}
	return nil
}

// Employees

func (m *MemoryStore) CreateEmployee(ctx context.Context, e *domain.Employee) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	e.ID = m.employees.nextID()
	m.employees.rows[e.ID] = *e
	return nil
}

func (m *MemoryStore) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	e, ok := m.employees.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := e
	return &cp, nil
}

func (m *MemoryStore) UpdateEmployee(ctx context.Context, e *domain.Employee) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.employees.rows[e.ID]; !ok {
		return ErrNotFound
	}
	m.employees.rows[e.ID] = *e
	return nil
}

func (m *MemoryStore) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	return m.employees.all(), nil
}

// Suppliers

func (m *MemoryStore) CreateSupplier(ctx context.Context, s *domain.Supplier) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	s.ID = m.suppliers.nextID()
	m.suppliers.rows[s.ID] = *s
	return nil
}

func (m *MemoryStore) GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	s, ok := m.suppliers.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := s
	return &cp, nil
}

func (m *MemoryStore) UpdateSupplier(ctx context.Context, s *domain.Supplier) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.suppliers.rows[s.ID]; !ok {
		return ErrNotFound
	}
	m.suppliers.rows[s.ID] = *s
	return nil
}

func (m *MemoryStore) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	return m.suppliers.all(), nil
}

// Sales

func (m *MemoryStore) CreateSale(ctx context.Context, s *domain.Sale) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	s.ID = m.sales.nextID()
	if s.SaleDate.IsZero() {
		s.SaleDate = m.now()
	}
	m.sales.rows[s.ID] = *s
	return nil
}

func (m *MemoryStore) ListSales(ctx context.Context) ([]domain.Sale, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	return m.sales.all(), nil
}

// Tx manager using write lock to emulate transaction boundary
type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// repositories skip their own locks while the ctx is marked
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	ctx = context.WithValue(ctx, txKey{}, true)
	return fn(ctx)
}
