package cart

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"pharmacy/internal/domain"
)

type entry struct {
	mu   sync.Mutex
	cart *Cart
}

// Store keeps one cart per session in memory, evicting the least recently
// used once size sessions are held. Nothing survives a restart.
type Store struct {
	mu    sync.Mutex
	carts *lru.Cache[string, *entry]
}

func NewStore(size int) (*Store, error) {
	c, err := lru.New[string, *entry](size)
	if err != nil {
		return nil, err
	}
	return &Store{carts: c}, nil
}

func (s *Store) entry(key string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.carts.Get(key); ok {
		return e
	}
	e := &entry{cart: New()}
	s.carts.Add(key, e)
	return e
}

// Update runs fn with exclusive access to the session's cart, creating an
// empty one on first use.
func (s *Store) Update(key string, fn func(*Cart) error) error {
	e := s.entry(key)
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.cart)
}

// Snapshot returns a copy of the session's lines without creating a cart.
func (s *Store) Snapshot(key string) ([]Line, bool) {
	s.mu.Lock()
	e, ok := s.carts.Get(key)
	s.mu.Unlock()
	if !ok {
		return nil, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.Lines(), true
}

// Reconcile refreshes an existing cart against catalog, see Cart.Reconcile,
// and returns the remaining and the dropped lines. Without a cart it does
// nothing and reports false.
func (s *Store) Reconcile(key string, catalog []domain.Drug) (lines, dropped []Line, ok bool) {
	s.mu.Lock()
	e, ok := s.carts.Get(key)
	s.mu.Unlock()
	if !ok {
		return nil, nil, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	dropped = e.cart.Reconcile(catalog)
	return e.cart.Lines(), dropped, true
}

// Move hands the cart kept under from over to to, replacing whatever to held.
// Used when a profile update re-issues the session token.
func (s *Store) Move(from, to string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.carts.Peek(from)
	if !ok {
		return
	}
	s.carts.Remove(from)
	s.carts.Add(to, e)
}

// Drop forgets the session's cart, e.g. on logout.
func (s *Store) Drop(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts.Remove(key)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.carts.Len()
}
