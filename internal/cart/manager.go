package cart

import (
	"sync"
	"time"

	"github.com/casamaria/storefront-backend/internal/catalog"
	pkgerrors "github.com/casamaria/storefront-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Snapshot is a read-only view of a cart with its computed totals.
type Snapshot struct {
	ID        string
	Lines     []Line
	ItemCount int
	Subtotal  decimal.Decimal
	Total     decimal.Decimal
	Savings   decimal.Decimal
}

type session struct {
	cart    *Cart
	touched time.Time
}

// Manager owns all live carts, keyed by cart id. Carts idle past the TTL
// are dropped on the next access.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
}

// NewManager builds a cart manager with the given idle TTL.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: map[string]*session{},
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create registers an empty cart and returns its id.
func (m *Manager) Create() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	m.sessions[id] = &session{cart: &Cart{}, touched: m.now()}
	return m.snapshotLocked(id)
}

// Get returns the cart snapshot, or CodeNotFound if the id is unknown
// or the cart expired.
func (m *Manager) Get(cartID string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.lookupLocked(cartID); err != nil {
		return Snapshot{}, err
	}
	return m.snapshotLocked(cartID), nil
}

// AddItem adds the menu item to the cart.
func (m *Manager) AddItem(cartID string, item catalog.MenuItem) (Snapshot, error) {
	return m.mutate(cartID, func(c *Cart) {
		c.Add(item)
	})
}

// SetQuantity sets a line quantity, clamped to a minimum of 1.
func (m *Manager) SetQuantity(cartID, itemID string, quantity int) (Snapshot, error) {
	return m.mutate(cartID, func(c *Cart) {
		c.SetQuantity(itemID, quantity)
	})
}

// RemoveItem removes the line for the item.
func (m *Manager) RemoveItem(cartID, itemID string) (Snapshot, error) {
	return m.mutate(cartID, func(c *Cart) {
		c.Remove(itemID)
	})
}

// Clear empties the cart, keeping the session alive.
func (m *Manager) Clear(cartID string) (Snapshot, error) {
	return m.mutate(cartID, func(c *Cart) {
		c.Clear()
	})
}

func (m *Manager) mutate(cartID string, fn func(*Cart)) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, err := m.lookupLocked(cartID)
	if err != nil {
		return Snapshot{}, err
	}
	fn(sess.cart)
	sess.touched = m.now()
	return m.snapshotLocked(cartID), nil
}

func (m *Manager) lookupLocked(cartID string) (*session, error) {
	m.purgeExpiredLocked()

	sess, ok := m.sessions[cartID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
	}
	return sess, nil
}

func (m *Manager) purgeExpiredLocked() {
	if m.ttl <= 0 {
		return
	}
	cutoff := m.now().Add(-m.ttl)
	for id, sess := range m.sessions {
		if sess.touched.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}

func (m *Manager) snapshotLocked(cartID string) Snapshot {
	c := m.sessions[cartID].cart
	return Snapshot{
		ID:        cartID,
		Lines:     c.Lines(),
		ItemCount: c.ItemCount(),
		Subtotal:  c.Subtotal(),
		Total:     c.Total(),
		Savings:   c.Savings(),
	}
}
