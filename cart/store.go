// Package cart holds the in-memory shopping cart of one customer session.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"storefront/models"
	"storefront/pricing"
)

// Store is the cart of a single session. Items keep insertion order and every
// entry has a quantity of at least one.
type Store struct {
	mu    sync.Mutex
	items []models.LineItem
}

// NewStore creates an empty cart
func NewStore() *Store {
	return &Store{}
}

// AddItem merges the input into an existing entry with the same product and
// variant, or appends it as a new entry.
func (s *Store) AddItem(in models.LineItemInput) {
	qty := in.Quantity
	if qty <= 0 {
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := in.Key()
	for i := range s.items {
		if s.items[i].Key() == key {
			s.items[i].Quantity += qty
			return
		}
	}

	s.items = append(s.items, models.LineItem{
		ProductID: in.ProductID,
		Name:      in.Name,
		UnitPrice: in.UnitPrice,
		Image:     in.Image,
		Quantity:  qty,
		Size:      in.Size,
		Color:     in.Color,
	})
}

// UpdateQuantity sets the quantity of every entry for productID.
// A quantity of zero or less removes them.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
		}
	}
}

// RemoveItem drops every entry for productID. Unknown ids are ignored.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, item := range s.items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	s.items = kept
}

// RemoveEntry drops the entry with item's key if its quantity is still
// item.Quantity. It reports whether an entry was removed.
func (s *Store) RemoveEntry(item models.LineItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := item.Key()
	for i := range s.items {
		if s.items[i].Key() != key {
			continue
		}
		if s.items[i].Quantity != item.Quantity {
			return false
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		return true
	}
	return false
}

func (s *Store) ClearCart() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}

// Items returns a copy of the entries in insertion order.
func (s *Store) Items() []models.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len is the number of distinct entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// ItemCount is the sum of all quantities.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, item := range s.items {
		n += item.Quantity
	}
	return n
}

// Total is the cart subtotal.
func (s *Store) Total() decimal.Decimal {
	return pricing.Subtotal(s.Items())
}

func (s *Store) Totals() pricing.Breakdown {
	return pricing.Calculate(s.Items())
}
