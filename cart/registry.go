package cart

import "sync"

// Registry hands out one Store per customer.
type Registry struct {
	mu     sync.Mutex
	stores map[string]*Store
}

func NewRegistry() *Registry {
	return &Registry{stores: make(map[string]*Store)}
}

// For returns the cart of userID, creating it on first use.
func (r *Registry) For(userID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stores[userID]
	if !ok {
		s = NewStore()
		r.stores[userID] = s
	}
	return s
}

