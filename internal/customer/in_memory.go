package customer

import (
	"context"
	"slices"
	"sync"

	perrors "github.com/abgdnv/superstore/internal/errors"
	"github.com/google/uuid"
)

// InMemory implements Store using an in-memory map keyed by customer name.
type InMemory struct {
	mu        sync.RWMutex
	customers map[string]Customer
}

// NewInMemoryStore creates a new, empty in-memory customer Store.
func NewInMemoryStore() *InMemory {
	return &InMemory{
		customers: make(map[string]Customer),
	}
}

func (s *InMemory) Save(_ context.Context, c *Customer) (*Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[c.Name]; ok {
		return nil, perrors.ErrCustomerExists
	}
	stored := *c
	stored.ID = uuid.NewString()
	stored.Roles = slices.Clone(c.Roles)
	s.customers[c.Name] = stored
	return copyOf(stored), nil
}

func (s *InMemory) FindByName(_ context.Context, name string) (*Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[name]
	if !ok {
		return nil, perrors.ErrCustomerNotFound
	}
	return copyOf(c), nil
}

func copyOf(c Customer) *Customer {
	c.Roles = slices.Clone(c.Roles)
	return &c
}
