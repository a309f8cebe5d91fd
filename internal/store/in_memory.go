package store

import (
	"context"
	"slices"
	"sync"

	"github.com/abgdnv/superstore/internal/product"
	"github.com/google/uuid"
)

// InMemory implements ProductStore using an in-memory map.
// Products are returned in insertion order.
type InMemory struct {
	mu       sync.RWMutex
	products map[string]*product.Product
	order    []string
}

// NewInMemoryStore creates a new, empty in-memory ProductStore.
func NewInMemoryStore() *InMemory {
	return &InMemory{
		products: make(map[string]*product.Product),
	}
}

// Save stores a copy of p, assigning a new UUID when p has no ID.
func (s *InMemory) Save(_ context.Context, p *product.Product) (*product.Product, error) {
	id := p.ID()
	if id == "" {
		id = uuid.NewString()
	}
	stored, err := withID(p, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		s.order = append(s.order, id)
	}
	s.products[id] = stored
	return withID(stored, id)
}

// FindOne retrieves a product by its ID.
func (s *InMemory) FindOne(_ context.Context, id string) (*product.Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, false, nil
	}
	found, err := withID(p, id)
	if err != nil {
		return nil, false, err
	}
	return found, true, nil
}

// FindAll retrieves all products.
func (s *InMemory) FindAll(_ context.Context) ([]*product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*product.Product, 0, len(s.order))
	for _, id := range s.order {
		p, err := withID(s.products[id], id)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, nil
}

// Delete removes the product with p's ID. Deleting an absent product is a no-op.
func (s *InMemory) Delete(_ context.Context, p *product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.ID()]; !exists {
		return nil
	}
	delete(s.products, p.ID())
	s.order = slices.DeleteFunc(s.order, func(id string) bool { return id == p.ID() })
	return nil
}
