// Package store provides the storage port for products and its implementations.
package store

import (
	"context"
	"errors"

	"github.com/abgdnv/superstore/internal/product"
)

// ErrUnavailable is returned while the store is considered unhealthy and calls are rejected.
var ErrUnavailable = errors.New("product store unavailable")

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, MongoDB, PostgreSQL).
type ProductStore interface {
	// Save inserts a product without an ID, or replaces the stored product with the same ID.
	// A product whose ID is not stored, for example because it was deleted meanwhile,
	// is inserted under that ID. There is no version check, so concurrent writes to
	// one ID are last-write-wins and an update racing a delete restores the product.
	// Returns the stored product carrying its assigned ID.
	Save(ctx context.Context, p *product.Product) (*product.Product, error)

	// FindOne retrieves a single product by its identifier.
	// The boolean is false if no product exists with the given ID.
	FindOne(ctx context.Context, id string) (*product.Product, bool, error)

	// FindAll returns all products in store order.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]*product.Product, error)

	// Delete removes the given product.
	Delete(ctx context.Context, p *product.Product) error
}

// withID returns a copy of p carrying id.
func withID(p *product.Product, id string) (*product.Product, error) {
	return product.NewBuilder().
		ID(id).
		Name(p.Name()).
		Description(p.Description()).
		Prices(p.Prices()).
		Build()
}
