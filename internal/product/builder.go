package product

import (
	"maps"

	"github.com/abgdnv/superstore/internal/validation"
)

// Builder collects product fields and produces a validated Product.
type Builder struct {
	id          string
	name        *string
	description *string
	prices      map[string]float64
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// ID sets the store identifier. Used when loading persisted products.
func (b *Builder) ID(id string) *Builder {
	b.id = id
	return b
}

func (b *Builder) Name(name string) *Builder {
	b.name = &name
	return b
}

// Description sets an optional description; nil leaves it absent.
func (b *Builder) Description(description *string) *Builder {
	b.description = cloneString(description)
	return b
}

func (b *Builder) Prices(prices map[string]float64) *Builder {
	b.prices = maps.Clone(prices)
	return b
}

// Build validates the collected fields and returns the Product.
// No Product is returned when validation fails.
func (b *Builder) Build() (*Product, error) {
	if err := validation.CheckProduct(b.name, b.description, b.prices); err != nil {
		return nil, err
	}
	return &Product{
		id:          b.id,
		name:        *b.name,
		description: cloneString(b.description),
		prices:      maps.Clone(b.prices),
	}, nil
}
