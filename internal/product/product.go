// Package product contains the catalog's product entity, its guarded builder,
// the wire transfer object and the mapping between them.
package product

import (
	"fmt"
	"maps"
	"strings"

	"github.com/abgdnv/superstore/internal/validation"
)

// Product is a stored catalog entry. A Product value is always valid:
// it can only be obtained from Builder.Build and only changed through Update.
type Product struct {
	id          string
	name        string
	description *string
	prices      map[string]float64
}

// ID returns the identifier assigned by the store, or "" if not persisted yet.
func (p *Product) ID() string {
	return p.id
}

func (p *Product) Name() string {
	return p.name
}

// Description returns a copy of the description, or nil if it is absent.
func (p *Product) Description() *string {
	return cloneString(p.description)
}

// Prices returns a copy of the price list keyed by currency code.
func (p *Product) Prices() map[string]float64 {
	return maps.Clone(p.prices)
}

// Update replaces name, description and prices after validating the new state.
// On error the product is left unchanged.
func (p *Product) Update(name, description *string, prices map[string]float64) error {
	if err := validation.CheckProduct(name, description, prices); err != nil {
		return err
	}
	p.name = *name
	p.description = cloneString(description)
	p.prices = maps.Clone(prices)
	return nil
}

// String renders the product for log output.
func (p *Product) String() string {
	desc := "<nil>"
	if p.description != nil {
		desc = *p.description
	}
	return fmt.Sprintf("Product[id=%s, name=%s, description=%s, prices=[%s]]", p.id, p.name, desc, formatPrices(p.prices))
}

func formatPrices(prices map[string]float64) string {
	parts := make([]string, 0, len(prices))
	for _, code := range sortedKeys(prices) {
		parts = append(parts, fmt.Sprintf("%s : %v", code, prices[code]))
	}
	return strings.Join(parts, ", ")
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
