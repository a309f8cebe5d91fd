package product

import (
	"maps"
	"slices"

	perrors "github.com/abgdnv/superstore/internal/errors"
	"github.com/abgdnv/superstore/internal/validation"
)

// ToDto converts a Product to its wire representation.
func ToDto(p *Product) Dto {
	name := p.Name()
	return Dto{
		ID:          p.ID(),
		Name:        &name,
		Description: p.Description(),
		Prices:      NullablePrices(p.prices),
	}
}

// FromDto builds a Product from its wire representation, including the ID.
func FromDto(d Dto) (*Product, error) {
	prices, err := DtoPrices(d.Prices)
	if err != nil {
		return nil, err
	}
	b := NewBuilder().ID(d.ID).Description(d.Description).Prices(prices)
	if d.Name != nil {
		b.Name(*d.Name)
	}
	return b.Build()
}

// DtoPrices converts a wire price list to entity prices.
// A nil map stays nil; a null amount is rejected by the currency policy.
func DtoPrices(prices map[string]*float64) (map[string]float64, error) {
	if prices == nil {
		return nil, nil
	}
	values := make(map[string]float64, len(prices))
	for code, amount := range prices {
		if amount == nil {
			return nil, perrors.InvalidArgument("%s", validation.PricesMessage())
		}
		values[code] = *amount
	}
	return values, nil
}

// NullablePrices converts entity prices to the wire price list.
func NullablePrices(prices map[string]float64) map[string]*float64 {
	if prices == nil {
		return nil
	}
	out := make(map[string]*float64, len(prices))
	for code, amount := range prices {
		out[code] = &amount
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
