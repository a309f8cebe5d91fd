package validation

import (
	"errors"
	"strings"
	"testing"

	perrors "github.com/abgdnv/superstore/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string {
	return &s
}

func validPrices() map[string]float64 {
	return map[string]float64{CurrencyUSD: 9.99, CurrencyGBP: 7.49}
}

func Test_CheckProduct(t *testing.T) {
	testCases := []struct {
		name        string
		pName       *string
		description *string
		prices      map[string]float64
		expectKind  error
		message     string
	}{
		{
			name:   "Success - name and prices only",
			pName:  ptr("Widget"),
			prices: validPrices(),
		},
		{
			name:        "Success - boundary lengths",
			pName:       ptr(strings.Repeat("n", MaxLengthName)),
			description: ptr(strings.Repeat("d", MaxLengthDescription)),
			prices:      validPrices(),
		},
		{
			name:        "Success - multibyte name counted by runes",
			pName:       ptr(strings.Repeat("ü", MaxLengthName)),
			description: ptr(""),
			prices:      validPrices(),
		},
		{
			name:       "Error - name missing",
			pName:      nil,
			prices:     validPrices(),
			expectKind: perrors.ErrNullReference,
			message:    "Name cannot be null",
		},
		{
			name:       "Error - name empty",
			pName:      ptr(""),
			prices:     validPrices(),
			expectKind: perrors.ErrInvalidArgument,
			message:    "Name cannot be empty",
		},
		{
			name:       "Error - name too long",
			pName:      ptr(strings.Repeat("n", MaxLengthName+1)),
			prices:     validPrices(),
			expectKind: perrors.ErrInvalidArgument,
			message:    "Name cannot be longer than 100 characters",
		},
		{
			name:        "Error - description too long",
			pName:       ptr("Widget"),
			description: ptr(strings.Repeat("d", MaxLengthDescription+1)),
			prices:      validPrices(),
			expectKind:  perrors.ErrInvalidArgument,
			message:     "Description cannot be longer than 500 characters",
		},
		{
			name:       "Error - prices missing",
			pName:      ptr("Widget"),
			prices:     nil,
			expectKind: perrors.ErrNullReference,
			message:    "Prices cannot be null",
		},
		{
			name:       "Error - prices without GBP",
			pName:      ptr("Widget"),
			prices:     map[string]float64{CurrencyUSD: 1},
			expectKind: perrors.ErrInvalidArgument,
			message:    "Required 2 (or more) prices (values >= 0) in the required currencies: USD, and GBP.",
		},
		{
			name:       "Error - negative price",
			pName:      ptr("Widget"),
			prices:     map[string]float64{CurrencyUSD: 1, CurrencyGBP: -0.01},
			expectKind: perrors.ErrInvalidArgument,
			message:    PricesMessage(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			err := CheckProduct(tc.pName, tc.description, tc.prices)

			// then
			if tc.expectKind == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.expectKind)
			assert.EqualError(t, err, tc.message)
		})
	}
}

func Test_CheckProduct_MissingIsNotMalformed(t *testing.T) {
	// when
	err := CheckProduct(nil, nil, validPrices())

	// then
	assert.True(t, errors.Is(err, perrors.ErrNullReference))
	assert.False(t, errors.Is(err, perrors.ErrInvalidArgument))
}
