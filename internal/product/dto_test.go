package product

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Validator_Dto(t *testing.T) {
	validate, err := NewValidator()
	require.NoError(t, err)

	validPrices := map[string]*float64{"USD": amount(9.99), "GBP": amount(7.49)}

	testCases := []struct {
		name           string
		dto            Dto
		expectedErrors map[string]string
	}{
		{
			name: "Success - minimal product",
			dto:  Dto{Name: ptr("Widget"), Prices: validPrices},
		},
		{
			name: "Success - empty description",
			dto:  Dto{Name: ptr("Widget"), Description: ptr(""), Prices: validPrices},
		},
		{
			name:           "Error - name absent",
			dto:            Dto{Prices: validPrices},
			expectedErrors: map[string]string{"name": "required"},
		},
		{
			name:           "Error - name empty",
			dto:            Dto{Name: ptr(""), Prices: validPrices},
			expectedErrors: map[string]string{"name": "min"},
		},
		{
			name:           "Error - name too long",
			dto:            Dto{Name: ptr(strings.Repeat("n", 101)), Prices: validPrices},
			expectedErrors: map[string]string{"name": "max"},
		},
		{
			name:           "Error - description too long",
			dto:            Dto{Name: ptr("Widget"), Description: ptr(strings.Repeat("d", 501)), Prices: validPrices},
			expectedErrors: map[string]string{"description": "max"},
		},
		{
			name:           "Error - prices absent",
			dto:            Dto{Name: ptr("Widget")},
			expectedErrors: map[string]string{"prices": CurrencyTag},
		},
		{
			name:           "Error - null amount",
			dto:            Dto{Name: ptr("Widget"), Prices: map[string]*float64{"USD": amount(1), "GBP": nil}},
			expectedErrors: map[string]string{"prices": CurrencyTag},
		},
		{
			name:           "Error - missing GBP and empty name",
			dto:            Dto{Name: ptr(""), Prices: map[string]*float64{"USD": amount(1)}},
			expectedErrors: map[string]string{"name": "min", "prices": CurrencyTag},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			err := validate.Struct(tc.dto)

			// then
			if tc.expectedErrors == nil {
				require.NoError(t, err)
				return
			}
			var validationErrors validator.ValidationErrors
			require.True(t, errors.As(err, &validationErrors))
			actual := make(map[string]string)
			for _, fieldErr := range validationErrors {
				actual[fieldErr.Field()] = fieldErr.Tag()
			}
			assert.Equal(t, tc.expectedErrors, actual)
		})
	}
}
