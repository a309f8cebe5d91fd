package product

import (
	"encoding/json"
	"testing"

	perrors "github.com/abgdnv/superstore/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(v float64) *float64 {
	return &v
}

func Test_Mapper_RoundTrip(t *testing.T) {
	testCases := []struct {
		name    string
		product *Product
	}{
		{name: "with description", product: widget(t)},
		{
			name: "without description",
			product: func() *Product {
				p, err := NewBuilder().ID("p2").Name("Gadget").Prices(map[string]float64{"USD": 0, "GBP": 0, "JPY": 1200}).Build()
				require.NoError(t, err)
				return p
			}(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			back, err := FromDto(ToDto(tc.product))

			// then
			require.NoError(t, err)
			assert.Equal(t, tc.product.ID(), back.ID())
			assert.Equal(t, tc.product.Name(), back.Name())
			assert.Equal(t, tc.product.Description(), back.Description())
			assert.Equal(t, tc.product.Prices(), back.Prices())
		})
	}
}

func Test_FromDto(t *testing.T) {
	testCases := []struct {
		name       string
		dto        Dto
		expectKind error
	}{
		{
			name: "Success",
			dto:  Dto{Name: ptr("Widget"), Prices: map[string]*float64{"USD": amount(9.99), "GBP": amount(7.49)}},
		},
		{
			name:       "Error - name absent",
			dto:        Dto{Prices: map[string]*float64{"USD": amount(9.99), "GBP": amount(7.49)}},
			expectKind: perrors.ErrNullReference,
		},
		{
			name:       "Error - prices absent",
			dto:        Dto{Name: ptr("Widget")},
			expectKind: perrors.ErrNullReference,
		},
		{
			name:       "Error - null amount",
			dto:        Dto{Name: ptr("Widget"), Prices: map[string]*float64{"USD": amount(9.99), "GBP": nil}},
			expectKind: perrors.ErrInvalidArgument,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			p, err := FromDto(tc.dto)

			// then
			if tc.expectKind != nil {
				assert.ErrorIs(t, err, tc.expectKind)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Widget", p.Name())
		})
	}
}

func Test_Dto_JSON(t *testing.T) {
	// given
	p, err := NewBuilder().ID("p1").Name("Widget").Prices(map[string]float64{"USD": 9.99, "GBP": 7.49}).Build()
	require.NoError(t, err)

	// when
	data, err := json.Marshal(ToDto(p))

	// then
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"p1","name":"Widget","prices":{"USD":9.99,"GBP":7.49}}`, string(data))
}

func Test_Dto_JSONOmitsAbsentFields(t *testing.T) {
	data, err := json.Marshal(Dto{Name: ptr("Widget")})

	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Widget"}`, string(data))
}

func Test_Dto_String(t *testing.T) {
	dto := Dto{ID: "p1", Name: ptr("Widget"), Prices: map[string]*float64{"USD": amount(1), "GBP": nil}}

	assert.Equal(t, "ProductDto[id=p1, name=Widget, description=<nil>, prices=[GBP : <nil>, USD : 1]]", dto.String())
}
