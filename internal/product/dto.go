package product

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/abgdnv/superstore/internal/validation"
	"github.com/go-playground/validator/v10"
)

// CurrencyTag is the validator tag checking a wire price list against the currency policy.
const CurrencyTag = "currency"

// Dto is the wire representation of a product.
// Every field may be absent; absent fields are omitted from JSON output.
type Dto struct {
	ID          string              `json:"id,omitempty"`
	Name        *string             `json:"name,omitempty"        validate:"required,min=1,max=100"`
	Description *string             `json:"description,omitempty" validate:"omitempty,max=500"`
	Prices      map[string]*float64 `json:"prices,omitempty"      validate:"currency"`
}

func (d Dto) String() string {
	name, desc := "<nil>", "<nil>"
	if d.Name != nil {
		name = *d.Name
	}
	if d.Description != nil {
		desc = *d.Description
	}
	parts := make([]string, 0, len(d.Prices))
	for _, code := range sortedKeys(d.Prices) {
		if amount := d.Prices[code]; amount != nil {
			parts = append(parts, fmt.Sprintf("%s : %v", code, *amount))
		} else {
			parts = append(parts, code+" : <nil>")
		}
	}
	return fmt.Sprintf("ProductDto[id=%s, name=%s, description=%s, prices=[%s]]", d.ID, name, desc, strings.Join(parts, ", "))
}

// NewValidator returns a validator with the product wire rules registered.
// Field errors are reported by their JSON names.
func NewValidator() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := RegisterValidations(v); err != nil {
		return nil, err
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v, nil
}

// RegisterValidations adds the currency tag to v.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation(CurrencyTag, func(fl validator.FieldLevel) bool {
		prices, ok := fl.Field().Interface().(map[string]*float64)
		if !ok {
			return false
		}
		return validation.ValidNullablePrices(prices)
	})
}
