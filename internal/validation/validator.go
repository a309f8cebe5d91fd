// Package validation holds the rules deciding what a valid product entry is.
// The same checks run when a product is built and when it is updated.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	perrors "github.com/abgdnv/superstore/internal/errors"
)

const (
	MaxLengthName        = 100
	MaxLengthDescription = 500
	MinLengthPrices      = 2
)

// CheckProduct validates a name, description and prices triple.
// A missing name or prices yields an error matching ErrNullReference,
// any other violation an error matching ErrInvalidArgument.
func CheckProduct(name, description *string, prices map[string]float64) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := checkDescription(description); err != nil {
		return err
	}
	return checkPrices(prices)
}

func checkName(name *string) error {
	if name == nil {
		return perrors.NullReference("Name cannot be null")
	}
	if *name == "" {
		return perrors.InvalidArgument("Name cannot be empty")
	}
	if utf8.RuneCountInString(*name) > MaxLengthName {
		return perrors.InvalidArgument("Name cannot be longer than %d characters", MaxLengthName)
	}
	return nil
}

func checkDescription(description *string) error {
	if description != nil && utf8.RuneCountInString(*description) > MaxLengthDescription {
		return perrors.InvalidArgument("Description cannot be longer than %d characters", MaxLengthDescription)
	}
	return nil
}

func checkPrices(prices map[string]float64) error {
	if prices == nil {
		return perrors.NullReference("Prices cannot be null")
	}
	if !ValidPrices(prices) {
		return perrors.InvalidArgument("%s", PricesMessage())
	}
	return nil
}

// PricesMessage describes the currency requirement to the caller.
func PricesMessage() string {
	return fmt.Sprintf("Required %d (or more) prices (values >= 0) in the required currencies: %s.",
		MinLengthPrices, strings.Join(RequiredCurrencies, ", and "))
}
