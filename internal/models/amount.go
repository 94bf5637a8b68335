package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OptionalAmount is a euro amount that may be absent, such as the declared
// yearly total of a donor that the source left blank.
type OptionalAmount struct {
	decimal.NullDecimal
}

// SomeAmount returns a present OptionalAmount.
func SomeAmount(d decimal.Decimal) OptionalAmount {
	return OptionalAmount{decimal.NullDecimal{Decimal: d, Valid: true}}
}

// NoAmount returns an absent OptionalAmount.
func NoAmount() OptionalAmount {
	return OptionalAmount{}
}

// IsPresent reports whether an amount is set.
func (a OptionalAmount) IsPresent() bool {
	return a.Valid
}

// Equal compares presence and value.
func (a OptionalAmount) Equal(other OptionalAmount) bool {
	if a.Valid != other.Valid {
		return false
	}
	return !a.Valid || a.Decimal.Equal(other.Decimal)
}

// MarshalCSV writes an absent amount as an empty field.
func (a OptionalAmount) MarshalCSV() (string, error) {
	if !a.Valid {
		return "", nil
	}
	return a.Decimal.String(), nil
}

// UnmarshalCSV reads an empty field as an absent amount.
func (a *OptionalAmount) UnmarshalCSV(value string) error {
	if value == "" {
		*a = NoAmount()
		return nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return fmt.Errorf("invalid amount string '%s': %w", value, err)
	}
	*a = SomeAmount(d)
	return nil
}

func (a OptionalAmount) String() string {
	if !a.Valid {
		return ""
	}
	return a.Decimal.String()
}
