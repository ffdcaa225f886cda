// File: internal/model/money.go
package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CentsFromDollars parses a dollar amount such as "149.99" into cents.
// Fractions of a cent are rounded half away from zero.
func CentsFromDollars(s string) (int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("CentsFromDollars: %w", err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("CentsFromDollars: negative amount %s", s)
	}
	return int(d.Mul(hundred).Round(0).IntPart()), nil
}
