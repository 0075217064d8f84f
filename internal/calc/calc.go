// Package calc holds the invoice arithmetic: line amounts, subtotal,
// tax, and grand total. It is pure and deterministic so the same
// numbers come out whether it runs for a live preview or a PDF export.
//
// Arithmetic is plain float64, formatted to two decimals only at
// display time. Repeated edits can accumulate floating-point drift;
// that is an accepted limitation for this application, not a target
// for strict accounting reconciliation.
package calc

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Coerce parses a free-form numeric input, treating blank or
// non-numeric values as zero. Mirrors the form behavior where an empty
// unit cost or quantity contributes nothing.
func Coerce(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return sanitize(v)
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Amount is a float64 that tolerates sloppy JSON: numbers, quoted
// numbers, blank strings, and null all decode, with anything
// non-numeric coerced to zero.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*a = 0
		return nil
	}
	s := string(data)
	if s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			*a = 0
			return nil
		}
		*a = Amount(Coerce(unquoted))
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*a = 0
		return nil
	}
	*a = Amount(sanitize(v))
	return nil
}

// LineInput is one item row as far as the math is concerned.
type LineInput struct {
	UnitCost float64
	Quantity float64
}

// LineAmount is unit cost times quantity.
func LineAmount(unitCost, quantity float64) float64 {
	return sanitize(unitCost) * sanitize(quantity)
}

// Subtotal sums the line amounts over all items.
func Subtotal(items []LineInput) float64 {
	var sum float64
	for _, item := range items {
		sum += LineAmount(item.UnitCost, item.Quantity)
	}
	return sum
}

// Totals is the derived money block of an invoice.
type Totals struct {
	Subtotal  float64
	TaxAmount float64
	Total     float64
}

// Compute derives subtotal, tax and total from the items plus the
// tax rate (a percentage), a flat discount and a shipping fee.
func Compute(items []LineInput, taxRate, discount, shipping float64) Totals {
	subtotal := Subtotal(items)
	tax := subtotal * sanitize(taxRate) / 100
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal + tax - sanitize(discount) + sanitize(shipping),
	}
}

var printer = message.NewPrinter(language.English)

// Format renders an amount for display: grouped thousands, two
// decimals, currency code appended ("1,070.00 USD").
func Format(amount float64, currency string) string {
	formatted := printer.Sprintf("%.2f", sanitize(amount))
	if currency == "" {
		return formatted
	}
	return formatted + " " + currency
}
