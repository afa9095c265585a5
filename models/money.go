package models

import "github.com/shopspring/decimal"

// Money is a signed amount in minor currency units (cents).
// Negative = debit (money out), positive = credit (money in).
// Amounts are never stored or transported as binary floating point.
type Money int64

// FromDecimal converts a major-unit decimal value to Money using
// round-half-to-even. This is the single conversion routine for every
// boundary where amounts cross between major and minor units.
func FromDecimal(d decimal.Decimal) Money {
	return Money(d.Mul(decimal.NewFromInt(100)).RoundBank(0).IntPart())
}

// Decimal returns the major-unit decimal value (e.g. -499 -> -4.99).
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String formats the amount in major units with two fractional digits.
// FromDecimal(decimal(m.String())) == m for every Money value.
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}
