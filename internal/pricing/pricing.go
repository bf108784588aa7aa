// Package pricing converts requested weights into billable units and
// computes currency amounts for order lines.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	// UnitGrams is the billable weight increment.
	UnitGrams = 100

	// MinGrams is the smallest quantity that can be ordered.
	MinGrams = UnitGrams

	// MaxGrams is the largest quantity a single line can carry. Larger
	// requests are clamped to it.
	MaxGrams = 1_000_000

	// MaxPricePer100g is the highest catalogue price accepted.
	MaxPricePer100g = 100_000
)

var unit = decimal.NewFromInt(UnitGrams)

// QuantizeGrams rounds requested to the nearest multiple of 100 and clamps
// the result to [MinGrams, MaxGrams]. NaN and infinities count as zero.
// Halves round up, so 150 becomes 200 and 250 becomes 300.
func QuantizeGrams(requested float64) int {
	if math.IsNaN(requested) || math.IsInf(requested, 0) {
		requested = 0
	}
	// Clamp before converting so the int never overflows.
	if requested > MaxGrams {
		requested = MaxGrams
	}

	grams := int(math.Floor(requested/UnitGrams+0.5)) * UnitGrams
	if grams < MinGrams {
		return MinGrams
	}
	return grams
}

// ValidPrice reports whether price is finite and within [0, MaxPricePer100g].
func ValidPrice(price float64) bool {
	return !math.IsNaN(price) && !math.IsInf(price, 0) && price >= 0 && price <= MaxPricePer100g
}

// Round2 rounds amount to cents, half away from zero.
func Round2(amount float64) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}

// LineTotal returns round2(pricePer100g * grams / 100).
func LineTotal(pricePer100g float64, grams int) float64 {
	return lineTotal(pricePer100g, grams).InexactFloat64()
}

func lineTotal(pricePer100g float64, grams int) decimal.Decimal {
	if math.IsNaN(pricePer100g) || math.IsInf(pricePer100g, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(pricePer100g).
		Mul(decimal.NewFromInt(int64(grams))).
		Div(unit).
		Round(2)
}

// Subtotal sums already rounded line totals and rounds the aggregate again.
// The result does not depend on the order of lineTotals.
func Subtotal(lineTotals ...float64) float64 {
	sum := decimal.Zero
	for _, lt := range lineTotals {
		if math.IsNaN(lt) || math.IsInf(lt, 0) {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(lt))
	}
	return sum.Round(2).InexactFloat64()
}
