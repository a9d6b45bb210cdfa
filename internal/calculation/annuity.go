package calculation

import (
	"math"

	"github.com/shopspring/decimal"
)

// FutureValueOfAnnuity returns the value of equal end-of-month contributions
// after months periods, compounding monthly at annualRate/12.
// A zero rate degenerates to simple accumulation.
func FutureValueOfAnnuity(contribution, annualRate float64, months int) float64 {
	if months <= 0 {
		return 0
	}
	monthlyRate := annualRate / 12
	if monthlyRate == 0 {
		return contribution * float64(months)
	}
	return contribution * ((math.Pow(1+monthlyRate, float64(months)) - 1) / monthlyRate)
}

// wholeUnits rounds a non-negative amount half-up to whole currency units
func wholeUnits(x float64) decimal.Decimal {
	return decimal.NewFromFloat(math.Round(x))
}

// scaleWholeUnits multiplies an amount by factor and rounds to whole units
func scaleWholeUnits(amount, factor decimal.Decimal) decimal.Decimal {
	return amount.Mul(factor).Round(0)
}
