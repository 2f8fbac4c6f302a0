package sales

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Percent returns 100*qualifying/total rounded half-up to two places, or nil
// when total is zero.
func Percent(qualifying, total int64) *float64 {
	if total == 0 {
		return nil
	}
	v, _ := decimal.NewFromInt(qualifying).
		Mul(hundred).
		Div(decimal.NewFromInt(total)).
		Round(2).
		Float64()
	return &v
}

// Fraction scales a percentage back to the 0..1 range, keeping nil as nil.
func Fraction(pct *float64) *float64 {
	if pct == nil {
		return nil
	}
	v, _ := decimal.NewFromFloat(*pct).Div(hundred).Round(4).Float64()
	return &v
}
