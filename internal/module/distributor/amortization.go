package distributor

import "github.com/shopspring/decimal"

var (
	one          = decimal.NewFromInt(1)
	monthsInYear = decimal.NewFromInt(12)
)

// MonthlyPayment returns the fixed instalment repaying principal over months
// at annualRate (a fraction, 0.12 for 12%) with monthly compounding, rounded
// to cents. A zero or negative rate spreads the principal evenly.
func MonthlyPayment(principal, annualRate decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(months))
	if annualRate.Sign() <= 0 {
		return principal.DivRound(n, 2)
	}

	r := annualRate.Div(monthsInYear)
	growth := one.Add(r).Pow(n)
	return principal.Mul(r).Mul(growth).Div(growth.Sub(one)).Round(2)
}
