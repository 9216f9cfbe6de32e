package customer

import (
	"xyzbank/internal/domain/loan"

	"github.com/shopspring/decimal"
)

// IncomeMultiplier caps outstanding debt relative to annual income.
const IncomeMultiplier = 4

// Eligible reports whether a customer with the given income may carry the
// given outstanding balance: totalAmountLeft <= 4 * income. Decimal
// arithmetic keeps the boundary exact.
func Eligible(annualIncome, totalAmountLeft loan.Money) bool {
	limit := decimal.NewFromFloat(annualIncome).Mul(decimal.NewFromInt(IncomeMultiplier))
	return decimal.NewFromFloat(totalAmountLeft).LessThanOrEqual(limit)
}

func TotalAmountLeft(loans []loan.Loan) loan.Money {
	total := decimal.Zero
	for _, l := range loans {
		total = total.Add(decimal.NewFromFloat(l.AmountLeft))
	}
	f, _ := total.Float64()
	return f
}
