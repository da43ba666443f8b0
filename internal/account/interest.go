package account

import (
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/ghazal-mohammad/advanced-banking-system/internal/models"
)

// Annual rates per account kind. Loan interest is charged monthly on the
// absolute debt; investment interest adds a volatility term on top of the
// base rate.
var (
	savingsRate        = decimal.RequireFromString("0.04")
	loanRate           = decimal.RequireFromString("0.07")
	investmentBaseRate = decimal.RequireFromString("0.09")
	monthsPerYear      = decimal.NewFromInt(12)
)

// InterestCalculator computes interest for a balance without touching the
// account. The random source drives the investment volatility term; inject a
// seeded rand.New(rand.NewSource(n)) in tests to pin it.
type InterestCalculator struct {
	rng *rand.Rand
}

func NewInterestCalculator(rng *rand.Rand) *InterestCalculator {
	return &InterestCalculator{rng: rng}
}

// Calculate returns the interest amount for the account's current balance.
//
//	savings:    balance * 4%, zero on negative balances
//	checking:   always zero
//	loan:       |balance| * 7% / 12 (monthly charge on the debt)
//	investment: balance * (9% + volatility * risk), zero on non-positive
//	            balances; volatility is uniform in [-10%, +10%]
func (c *InterestCalculator) Calculate(a *models.Account) (decimal.Decimal, error) {
	switch a.Kind {
	case models.KindSavings:
		if a.Balance.IsNegative() {
			return decimal.Zero, nil
		}
		return a.Balance.Mul(savingsRate), nil
	case models.KindChecking:
		return decimal.Zero, nil
	case models.KindLoan:
		return a.Balance.Abs().Mul(loanRate).Div(monthsPerYear), nil
	case models.KindInvestment:
		if a.Balance.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, nil
		}
		volatility := decimal.NewFromFloat(c.rng.Float64()*0.20 - 0.10)
		rate := investmentBaseRate.Add(volatility.Mul(riskMultiplier(a.RiskLevel)))
		return a.Balance.Mul(rate), nil
	default:
		return decimal.Zero, models.ErrUnknownAccountType
	}
}

func riskMultiplier(level models.RiskLevel) decimal.Decimal {
	switch level {
	case models.RiskLow:
		return decimal.RequireFromString("0.5")
	case models.RiskHigh:
		return decimal.NewFromInt(2)
	default:
		return decimal.NewFromInt(1)
	}
}
