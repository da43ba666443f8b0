package account

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ghazal-mohammad/advanced-banking-system/internal/models"
)

// BalanceOperations is the account-like surface the overdraft decorator
// wraps. Entry adapts a concrete account; decorators may wrap each other.
type BalanceOperations interface {
	Deposit(amount decimal.Decimal) error
	Withdraw(amount decimal.Decimal) error
	TotalBalance() decimal.Decimal
}

// Entry adapts a mutable Account to BalanceOperations using the state
// machine rules in this package.
type Entry struct {
	Account *models.Account
}

func (e Entry) Deposit(amount decimal.Decimal) error {
	return Deposit(e.Account, amount)
}

func (e Entry) Withdraw(amount decimal.Decimal) error {
	_, err := Withdraw(e.Account, amount)
	return err
}

func (e Entry) TotalBalance() decimal.Decimal {
	return e.Account.Balance
}

// OverdraftLimitExceededError reports a withdrawal that would exceed the
// wrapped balance plus the protection limit. Nothing is mutated.
type OverdraftLimitExceededError struct {
	Limit     decimal.Decimal
	Requested decimal.Decimal
}

func (e *OverdraftLimitExceededError) Error() string {
	return fmt.Sprintf("withdrawal of %s exceeds overdraft limit %s", e.Requested, e.Limit)
}

// OverdraftProtection extends withdrawals beyond zero balance up to a
// configured limit. All other operations delegate unchanged.
type OverdraftProtection struct {
	wrapped BalanceOperations
	limit   decimal.Decimal
}

func NewOverdraftProtection(wrapped BalanceOperations, limit decimal.Decimal) *OverdraftProtection {
	return &OverdraftProtection{wrapped: wrapped, limit: limit}
}

func (o *OverdraftProtection) Withdraw(amount decimal.Decimal) error {
	allowed := o.wrapped.TotalBalance().Add(o.limit)
	if amount.GreaterThan(allowed) {
		return &OverdraftLimitExceededError{Limit: o.limit, Requested: amount}
	}
	return o.wrapped.Withdraw(amount)
}

func (o *OverdraftProtection) Deposit(amount decimal.Decimal) error {
	return o.wrapped.Deposit(amount)
}

func (o *OverdraftProtection) TotalBalance() decimal.Decimal {
	return o.wrapped.TotalBalance()
}
