// Package account holds the pure domain rules for ledger entries: the
// lifecycle state machine, interest calculation and overdraft protection.
// It performs no I/O; persistence and locking live in the command layer.
package account

import (
	"github.com/shopspring/decimal"

	"github.com/ghazal-mohammad/advanced-banking-system/internal/models"
)

// LifecycleEvent is a requested state transition.
type LifecycleEvent string

const (
	EventFreeze   LifecycleEvent = "freeze"
	EventSuspend  LifecycleEvent = "suspend"
	EventActivate LifecycleEvent = "activate"
	EventClose    LifecycleEvent = "close"
)

// target maps a lifecycle event to the state it requests.
func (e LifecycleEvent) target() (models.LifecycleState, error) {
	switch e {
	case EventFreeze:
		return models.StateFrozen, nil
	case EventSuspend:
		return models.StateSuspended, nil
	case EventActivate:
		return models.StateActive, nil
	case EventClose:
		return models.StateClosed, nil
	default:
		return "", models.ErrInvalidStateTransition
	}
}

// Transition applies a lifecycle event to the account. It returns true when
// the state changed and false for a re-entrant transition (already in the
// requested state), which is not an error. Closed is terminal: every event
// other than a re-entrant close fails with ErrInvalidStateTransition.
func Transition(a *models.Account, event LifecycleEvent) (bool, error) {
	next, err := event.target()
	if err != nil {
		return false, err
	}
	if a.State == next {
		return false, nil
	}
	if a.State == models.StateClosed {
		return false, models.ErrInvalidStateTransition
	}
	a.State = next
	return true, nil
}

// Deposit credits the account. Permitted in Active and Frozen states only;
// the amount must be strictly positive. No mutation happens on error.
func Deposit(a *models.Account, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return models.ErrInvalidAmount
	}
	switch a.State {
	case models.StateActive, models.StateFrozen:
		a.Balance = a.Balance.Add(amount)
		return nil
	default:
		return models.ErrInvalidStateTransition
	}
}

// Withdraw debits the account. Permitted in the Active state only. Checking
// accounts may draw into negative balance while balance + overdraft limit
// covers the amount; the returned flag reports whether overdraft was used.
// Every other kind requires balance >= amount. No mutation happens on error.
func Withdraw(a *models.Account, amount decimal.Decimal) (overdraftUsed bool, err error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return false, models.ErrInvalidAmount
	}
	if a.State != models.StateActive {
		return false, models.ErrInvalidStateTransition
	}
	if a.Kind == models.KindChecking && a.Balance.Add(a.OverdraftLimit).GreaterThanOrEqual(amount) {
		overdraftUsed = amount.GreaterThan(a.Balance)
		a.Balance = a.Balance.Sub(amount)
		return overdraftUsed, nil
	}
	if a.Balance.LessThan(amount) {
		return false, models.ErrInsufficientFunds
	}
	a.Balance = a.Balance.Sub(amount)
	return false, nil
}
