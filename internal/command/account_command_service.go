package command

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghazal-mohammad/advanced-banking-system/internal/account"
	"github.com/ghazal-mohammad/advanced-banking-system/internal/events"
	"github.com/ghazal-mohammad/advanced-banking-system/internal/models"
	"github.com/ghazal-mohammad/advanced-banking-system/internal/utils"
)

// Checking accounts open with this overdraft allowance unless the request
// sets one explicitly.
var defaultOverdraftLimit = decimal.NewFromInt(500)

type OpenAccountCommand struct {
	OwnerID        string
	Kind           models.AccountKind
	OverdraftLimit decimal.Decimal  // checking
	LoanPrincipal  decimal.Decimal  // loan
	RiskLevel      models.RiskLevel // investment
}

// AccountCommandService owns account lifecycle writes: opening, state
// transitions and interest accrual.
type AccountCommandService struct {
	accounts     AccountStore
	transactions TransactionStore
	interest     *account.InterestCalculator
	notifier     Notifier
	locks        *LockRegistry
}

func NewAccountCommandService(
	accounts AccountStore,
	transactions TransactionStore,
	interest *account.InterestCalculator,
	notifier Notifier,
	locks *LockRegistry,
) *AccountCommandService {
	return &AccountCommandService{
		accounts:     accounts,
		transactions: transactions,
		interest:     interest,
		notifier:     notifier,
		locks:        locks,
	}
}

// OpenAccount creates an account in the Active state. Savings, checking and
// investment accounts open with a zero balance; loan accounts open with a
// negative balance equal to the principal.
func (s *AccountCommandService) OpenAccount(ctx context.Context, cmd OpenAccountCommand) (*models.Account, error) {
	now := time.Now().UTC()
	a := &models.Account{
		ID:            uuid.NewString(),
		AccountNumber: utils.GenerateAccountNumber(),
		OwnerID:       cmd.OwnerID,
		Kind:          cmd.Kind,
		State:         models.StateActive,
		Balance:       decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	switch cmd.Kind {
	case models.KindSavings:
	case models.KindChecking:
		a.OverdraftLimit = cmd.OverdraftLimit
		if a.OverdraftLimit.IsZero() {
			a.OverdraftLimit = defaultOverdraftLimit
		}
	case models.KindLoan:
		if cmd.LoanPrincipal.LessThanOrEqual(decimal.Zero) {
			return nil, models.ErrInvalidAmount
		}
		a.LoanPrincipal = cmd.LoanPrincipal
		a.Balance = cmd.LoanPrincipal.Neg()
	case models.KindInvestment:
		a.RiskLevel = cmd.RiskLevel
		if a.RiskLevel == "" {
			a.RiskLevel = models.RiskMedium
		}
	default:
		return nil, models.ErrUnknownAccountType
	}

	if err := s.accounts.Save(ctx, a); err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, events.Notification{
		Type:       events.AccountOpened,
		Message:    fmt.Sprintf("%s account %s opened", a.Kind, a.AccountNumber),
		TargetRole: events.RoleCustomer,
	})
	return a, nil
}

// ChangeState applies a lifecycle event under the account's lock. The
// returned flag is false for a re-entrant transition (the account was
// already in the requested state), which is reported, not an error.
func (s *AccountCommandService) ChangeState(ctx context.Context, accountNumber string, event account.LifecycleEvent) (*models.Account, bool, error) {
	release := s.locks.Acquire(accountNumber)
	defer release()

	a, err := s.accounts.Load(ctx, accountNumber)
	if err != nil {
		return nil, false, err
	}
	changed, err := account.Transition(a, event)
	if err != nil {
		return nil, false, err
	}
	if !changed {
		return a, false, nil
	}
	a.UpdatedAt = time.Now().UTC()
	if err := s.accounts.Save(ctx, a); err != nil {
		return nil, false, err
	}
	s.notifier.Notify(ctx, events.Notification{
		Type:       events.AccountStateChanged,
		Message:    fmt.Sprintf("account %s is now %s", a.AccountNumber, a.State),
		TargetRole: events.RoleCustomer,
	})
	return a, true, nil
}

// AccrueInterest computes the current interest amount for the account and
// applies it: a credit for savings and investment accounts, a charge added
// to the debt for loans, nothing for checking. The applied amount is
// recorded as a completed interest transaction.
func (s *AccountCommandService) AccrueInterest(ctx context.Context, accountNumber string) (*models.Transaction, error) {
	release := s.locks.Acquire(accountNumber)
	defer release()

	a, err := s.accounts.Load(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	amount, err := s.interest.Calculate(a)
	if err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return nil, nil
	}
	if a.State != models.StateActive && a.State != models.StateFrozen {
		return nil, models.ErrInvalidStateTransition
	}

	now := time.Now().UTC()
	tx := &models.Transaction{
		ID:          uuid.NewString(),
		Type:        models.TypeInterest,
		Amount:      amount.Abs(),
		To:          a.AccountNumber,
		Status:      models.StatusCompleted,
		PerformedBy: "system",
		CreatedAt:   now,
		ExecutedAt:  &now,
	}

	if a.Kind == models.KindLoan {
		// Interest on a loan grows the debt.
		a.Balance = a.Balance.Sub(amount)
		tx.Description = fmt.Sprintf("interest charge of %s", amount)
	} else {
		a.Balance = a.Balance.Add(amount)
		tx.Description = fmt.Sprintf("interest credit of %s", amount)
	}
	a.UpdatedAt = now

	if err := s.accounts.Save(ctx, a); err != nil {
		return nil, err
	}
	if err := s.transactions.Save(ctx, tx); err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, events.Notification{
		Type:          events.InterestAccrued,
		Message:       tx.Description + " on account " + a.AccountNumber,
		TransactionID: tx.ID,
		TargetRole:    events.RoleCustomer,
	})
	return tx, nil
}
