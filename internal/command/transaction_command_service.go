package command

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghazal-mohammad/advanced-banking-system/internal/account"
	"github.com/ghazal-mohammad/advanced-banking-system/internal/approval"
	"github.com/ghazal-mohammad/advanced-banking-system/internal/events"
	"github.com/ghazal-mohammad/advanced-banking-system/internal/models"
)

// ProcessTransactionCommand is a request to move money. Deposits carry no
// From, withdrawals no To; transfers carry both.
type ProcessTransactionCommand struct {
	Type        models.TransactionType
	Amount      decimal.Decimal
	From        string
	To          string
	PerformedBy string
	Description string
}

// TransactionCommandService is the transaction processing core. It builds
// the audit record, runs it through the approval pipeline and, when
// approved, executes the money movement under the involved accounts' locks.
// The record is persisted on every path, including rejection and failure.
type TransactionCommandService struct {
	accounts     AccountStore
	transactions TransactionStore
	pipeline     *approval.Pipeline
	notifier     Notifier
	locks        *LockRegistry
	inFlight     atomic.Int64
}

func NewTransactionCommandService(
	accounts AccountStore,
	transactions TransactionStore,
	pipeline *approval.Pipeline,
	notifier Notifier,
	locks *LockRegistry,
) *TransactionCommandService {
	return &TransactionCommandService{
		accounts:     accounts,
		transactions: transactions,
		pipeline:     pipeline,
		notifier:     notifier,
		locks:        locks,
	}
}

// InFlight reports the number of transactions currently being processed.
func (s *TransactionCommandService) InFlight() int64 {
	return s.inFlight.Load()
}

// ProcessTransaction classifies and, when auto-approved, executes a money
// movement. Amounts above the teller approval limit are persisted as pending
// manager approval without touching any balance. Execution errors are
// recorded on the transaction and returned to the caller.
func (s *TransactionCommandService) ProcessTransaction(ctx context.Context, cmd ProcessTransactionCommand) (*models.Transaction, error) {
	s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		ID:          uuid.NewString(),
		Type:        cmd.Type,
		Amount:      cmd.Amount,
		From:        cmd.From,
		To:          cmd.To,
		Status:      models.StatusPending,
		Description: cmd.Description,
		PerformedBy: cmd.PerformedBy,
		CreatedAt:   time.Now().UTC(),
	}
	if tx.Description == "" {
		tx.Description = describe(tx)
	}

	tx.Status = s.pipeline.Classify(tx.Amount)

	if tx.Status == models.StatusPendingManagerApproval {
		if err := s.transactions.Save(ctx, tx); err != nil {
			return nil, err
		}
		s.notifier.Notify(ctx, events.Notification{
			Type:          events.TransactionPendingApproval,
			Message:       fmt.Sprintf("%s of %s requires manager approval", tx.Type, tx.Amount),
			TransactionID: tx.ID,
			TargetRole:    events.RoleManager,
		})
		return tx, nil
	}

	if err := s.execute(ctx, tx); err != nil {
		s.recordFailure(ctx, tx, err)
		return tx, err
	}

	s.notifier.Notify(ctx, events.Notification{
		Type:          events.TransactionCompleted,
		Message:       fmt.Sprintf("%s of %s completed", tx.Type, tx.Amount),
		TransactionID: tx.ID,
		TargetRole:    events.RoleCustomer,
	})
	return tx, nil
}

// ExecuteApprovedTransaction runs the deferred money movement after a
// manager approval. Any execution failure is converted into a terminal
// Failed status with the reason embedded in the record; it is reported, not
// retried, and never propagates past this boundary.
func (s *TransactionCommandService) ExecuteApprovedTransaction(ctx context.Context, transactionID string) error {
	s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	tx, err := s.transactions.LoadByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if tx.Status != models.StatusApprovedByManager {
		return fmt.Errorf("transaction %s is %s, not approved for execution", tx.ID, tx.Status)
	}

	if err := s.execute(ctx, tx); err != nil {
		if errors.Is(err, errAlreadyExecuted) {
			// A concurrent call got there first; the record is already
			// terminal and no balance may be touched again.
			return err
		}
		s.recordFailure(ctx, tx, err)
		return nil
	}

	s.notifier.Notify(ctx, events.Notification{
		Type:          events.TransactionCompleted,
		Message:       fmt.Sprintf("approved %s of %s completed", tx.Type, tx.Amount),
		TransactionID: tx.ID,
		TargetRole:    events.RoleCustomer,
	})
	return nil
}

// Approve records a manager decision to let a pending transaction run, then
// triggers its deferred execution. The decision is a compare-and-set against
// the pending status, so of two racing decisions exactly one wins and the
// movement executes once.
func (s *TransactionCommandService) Approve(ctx context.Context, transactionID, managerID string) error {
	tx, err := s.transactions.LoadByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if tx.Status != models.StatusPendingManagerApproval {
		return fmt.Errorf("transaction %s is %s, not pending manager approval", tx.ID, tx.Status)
	}
	decided, err := s.transactions.TransitionStatus(ctx, tx.ID, models.StatusPendingManagerApproval, models.StatusApprovedByManager)
	if err != nil {
		return err
	}
	if !decided {
		return fmt.Errorf("transaction %s is no longer pending manager approval", tx.ID)
	}
	s.notifier.Notify(ctx, events.Notification{
		Type:          events.TransactionApproved,
		Message:       fmt.Sprintf("manager %s approved %s of %s", managerID, tx.Type, tx.Amount),
		TransactionID: tx.ID,
		TargetRole:    events.RoleCustomer,
	})
	return s.ExecuteApprovedTransaction(ctx, tx.ID)
}

// Reject records a manager decision to refuse a pending transaction. No
// balance is ever mutated for a rejected transaction.
func (s *TransactionCommandService) Reject(ctx context.Context, transactionID, managerID string) error {
	tx, err := s.transactions.LoadByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if tx.Status != models.StatusPendingManagerApproval {
		return fmt.Errorf("transaction %s is %s, not pending manager approval", tx.ID, tx.Status)
	}
	decided, err := s.transactions.TransitionStatus(ctx, tx.ID, models.StatusPendingManagerApproval, models.StatusRejectedByManager)
	if err != nil {
		return err
	}
	if !decided {
		return fmt.Errorf("transaction %s is no longer pending manager approval", tx.ID)
	}
	s.notifier.Notify(ctx, events.Notification{
		Type:          events.TransactionRejected,
		Message:       fmt.Sprintf("manager %s rejected %s of %s", managerID, tx.Type, tx.Amount),
		TransactionID: tx.ID,
		TargetRole:    events.RoleCustomer,
	})
	return nil
}

// errAlreadyExecuted marks a deferred execution that lost the race to a
// concurrent one: the record is terminal and balances must not move again.
var errAlreadyExecuted = errors.New("transaction already executed")

// execute performs the money movement for an approved transaction. It holds
// every involved account's lock across the balance read, the mutation and
// both persistence calls, so no observer sees a balance change without its
// audit record. For transfers the withdraw runs first; a failure there, or
// on the subsequent deposit, aborts before anything is persisted.
func (s *TransactionCommandService) execute(ctx context.Context, tx *models.Transaction) error {
	release := s.locks.Acquire(tx.From, tx.To)
	defer release()

	// Manager-approved records already exist in the store. Re-check the
	// stored status under the locks: a concurrent execution completes inside
	// this lock scope, so a stale approval can never run twice.
	if tx.Status == models.StatusApprovedByManager {
		stored, err := s.transactions.LoadByID(ctx, tx.ID)
		if err != nil {
			return err
		}
		if stored.Status != models.StatusApprovedByManager {
			return errAlreadyExecuted
		}
	}

	touched := make([]*models.Account, 0, 2)

	var from, to *models.Account
	var err error
	if tx.From != "" {
		if from, err = s.accounts.Load(ctx, tx.From); err != nil {
			return err
		}
	}
	if tx.To != "" {
		if to, err = s.accounts.Load(ctx, tx.To); err != nil {
			return err
		}
	}

	switch tx.Type {
	case models.TypeDeposit:
		if err := account.Deposit(to, tx.Amount); err != nil {
			return err
		}
		touched = append(touched, to)
	case models.TypeWithdraw:
		overdraft, err := account.Withdraw(from, tx.Amount)
		if err != nil {
			return err
		}
		if overdraft {
			tx.Description += " (overdraft used)"
		}
		touched = append(touched, from)
	case models.TypeTransfer:
		overdraft, err := account.Withdraw(from, tx.Amount)
		if err != nil {
			return err
		}
		if err := account.Deposit(to, tx.Amount); err != nil {
			return err
		}
		if overdraft {
			tx.Description += " (overdraft used)"
		}
		touched = append(touched, from, to)
	default:
		return models.ErrUnknownTransactionType
	}

	now := time.Now().UTC()
	tx.ExecutedAt = &now
	tx.Status = models.StatusCompleted

	for _, a := range touched {
		a.UpdatedAt = now
		if err := s.accounts.Save(ctx, a); err != nil {
			return err
		}
	}
	return s.transactions.Save(ctx, tx)
}

// recordFailure persists the transaction as terminally failed with the
// reason embedded. The audit record survives every outcome.
func (s *TransactionCommandService) recordFailure(ctx context.Context, tx *models.Transaction, cause error) {
	tx.Status = models.StatusFailed
	tx.FailureReason = cause.Error()
	if err := s.transactions.Save(ctx, tx); err != nil {
		// The audit write itself failed; nothing left to do but report it.
		s.notifier.Notify(ctx, events.Notification{
			Type:          events.TransactionFailed,
			Message:       fmt.Sprintf("failed to persist failure of transaction %s: %v", tx.ID, err),
			TransactionID: tx.ID,
			TargetRole:    events.RoleTeller,
		})
		return
	}
	s.notifier.Notify(ctx, events.Notification{
		Type:          events.TransactionFailed,
		Message:       fmt.Sprintf("%s of %s failed: %s", tx.Type, tx.Amount, tx.FailureReason),
		TransactionID: tx.ID,
		TargetRole:    events.RoleCustomer,
	})
}

func validateCommand(cmd ProcessTransactionCommand) error {
	if cmd.Amount.LessThanOrEqual(decimal.Zero) {
		return models.ErrInvalidAmount
	}
	switch cmd.Type {
	case models.TypeDeposit:
		if cmd.To == "" {
			return models.ErrMissingAccountNumber
		}
	case models.TypeWithdraw:
		if cmd.From == "" {
			return models.ErrMissingAccountNumber
		}
	case models.TypeTransfer:
		if cmd.From == "" || cmd.To == "" {
			return models.ErrMissingAccountNumber
		}
		if cmd.From == cmd.To {
			return models.ErrSameAccount
		}
	default:
		return models.ErrUnknownTransactionType
	}
	return nil
}

func describe(tx *models.Transaction) string {
	switch tx.Type {
	case models.TypeTransfer:
		return fmt.Sprintf("transfer of %s from %s to %s", tx.Amount, tx.From, tx.To)
	case models.TypeWithdraw:
		return fmt.Sprintf("withdrawal of %s from %s", tx.Amount, tx.From)
	default:
		return fmt.Sprintf("%s of %s", tx.Type, tx.Amount)
	}
}
