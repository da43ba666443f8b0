package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LifecycleState is the behavioural state of an account. It controls which
// operations the account accepts; Closed is terminal.
type LifecycleState string

const (
	StateActive    LifecycleState = "active"
	StateFrozen    LifecycleState = "frozen"
	StateSuspended LifecycleState = "suspended"
	StateClosed    LifecycleState = "closed"
)

// AccountKind selects balance rules and the interest calculation.
type AccountKind string

const (
	KindSavings    AccountKind = "savings"
	KindChecking   AccountKind = "checking"
	KindLoan       AccountKind = "loan"
	KindInvestment AccountKind = "investment"
)

// RiskLevel scales the volatility term of investment interest.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

type TransactionType string

const (
	TypeDeposit  TransactionType = "deposit"
	TypeWithdraw TransactionType = "withdraw"
	TypeTransfer TransactionType = "transfer"
	TypeInterest TransactionType = "interest"
)

// TransactionStatus moves monotonically along one of two paths:
//
//	pending → approved_small|approved_large → completed
//	pending → pending_manager_approval → approved_by_manager → completed
//	                                   → rejected_by_manager
//
// completed, rejected_by_manager and failed are terminal.
type TransactionStatus string

const (
	StatusPending                TransactionStatus = "pending"
	StatusApprovedSmall          TransactionStatus = "approved_small"
	StatusApprovedLarge          TransactionStatus = "approved_large"
	StatusPendingManagerApproval TransactionStatus = "pending_manager_approval"
	StatusApprovedByManager      TransactionStatus = "approved_by_manager"
	StatusRejectedByManager      TransactionStatus = "rejected_by_manager"
	StatusCompleted              TransactionStatus = "completed"
	StatusFailed                 TransactionStatus = "failed"
)

// Terminal reports whether a transaction in this status is immutable.
func (s TransactionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusRejectedByManager || s == StatusFailed
}

// Account is the write model for a ledger entry. Balance is the sum of all
// completed transactions touching the account; it may be negative only for
// loan accounts and checking accounts drawing on their overdraft.
type Account struct {
	ID             string          `json:"id"`
	AccountNumber  string          `json:"accountNumber"`
	OwnerID        string          `json:"-"`
	Kind           AccountKind     `json:"kind"`
	State          LifecycleState  `json:"state"`
	Balance        decimal.Decimal `json:"balance"`
	OverdraftLimit decimal.Decimal `json:"overdraftLimit"`      // checking only
	LoanPrincipal  decimal.Decimal `json:"loanPrincipal"`       // loan only
	RiskLevel      RiskLevel       `json:"riskLevel,omitempty"` // investment only
	CreatedAt      time.Time       `json:"createdTimestamp"`
	UpdatedAt      time.Time       `json:"updatedTimestamp"`
}

// Transaction is the audit record of a money movement. Records are created
// in StatusPending, never deleted, and immutable once terminal. From and To
// hold account numbers; deposits have no From, withdrawals no To.
type Transaction struct {
	ID            string            `json:"id"`
	Type          TransactionType   `json:"type"`
	Amount        decimal.Decimal   `json:"amount"`
	From          string            `json:"fromAccount,omitempty"`
	To            string            `json:"toAccount,omitempty"`
	Status        TransactionStatus `json:"status"`
	Description   string            `json:"description"`
	FailureReason string            `json:"failureReason,omitempty"`
	PerformedBy   string            `json:"performedBy"`
	CreatedAt     time.Time         `json:"createdTimestamp"`
	ExecutedAt    *time.Time        `json:"executedTimestamp,omitempty"`
}
