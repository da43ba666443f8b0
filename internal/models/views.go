package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountView is the read-optimised projection of an account.
// OwnerID is populated for ownership checks but never serialised.
type AccountView struct {
	AccountNumber  string          `json:"accountNumber"`
	OwnerID        string          `json:"-"`
	Kind           AccountKind     `json:"kind"`
	State          LifecycleState  `json:"state"`
	Balance        decimal.Decimal `json:"balance"`
	OverdraftLimit decimal.Decimal `json:"overdraftLimit"`
	RiskLevel      RiskLevel       `json:"riskLevel,omitempty"`
	CreatedAt      time.Time       `json:"createdTimestamp"`
	UpdatedAt      time.Time       `json:"updatedTimestamp"`
}

// TransactionView is the read-optimised projection of a transaction.
type TransactionView struct {
	ID            string            `json:"id"`
	Type          TransactionType   `json:"type"`
	Amount        decimal.Decimal   `json:"amount"`
	From          string            `json:"fromAccount,omitempty"`
	To            string            `json:"toAccount,omitempty"`
	Status        TransactionStatus `json:"status"`
	Description   string            `json:"description"`
	FailureReason string            `json:"failureReason,omitempty"`
	CreatedAt     time.Time         `json:"createdTimestamp"`
}
