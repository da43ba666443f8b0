package command

import (
	"context"

	"github.com/ghazal-mohammad/advanced-banking-system/internal/events"
	"github.com/ghazal-mohammad/advanced-banking-system/internal/models"
)

// AccountStore persists ledger entries. Load returns
// models.ErrAccountNotFound when no account has the given number. Save must
// round-trip every account field, including lifecycle state and the
// kind-specific fields (overdraft limit, loan principal, risk level).
type AccountStore interface {
	Save(ctx context.Context, account *models.Account) error
	Load(ctx context.Context, accountNumber string) (*models.Account, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Account, error)
	ListAll(ctx context.Context) ([]models.Account, error)
}

// TransactionStore persists audit records. Save is an idempotent upsert
// keyed by transaction ID: persisting the same ID twice leaves one record
// with the latest status. ListByAccount returns newest-first.
// TransitionStatus is a compare-and-set: it moves the record from `from` to
// `to` atomically and reports false when the record was no longer in `from`,
// so concurrent manager decisions cannot both win.
type TransactionStore interface {
	Save(ctx context.Context, transaction *models.Transaction) error
	LoadByID(ctx context.Context, id string) (*models.Transaction, error)
	ListByAccount(ctx context.Context, accountNumber string) ([]models.Transaction, error)
	ListPendingManagerApproval(ctx context.Context) ([]models.Transaction, error)
	TransitionStatus(ctx context.Context, id string, from, to models.TransactionStatus) (bool, error)
}

// Notifier is the fire-and-forget notification sink. Implementations must
// never block or fail the caller; delivery errors are their problem to log.
type Notifier interface {
	Notify(ctx context.Context, event events.Notification)
}
