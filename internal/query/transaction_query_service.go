package query

import (
	"context"
	"fmt"

	"github.com/ghazal-mohammad/advanced-banking-system/internal/events"
	"github.com/ghazal-mohammad/advanced-banking-system/internal/models"
	"github.com/ghazal-mohammad/advanced-banking-system/internal/repository"
)

// ---------- Transaction queries ----------

// GetTransactionQuery fetches a single transaction by ID.
type GetTransactionQuery struct {
	TransactionID string
}

// ListTransactionsQuery fetches an account's history, newest first.
// Ownership is checked against the account read model for customers.
type ListTransactionsQuery struct {
	AccountNumber    string
	RequestingUserID string
	RequestingRole   string
}

// TransactionQueryService serves transaction reads: single records, account
// histories and the manager's pending-approval queue.
type TransactionQueryService struct {
	readRepo    *repository.TransactionReadRepository
	accountRepo *repository.AccountReadRepository
}

func NewTransactionQueryService(readRepo *repository.TransactionReadRepository, accountRepo *repository.AccountReadRepository) *TransactionQueryService {
	return &TransactionQueryService{readRepo: readRepo, accountRepo: accountRepo}
}

func (s *TransactionQueryService) GetTransaction(ctx context.Context, q GetTransactionQuery) (*models.TransactionView, error) {
	return s.readRepo.GetByID(ctx, q.TransactionID)
}

// ListTransactions returns an account's history, newest first. The history
// is a read view over the audit records referencing the account.
func (s *TransactionQueryService) ListTransactions(ctx context.Context, q ListTransactionsQuery) ([]models.TransactionView, error) {
	account, err := s.accountRepo.GetView(ctx, q.AccountNumber)
	if err != nil {
		return nil, err
	}
	if q.RequestingRole == events.RoleCustomer && account.OwnerID != q.RequestingUserID {
		return nil, fmt.Errorf("forbidden")
	}
	return s.readRepo.ListByAccountNumber(ctx, q.AccountNumber)
}

// ListPendingApprovals returns the transactions awaiting manager sign-off.
func (s *TransactionQueryService) ListPendingApprovals(ctx context.Context) ([]models.TransactionView, error) {
	return s.readRepo.ListPendingManagerApproval(ctx)
}
