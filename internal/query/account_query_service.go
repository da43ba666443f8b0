package query

import (
	"context"
	"fmt"

	"github.com/ghazal-mohammad/advanced-banking-system/internal/events"
	"github.com/ghazal-mohammad/advanced-banking-system/internal/models"
	"github.com/ghazal-mohammad/advanced-banking-system/internal/repository"
)

// ---------- Account queries ----------

// GetAccountQuery fetches a single account by account number. Customers may
// only see their own accounts; tellers and managers see all.
type GetAccountQuery struct {
	AccountNumber    string
	RequestingUserID string
	RequestingRole   string
}

// ListAccountsQuery fetches all accounts belonging to an owner.
type ListAccountsQuery struct {
	OwnerID string
}

// AccountQueryService serves account reads from the Redis read model,
// falling back to Postgres on a miss.
type AccountQueryService struct {
	readRepo *repository.AccountReadRepository
}

func NewAccountQueryService(readRepo *repository.AccountReadRepository) *AccountQueryService {
	return &AccountQueryService{readRepo: readRepo}
}

func (s *AccountQueryService) GetAccount(ctx context.Context, q GetAccountQuery) (*models.AccountView, error) {
	view, err := s.readRepo.GetView(ctx, q.AccountNumber)
	if err != nil {
		return nil, err
	}
	if q.RequestingRole == events.RoleCustomer && view.OwnerID != q.RequestingUserID {
		return nil, fmt.Errorf("forbidden")
	}
	return view, nil
}

func (s *AccountQueryService) ListAccounts(ctx context.Context, q ListAccountsQuery) ([]models.AccountView, error) {
	return s.readRepo.ListViewsByOwner(ctx, q.OwnerID)
}

func (s *AccountQueryService) ListAllAccounts(ctx context.Context) ([]models.AccountView, error) {
	return s.readRepo.ListAllViews(ctx)
}
