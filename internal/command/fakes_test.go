package command

import (
	"context"
	"sync"

	"github.com/ghazal-mohammad/advanced-banking-system/internal/events"
	"github.com/ghazal-mohammad/advanced-banking-system/internal/models"
)

// ---- in-memory stores ----

type memAccountStore struct {
	mu       sync.Mutex
	accounts map[string]models.Account
}

func newMemAccountStore() *memAccountStore {
	return &memAccountStore{accounts: make(map[string]models.Account)}
}

func (s *memAccountStore) Save(_ context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.AccountNumber] = *account
	return nil
}

func (s *memAccountStore) Load(_ context.Context, accountNumber string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[accountNumber]
	if !ok {
		return nil, models.ErrAccountNotFound
	}
	copied := a
	return &copied, nil
}

func (s *memAccountStore) ListByOwner(_ context.Context, ownerID string) ([]models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Account
	for _, a := range s.accounts {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memAccountStore) ListAll(_ context.Context) ([]models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	return out, nil
}

type memTransactionStore struct {
	mu    sync.Mutex
	order []string
	txs   map[string]models.Transaction
}

func newMemTransactionStore() *memTransactionStore {
	return &memTransactionStore{txs: make(map[string]models.Transaction)}
}

// Save is an upsert keyed by ID, matching the store contract.
func (s *memTransactionStore) Save(_ context.Context, transaction *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.txs[transaction.ID]; !ok {
		s.order = append(s.order, transaction.ID)
	}
	s.txs[transaction.ID] = *transaction
	return nil
}

func (s *memTransactionStore) LoadByID(_ context.Context, id string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txs[id]
	if !ok {
		return nil, models.ErrTransactionNotFound
	}
	copied := tx
	return &copied, nil
}

func (s *memTransactionStore) ListByAccount(_ context.Context, accountNumber string) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Transaction
	for i := len(s.order) - 1; i >= 0; i-- {
		tx := s.txs[s.order[i]]
		if tx.From == accountNumber || tx.To == accountNumber {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *memTransactionStore) ListPendingManagerApproval(_ context.Context) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Transaction
	for i := len(s.order) - 1; i >= 0; i-- {
		if tx := s.txs[s.order[i]]; tx.Status == models.StatusPendingManagerApproval {
			out = append(out, tx)
		}
	}
	return out, nil
}

// TransitionStatus is the compare-and-set of the store contract: the check
// and the write happen under one lock, like the SQL WHERE-status update.
func (s *memTransactionStore) TransitionStatus(_ context.Context, id string, from, to models.TransactionStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txs[id]
	if !ok || tx.Status != from {
		return false, nil
	}
	tx.Status = to
	s.txs[id] = tx
	return true, nil
}

func (s *memTransactionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.txs)
}

// ---- recording notifier ----

type recordingNotifier struct {
	mu     sync.Mutex
	events []events.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, event events.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) byType(eventType string) []events.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []events.Notification
	for _, e := range n.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}
