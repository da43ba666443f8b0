package repository

import (
	"context"
	"database/sql"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ghazal-mohammad/advanced-banking-system/internal/models"
	sharedredis "github.com/ghazal-mohammad/advanced-banking-system/internal/redis"
)

// AccountRepository handles all state-mutating operations for accounts.
// It operates against the PostgreSQL write store (source of truth) and warms
// the Redis read model after every successful write.
type AccountRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[models.AccountView]
}

func NewAccountRepository(db *sql.DB, redisClient *goredis.Client) *AccountRepository {
	return &AccountRepository{
		db:    db,
		cache: sharedredis.NewViewCache[models.AccountView](redisClient, 0),
	}
}

// Save upserts the full write model, keyed by account number. Every field is
// round-tripped, including lifecycle state and the kind-specific columns.
func (r *AccountRepository) Save(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, account_number, owner_id, kind, state, balance, overdraft_limit, loan_principal, risk_level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (account_number) DO UPDATE SET
			state = EXCLUDED.state,
			balance = EXCLUDED.balance,
			overdraft_limit = EXCLUDED.overdraft_limit,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		account.ID, account.AccountNumber, account.OwnerID,
		account.Kind, account.State, account.Balance,
		account.OverdraftLimit, account.LoanPrincipal,
		nullString(string(account.RiskLevel)),
		account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	r.cache.Set(ctx, accountViewKey(account.AccountNumber), accountToView(account))
	return nil
}

// Load fetches the full write model by account number.
func (r *AccountRepository) Load(ctx context.Context, accountNumber string) (*models.Account, error) {
	query := selectAccounts + ` WHERE account_number = $1`
	account, err := scanAccount(r.db.QueryRowContext(ctx, query, accountNumber))
	if err == sql.ErrNoRows {
		return nil, models.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return account, nil
}

func (r *AccountRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Account, error) {
	query := selectAccounts + ` WHERE owner_id = $1 ORDER BY created_at`
	return r.queryAccounts(ctx, query, ownerID)
}

func (r *AccountRepository) ListAll(ctx context.Context) ([]models.Account, error) {
	return r.queryAccounts(ctx, selectAccounts+` ORDER BY created_at`)
}

const selectAccounts = `
	SELECT id, account_number, owner_id, kind, state, balance, overdraft_limit, loan_principal, risk_level, created_at, updated_at
	FROM accounts`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var account models.Account
	var riskLevel sql.NullString
	err := row.Scan(
		&account.ID, &account.AccountNumber, &account.OwnerID,
		&account.Kind, &account.State, &account.Balance,
		&account.OverdraftLimit, &account.LoanPrincipal,
		&riskLevel, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	account.RiskLevel = models.RiskLevel(riskLevel.String)
	return &account, nil
}

func (r *AccountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]models.Account, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *account)
	}
	return accounts, rows.Err()
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func accountToView(a *models.Account) *models.AccountView {
	return &models.AccountView{
		AccountNumber:  a.AccountNumber,
		OwnerID:        a.OwnerID,
		Kind:           a.Kind,
		State:          a.State,
		Balance:        a.Balance,
		OverdraftLimit: a.OverdraftLimit,
		RiskLevel:      a.RiskLevel,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func accountViewKey(accountNumber string) string {
	return "account:view:" + accountNumber
}
