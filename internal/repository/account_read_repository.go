package repository

import (
	"context"
	"database/sql"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ghazal-mohammad/advanced-banking-system/internal/models"
	sharedredis "github.com/ghazal-mohammad/advanced-banking-system/internal/redis"
)

// AccountReadRepository handles all read operations for accounts. It uses
// Redis as the primary read store, falling back to PostgreSQL on a miss.
type AccountReadRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[models.AccountView]
}

func NewAccountReadRepository(db *sql.DB, redisClient *goredis.Client) *AccountReadRepository {
	return &AccountReadRepository{
		db:    db,
		cache: sharedredis.NewViewCache[models.AccountView](redisClient, 0),
	}
}

// GetView returns an AccountView by attempting Redis first, then PostgreSQL.
func (r *AccountReadRepository) GetView(ctx context.Context, accountNumber string) (*models.AccountView, error) {
	if view, ok := r.cache.Get(ctx, accountViewKey(accountNumber)); ok {
		return view, nil
	}

	query := selectAccounts + ` WHERE account_number = $1`
	account, err := scanAccount(r.db.QueryRowContext(ctx, query, accountNumber))
	if err == sql.ErrNoRows {
		return nil, models.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	view := accountToView(account)
	r.cache.Set(ctx, accountViewKey(accountNumber), view)
	return view, nil
}

// ListViewsByOwner returns the views of every account owned by ownerID.
func (r *AccountReadRepository) ListViewsByOwner(ctx context.Context, ownerID string) ([]models.AccountView, error) {
	query := selectAccounts + ` WHERE owner_id = $1 ORDER BY created_at`
	return r.queryViews(ctx, query, ownerID)
}

// ListAllViews returns every account view, oldest first.
func (r *AccountReadRepository) ListAllViews(ctx context.Context) ([]models.AccountView, error) {
	return r.queryViews(ctx, selectAccounts+` ORDER BY created_at`)
}

func (r *AccountReadRepository) queryViews(ctx context.Context, query string, args ...any) ([]models.AccountView, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var views []models.AccountView
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		views = append(views, *accountToView(account))
	}
	return views, rows.Err()
}
