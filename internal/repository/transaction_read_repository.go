package repository

import (
	"context"
	"database/sql"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ghazal-mohammad/advanced-banking-system/internal/models"
	sharedredis "github.com/ghazal-mohammad/advanced-banking-system/internal/redis"
)

// TransactionReadRepository handles all read operations for transactions.
// Single records are served from Redis with a PostgreSQL fallback; listings
// always come from PostgreSQL so ordering and completeness hold.
type TransactionReadRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[models.TransactionView]
}

func NewTransactionReadRepository(db *sql.DB, redisClient *goredis.Client) *TransactionReadRepository {
	return &TransactionReadRepository{
		db:    db,
		cache: sharedredis.NewViewCache[models.TransactionView](redisClient, 0),
	}
}

// GetByID returns a TransactionView by attempting Redis first, then
// PostgreSQL, warming the cache on a fallback hit.
func (r *TransactionReadRepository) GetByID(ctx context.Context, id string) (*models.TransactionView, error) {
	if view, ok := r.cache.Get(ctx, transactionViewKey(id)); ok {
		return view, nil
	}

	query := selectTransactions + ` WHERE id = $1`
	transaction, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, models.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	view := transactionToView(transaction)
	r.cache.Set(ctx, transactionViewKey(id), view)
	return view, nil
}

// ListByAccountNumber returns the account's history, newest first.
func (r *TransactionReadRepository) ListByAccountNumber(ctx context.Context, accountNumber string) ([]models.TransactionView, error) {
	query := selectTransactions + `
		WHERE from_account = $1 OR to_account = $1
		ORDER BY created_at DESC`
	return r.queryViews(ctx, query, accountNumber)
}

// ListPendingManagerApproval returns the manager's approval queue, newest
// first.
func (r *TransactionReadRepository) ListPendingManagerApproval(ctx context.Context) ([]models.TransactionView, error) {
	query := selectTransactions + `
		WHERE status = $1
		ORDER BY created_at DESC`
	return r.queryViews(ctx, query, models.StatusPendingManagerApproval)
}

func (r *TransactionReadRepository) queryViews(ctx context.Context, query string, args ...any) ([]models.TransactionView, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var views []models.TransactionView
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		views = append(views, *transactionToView(transaction))
	}
	return views, rows.Err()
}
