package repository

import (
	"context"
	"database/sql"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ghazal-mohammad/advanced-banking-system/internal/models"
	sharedredis "github.com/ghazal-mohammad/advanced-banking-system/internal/redis"
)

// TransactionRepository handles all state-mutating operations for the audit
// records. Save is an idempotent upsert keyed by transaction ID: saving the
// same ID twice leaves exactly one row carrying the latest status.
type TransactionRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[models.TransactionView]
}

func NewTransactionRepository(db *sql.DB, redisClient *goredis.Client) *TransactionRepository {
	return &TransactionRepository{
		db:    db,
		cache: sharedredis.NewViewCache[models.TransactionView](redisClient, 0),
	}
}

func (r *TransactionRepository) Save(ctx context.Context, transaction *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, type, amount, from_account, to_account, status, description, failure_reason, performed_by, created_at, executed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			description = EXCLUDED.description,
			failure_reason = EXCLUDED.failure_reason,
			executed_at = EXCLUDED.executed_at
	`
	var executedAt sql.NullTime
	if transaction.ExecutedAt != nil {
		executedAt = sql.NullTime{Time: *transaction.ExecutedAt, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query,
		transaction.ID, transaction.Type, transaction.Amount,
		nullString(transaction.From), nullString(transaction.To),
		transaction.Status, transaction.Description,
		nullString(transaction.FailureReason), transaction.PerformedBy,
		transaction.CreatedAt, executedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	r.cache.Set(ctx, transactionViewKey(transaction.ID), transactionToView(transaction))
	return nil
}

func (r *TransactionRepository) LoadByID(ctx context.Context, id string) (*models.Transaction, error) {
	query := selectTransactions + ` WHERE id = $1`
	transaction, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, models.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}
	return transaction, nil
}

// ListByAccount returns every audit record referencing the account as source
// or destination, newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountNumber string) ([]models.Transaction, error) {
	query := selectTransactions + `
		WHERE from_account = $1 OR to_account = $1
		ORDER BY created_at DESC`
	return r.queryTransactions(ctx, query, accountNumber)
}

func (r *TransactionRepository) ListPendingManagerApproval(ctx context.Context) ([]models.Transaction, error) {
	query := selectTransactions + `
		WHERE status = $1
		ORDER BY created_at DESC`
	return r.queryTransactions(ctx, query, models.StatusPendingManagerApproval)
}

// TransitionStatus atomically moves the record from one status to another.
// The WHERE clause makes the update a compare-and-set: a record that has
// already left `from` matches zero rows and the transition reports false.
func (r *TransactionRepository) TransitionStatus(ctx context.Context, id string, from, to models.TransactionStatus) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET status = $3 WHERE id = $1 AND status = $2`,
		id, from, to)
	if err != nil {
		return false, fmt.Errorf("failed to update transaction status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return false, nil
	}
	r.cache.Delete(ctx, transactionViewKey(id))
	return true, nil
}

const selectTransactions = `
	SELECT id, type, amount, from_account, to_account, status, description, failure_reason, performed_by, created_at, executed_at
	FROM transactions`

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var transaction models.Transaction
	var from, to, failureReason sql.NullString
	var executedAt sql.NullTime
	err := row.Scan(
		&transaction.ID, &transaction.Type, &transaction.Amount,
		&from, &to, &transaction.Status, &transaction.Description,
		&failureReason, &transaction.PerformedBy,
		&transaction.CreatedAt, &executedAt,
	)
	if err != nil {
		return nil, err
	}
	transaction.From = from.String
	transaction.To = to.String
	transaction.FailureReason = failureReason.String
	if executedAt.Valid {
		transaction.ExecutedAt = &executedAt.Time
	}
	return &transaction, nil
}

func (r *TransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *transaction)
	}
	return transactions, rows.Err()
}

func transactionToView(t *models.Transaction) *models.TransactionView {
	return &models.TransactionView{
		ID:            t.ID,
		Type:          t.Type,
		Amount:        t.Amount,
		From:          t.From,
		To:            t.To,
		Status:        t.Status,
		Description:   t.Description,
		FailureReason: t.FailureReason,
		CreatedAt:     t.CreatedAt,
	}
}

func transactionViewKey(id string) string {
	return "transaction:view:" + id
}
