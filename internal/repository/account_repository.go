package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/booksfrog/booksfrog/internal/domain"
)

// AccountRepository defines persistence access for token accounts. The
// mutating operations are single conditional statements: the database row is
// the serialization point, so two callers racing on the same account cannot
// both observe a stale balance or grant window.
type AccountRepository interface {
	Create(ctx context.Context, userID int64, balance int) error
	Get(ctx context.Context, userID int64) (*domain.TokenAccount, error)
	// GrantIfDue adds amount and stamps last_grant_at=now, but only when the
	// previous grant is unset or older than cutoff. Returns whether a grant
	// was applied.
	GrantIfDue(ctx context.Context, userID int64, amount int, now, cutoff time.Time) (bool, error)
	// Spend subtracts amount only when the balance covers it. Returns whether
	// the deduction was applied.
	Spend(ctx context.Context, userID int64, amount int) (bool, error)
	// Credit adds amount unconditionally. Returns whether the account exists.
	Credit(ctx context.Context, userID int64, amount int) (bool, error)
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

func (r *accountRepository) Create(ctx context.Context, userID int64, balance int) error {
	const query = `
        INSERT INTO token_accounts (user_id, balance, last_grant_at)
        VALUES ($1, $2, NULL)`

	_, err := r.pool.Exec(ctx, query, userID, balance)
	return err
}

func (r *accountRepository) Get(ctx context.Context, userID int64) (*domain.TokenAccount, error) {
	const query = `
        SELECT user_id, balance, last_grant_at
        FROM token_accounts WHERE user_id=$1`

	var account domain.TokenAccount
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&account.UserID,
		&account.Balance,
		&account.LastGrantAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) GrantIfDue(ctx context.Context, userID int64, amount int, now, cutoff time.Time) (bool, error) {
	const query = `
        UPDATE token_accounts
        SET balance = balance + $2, last_grant_at = $3
        WHERE user_id = $1 AND (last_grant_at IS NULL OR last_grant_at < $4)`

	cmd, err := r.pool.Exec(ctx, query, userID, amount, now, cutoff)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *accountRepository) Spend(ctx context.Context, userID int64, amount int) (bool, error) {
	const query = `
        UPDATE token_accounts
        SET balance = balance - $2
        WHERE user_id = $1 AND balance >= $2`

	cmd, err := r.pool.Exec(ctx, query, userID, amount)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *accountRepository) Credit(ctx context.Context, userID int64, amount int) (bool, error) {
	const query = `
        UPDATE token_accounts
        SET balance = balance + $2
        WHERE user_id = $1`

	cmd, err := r.pool.Exec(ctx, query, userID, amount)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
