package service

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/booksfrog/booksfrog/internal/domain"
)

// memAccountRepo mimics the Postgres account repository: every mutation is an
// atomic check-then-write under the account's own lock, matching the
// conditional UPDATE semantics of the real implementation.
type memAccountRepo struct {
	mu   sync.RWMutex
	rows map[int64]*memAccountRow
}

type memAccountRow struct {
	mu      sync.Mutex
	account domain.TokenAccount
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{rows: make(map[int64]*memAccountRow)}
}

func (r *memAccountRepo) row(userID int64) *memAccountRow {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rows[userID]
}

func (r *memAccountRepo) Create(_ context.Context, userID int64, balance int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[userID] = &memAccountRow{account: domain.TokenAccount{UserID: userID, Balance: balance}}
	return nil
}

func (r *memAccountRepo) Get(_ context.Context, userID int64) (*domain.TokenAccount, error) {
	row := r.row(userID)
	if row == nil {
		return nil, pgx.ErrNoRows
	}
	row.mu.Lock()
	defer row.mu.Unlock()
	account := row.account
	if row.account.LastGrantAt != nil {
		at := *row.account.LastGrantAt
		account.LastGrantAt = &at
	}
	return &account, nil
}

func (r *memAccountRepo) GrantIfDue(_ context.Context, userID int64, amount int, now, cutoff time.Time) (bool, error) {
	row := r.row(userID)
	if row == nil {
		return false, nil
	}
	row.mu.Lock()
	defer row.mu.Unlock()
	if row.account.LastGrantAt != nil && !row.account.LastGrantAt.Before(cutoff) {
		return false, nil
	}
	row.account.Balance += amount
	at := now
	row.account.LastGrantAt = &at
	return true, nil
}

func (r *memAccountRepo) Spend(_ context.Context, userID int64, amount int) (bool, error) {
	row := r.row(userID)
	if row == nil {
		return false, nil
	}
	row.mu.Lock()
	defer row.mu.Unlock()
	if row.account.Balance < amount {
		return false, nil
	}
	row.account.Balance -= amount
	return true, nil
}

func (r *memAccountRepo) Credit(_ context.Context, userID int64, amount int) (bool, error) {
	row := r.row(userID)
	if row == nil {
		return false, nil
	}
	row.mu.Lock()
	defer row.mu.Unlock()
	row.account.Balance += amount
	return true, nil
}

// memUserRepo is an in-memory user repository.
type memUserRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, byID: make(map[int64]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	user.RegistrationDate = time.Now()
	r.nextID++
	clone := *user
	r.byID[user.ID] = &clone
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	r.byID[user.ID] = &clone
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.byID {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.byID {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) UsernameTaken(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.byID {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) EmailTaken(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.byID {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}
