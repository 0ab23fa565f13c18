package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/booksfrog/booksfrog/internal/config"
	"github.com/booksfrog/booksfrog/internal/events"
	"github.com/booksfrog/booksfrog/internal/repository"
	apperrors "github.com/booksfrog/booksfrog/pkg/util"
)

// grantWindow is the period a daily grant stays exclusive. A second grant
// inside the window is a no-op.
const grantWindow = 24 * time.Hour

// Clock abstracts wall-clock reads so window arithmetic is testable.
type Clock func() time.Time

// LedgerService owns the per-user token balance and the daily-grant state
// machine. All transitions are lazy wall-clock comparisons; there is no
// background timer. Per-account serialization happens in the repository via
// conditional updates, so concurrent grants and spends cannot lose updates or
// overdraft.
type LedgerService struct {
	accounts   repository.AccountRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	cfg        config.LedgerConfig
	now        Clock
}

// NewLedgerService builds the service.
func NewLedgerService(cfg config.LedgerConfig, accounts repository.AccountRepository, users repository.UserRepository, dispatcher events.Dispatcher) *LedgerService {
	return &LedgerService{
		accounts:   accounts,
		users:      users,
		dispatcher: dispatcher,
		cfg:        cfg,
		now:        time.Now,
	}
}

// InitializeAccount creates the ledger account for a new user with the flat
// starting balance and no grant history.
func (s *LedgerService) InitializeAccount(ctx context.Context, userID int64) error {
	return s.accounts.Create(ctx, userID, s.cfg.StartingBalance)
}

// GrantDaily applies the tier-dependent daily grant when the previous grant is
// at least 24h old. Returns whether a grant was applied; calling it again
// inside the window is a no-op, not an error.
func (s *LedgerService) GrantDaily(ctx context.Context, userID int64) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, apperrors.NewAccountMissing(userID)
		}
		return false, err
	}

	amount := s.cfg.DailyGrantStandard
	if user.Premium {
		amount = s.cfg.DailyGrantPremium
	}

	now := s.now()
	granted, err := s.accounts.GrantIfDue(ctx, userID, amount, now, now.Add(-grantWindow))
	if err != nil {
		return false, err
	}
	if !granted {
		// Either the window is still active or the account row is gone;
		// only the latter is an error.
		if _, err := s.accounts.Get(ctx, userID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return false, apperrors.NewAccountMissing(userID)
			}
			return false, err
		}
		return false, nil
	}

	s.publish(ctx, events.EventTokensGranted, userID, amount)
	return true, nil
}

// TimeUntilNextGrant reports how long until GrantDaily will grant again.
// Zero means a grant is due now.
func (s *LedgerService) TimeUntilNextGrant(ctx context.Context, userID int64) (time.Duration, error) {
	account, err := s.accounts.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.NewAccountMissing(userID)
		}
		return 0, err
	}

	if account.LastGrantAt == nil {
		return 0, nil
	}
	next := account.LastGrantAt.Add(grantWindow)
	now := s.now()
	if !now.Before(next) {
		return 0, nil
	}
	return next.Sub(now), nil
}

// Spend atomically deducts amount from the balance. The conditional update in
// the repository guarantees the balance never goes negative, even under
// concurrent spenders.
func (s *LedgerService) Spend(ctx context.Context, userID int64, amount int) error {
	if amount <= 0 {
		return apperrors.NewValidationError("amount must be positive", map[string]any{"amount": amount})
	}

	ok, err := s.accounts.Spend(ctx, userID, amount)
	if err != nil {
		return err
	}
	if !ok {
		if _, err := s.accounts.Get(ctx, userID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewAccountMissing(userID)
			}
			return err
		}
		return apperrors.NewInsufficientTokens(userID)
	}

	s.publish(ctx, events.EventTokensSpent, userID, amount)
	return nil
}

// Credit adds amount to the balance unconditionally. Used for manual top-ups.
func (s *LedgerService) Credit(ctx context.Context, userID int64, amount int) error {
	if amount <= 0 {
		return apperrors.NewValidationError("amount must be positive", map[string]any{"amount": amount})
	}

	ok, err := s.accounts.Credit(ctx, userID, amount)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewAccountMissing(userID)
	}

	s.publish(ctx, events.EventTokensCredited, userID, amount)
	return nil
}

// BalanceOf returns the current balance.
func (s *LedgerService) BalanceOf(ctx context.Context, userID int64) (int, error) {
	account, err := s.accounts.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.NewAccountMissing(userID)
		}
		return 0, err
	}
	return account.Balance, nil
}

func (s *LedgerService) publish(ctx context.Context, eventType events.EventType, userID int64, amount int) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: s.now(),
		Payload:   events.LedgerChangePayload{Amount: amount},
	})
}
