package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/booksfrog/booksfrog/internal/config"
	"github.com/booksfrog/booksfrog/internal/domain"
	"github.com/booksfrog/booksfrog/internal/events"
	apperrors "github.com/booksfrog/booksfrog/pkg/util"
)

func testLedgerConfig() config.LedgerConfig {
	return config.LedgerConfig{
		StartingBalance:    50,
		DailyGrantStandard: 50,
		DailyGrantPremium:  100,
		PremiumReadCost:    10,
	}
}

// newLedgerFixture returns a ledger backed by in-memory repositories, one
// registered user with an initialized account, and a controllable clock.
func newLedgerFixture(t *testing.T, premium bool) (*LedgerService, int64, *time.Time) {
	t.Helper()

	users := newMemUserRepo()
	accounts := newMemAccountRepo()
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())

	user := &domain.User{Username: "alice", Email: "a@x.com", PasswordHash: "x", Premium: premium}
	require.NoError(t, users.Create(context.Background(), user))

	svc := NewLedgerService(testLedgerConfig(), accounts, users, dispatcher)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	require.NoError(t, svc.InitializeAccount(context.Background(), user.ID))
	return svc, user.ID, &now
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	return apperrors.ToDomainError(err).Code
}

func TestGrantDailyIdempotentWithinWindow(t *testing.T) {
	svc, userID, now := newLedgerFixture(t, false)
	ctx := context.Background()

	granted, err := svc.GrantDaily(ctx, userID)
	require.NoError(t, err)
	assert.True(t, granted)

	balance, err := svc.BalanceOf(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 100, balance)

	// Second call inside the window grants nothing.
	granted, err = svc.GrantDaily(ctx, userID)
	require.NoError(t, err)
	assert.False(t, granted)

	balance, err = svc.BalanceOf(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 100, balance)

	// Once the window elapses the grant lands again.
	*now = now.Add(24*time.Hour + time.Second)
	granted, err = svc.GrantDaily(ctx, userID)
	require.NoError(t, err)
	assert.True(t, granted)

	balance, err = svc.BalanceOf(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 150, balance)
}

func TestGrantDailyPremiumTier(t *testing.T) {
	svc, userID, _ := newLedgerFixture(t, true)
	ctx := context.Background()

	granted, err := svc.GrantDaily(ctx, userID)
	require.NoError(t, err)
	assert.True(t, granted)

	balance, err := svc.BalanceOf(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 150, balance)
}

func TestGrantDailyConcurrentCallersGrantOnce(t *testing.T) {
	svc, userID, _ := newLedgerFixture(t, false)
	ctx := context.Background()

	const callers = 16
	var wg sync.WaitGroup
	type outcome struct {
		granted bool
		err     error
	}
	outcomes := make(chan outcome, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			granted, err := svc.GrantDaily(ctx, userID)
			outcomes <- outcome{granted: granted, err: err}
		}()
	}
	wg.Wait()
	close(outcomes)

	total := 0
	for out := range outcomes {
		require.NoError(t, out.err)
		if out.granted {
			total++
		}
	}
	assert.Equal(t, 1, total)

	balance, err := svc.BalanceOf(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 100, balance)
}

func TestGrantDailyMissingAccount(t *testing.T) {
	users := newMemUserRepo()
	accounts := newMemAccountRepo()
	user := &domain.User{Username: "ghost", Email: "g@x.com", PasswordHash: "x"}
	require.NoError(t, users.Create(context.Background(), user))

	svc := NewLedgerService(testLedgerConfig(), accounts, users, nil)

	_, err := svc.GrantDaily(context.Background(), user.ID)
	assert.Equal(t, "ACCOUNT_MISSING", domainCode(t, err))
}

func TestTimeUntilNextGrant(t *testing.T) {
	svc, userID, now := newLedgerFixture(t, false)
	ctx := context.Background()

	// No grant yet: due immediately.
	remaining, err := svc.TimeUntilNextGrant(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), remaining)

	_, err = svc.GrantDaily(ctx, userID)
	require.NoError(t, err)

	remaining, err = svc.TimeUntilNextGrant(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, remaining)

	// Strictly decreasing inside the window.
	*now = now.Add(90 * time.Minute)
	remaining, err = svc.TimeUntilNextGrant(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 22*time.Hour+30*time.Minute, remaining)

	*now = now.Add(23 * time.Hour)
	remaining, err = svc.TimeUntilNextGrant(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), remaining)
}

func TestSpendRejectsOverdraft(t *testing.T) {
	svc, userID, _ := newLedgerFixture(t, false)
	ctx := context.Background()

	err := svc.Spend(ctx, userID, 60)
	assert.Equal(t, "INSUFFICIENT_TOKENS", domainCode(t, err))

	balance, err := svc.BalanceOf(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 50, balance)
}

func TestSpendRequiresPositiveAmount(t *testing.T) {
	svc, userID, _ := newLedgerFixture(t, false)

	err := svc.Spend(context.Background(), userID, 0)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))

	err = svc.Spend(context.Background(), userID, -5)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestSpendConcurrentNeverNegative(t *testing.T) {
	svc, userID, _ := newLedgerFixture(t, false)
	ctx := context.Background()

	require.NoError(t, svc.Credit(ctx, userID, 50)) // balance 100

	const spenders = 25
	var wg sync.WaitGroup
	results := make(chan error, spenders)
	for i := 0; i < spenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- svc.Spend(ctx, userID, 10)
		}()
	}
	wg.Wait()
	close(results)

	succeeded, failed := 0, 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.Equal(t, "INSUFFICIENT_TOKENS", apperrors.ToDomainError(err).Code)
			failed++
		}
	}
	assert.Equal(t, 10, succeeded)
	assert.Equal(t, 15, failed)

	balance, err := svc.BalanceOf(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)
}

func TestCreditThenSpend(t *testing.T) {
	svc, userID, _ := newLedgerFixture(t, false)
	ctx := context.Background()

	require.NoError(t, svc.Credit(ctx, userID, 100))
	require.NoError(t, svc.Spend(ctx, userID, 60))

	balance, err := svc.BalanceOf(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 90, balance)
}

func TestCreditRequiresPositiveAmount(t *testing.T) {
	svc, userID, _ := newLedgerFixture(t, false)

	err := svc.Credit(context.Background(), userID, 0)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestLedgerOpsOnMissingAccount(t *testing.T) {
	svc, _, _ := newLedgerFixture(t, false)
	ctx := context.Background()
	const missing = int64(9999)

	_, err := svc.BalanceOf(ctx, missing)
	assert.Equal(t, "ACCOUNT_MISSING", domainCode(t, err))

	err = svc.Spend(ctx, missing, 10)
	assert.Equal(t, "ACCOUNT_MISSING", domainCode(t, err))

	err = svc.Credit(ctx, missing, 10)
	assert.Equal(t, "ACCOUNT_MISSING", domainCode(t, err))

	_, err = svc.TimeUntilNextGrant(ctx, missing)
	assert.Equal(t, "ACCOUNT_MISSING", domainCode(t, err))
}
