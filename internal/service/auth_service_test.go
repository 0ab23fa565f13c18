package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/booksfrog/booksfrog/internal/config"
	"github.com/booksfrog/booksfrog/internal/events"
)

func testAuthConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:           "test-secret",
			AccessTokenTTLHours: 24,
			BcryptCost:          4, // minimal cost keeps the suite fast
		},
		Ledger: testLedgerConfig(),
	}
}

func newAuthFixture(t *testing.T) (*AuthService, *LedgerService) {
	t.Helper()

	users := newMemUserRepo()
	accounts := newMemAccountRepo()
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())

	cfg := testAuthConfig()
	ledger := NewLedgerService(cfg.Ledger, accounts, users, dispatcher)
	authSvc := NewAuthService(cfg, AuthDependencies{
		UserRepo:   users,
		Ledger:     ledger,
		Dispatcher: dispatcher,
	})
	return authSvc, ledger
}

func TestRegisterInitializesAccount(t *testing.T) {
	authSvc, ledger := newAuthFixture(t)
	ctx := context.Background()

	user, err := authSvc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "a@x.com",
		Password: "pw",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.False(t, user.Premium)
	assert.NotEqual(t, "pw", user.PasswordHash)

	balance, err := ledger.BalanceOf(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, balance)

	// The flat starting balance ignores tier; daily grants differentiate.
	premium, err := authSvc.Register(ctx, RegisterInput{
		Username: "bob",
		Email:    "b@x.com",
		Password: "pw",
		Premium:  true,
	})
	require.NoError(t, err)

	balance, err = ledger.BalanceOf(ctx, premium.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, balance)
}

func TestRegisterValidation(t *testing.T) {
	authSvc, _ := newAuthFixture(t)
	ctx := context.Background()

	cases := []RegisterInput{
		{Email: "a@x.com", Password: "pw"},
		{Username: "alice", Password: "pw"},
		{Username: "alice", Email: "a@x.com"},
	}
	for _, input := range cases {
		_, err := authSvc.Register(ctx, input)
		assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
	}
}

func TestRegisterConflicts(t *testing.T) {
	authSvc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := authSvc.Register(ctx, RegisterInput{Username: "alice", Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)

	_, err = authSvc.Register(ctx, RegisterInput{Username: "alice", Email: "other@x.com", Password: "pw"})
	assert.Equal(t, "CONFLICT", domainCode(t, err))

	_, err = authSvc.Register(ctx, RegisterInput{Username: "carol", Email: "a@x.com", Password: "pw"})
	assert.Equal(t, "CONFLICT", domainCode(t, err))
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	authSvc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := authSvc.Register(ctx, RegisterInput{Username: "alice", Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)

	result, err := authSvc.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "alice", result.User.Username)
	assert.Equal(t, 50, result.Balance)
	assert.False(t, result.ExpiresAt.IsZero())

	subject, err := authSvc.TokenManager().Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestLoginInvalidCredentials(t *testing.T) {
	authSvc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := authSvc.Register(ctx, RegisterInput{Username: "alice", Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)

	_, err = authSvc.Login(ctx, "alice", "wrong")
	assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))

	_, err = authSvc.Login(ctx, "nobody", "pw")
	assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))
}

func TestRegisterLoginSpendFlow(t *testing.T) {
	authSvc, ledger := newAuthFixture(t)
	ctx := context.Background()

	user, err := authSvc.Register(ctx, RegisterInput{Username: "alice", Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)

	result, err := authSvc.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, 50, result.Balance)

	err = ledger.Spend(ctx, user.ID, 60)
	assert.Equal(t, "INSUFFICIENT_TOKENS", domainCode(t, err))

	require.NoError(t, ledger.Credit(ctx, user.ID, 100))
	require.NoError(t, ledger.Spend(ctx, user.ID, 60))

	balance, err := ledger.BalanceOf(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, balance)
}
