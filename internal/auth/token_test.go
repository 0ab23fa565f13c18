package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenManager(secret string) (*TokenManager, *time.Time) {
	tm := NewTokenManager(secret, 24)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tm.now = func() time.Time { return now }
	return tm, &now
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	tm, now := newTestTokenManager("test-secret")

	token, expiresAt, err := tm.Issue("alice")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, now.Add(24*time.Hour), expiresAt)

	subject, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestVerifyExpiredToken(t *testing.T) {
	tm, now := newTestTokenManager("test-secret")

	token, _, err := tm.Issue("alice")
	require.NoError(t, err)

	// Still valid one second before expiry.
	*now = now.Add(24*time.Hour - time.Second)
	_, err = tm.Verify(token)
	require.NoError(t, err)

	*now = now.Add(2 * time.Second)
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	tm, _ := newTestTokenManager("test-secret")

	token, _, err := tm.Issue("alice")
	require.NoError(t, err)

	// Corrupting any position must yield a malformed error, never a
	// different valid subject. The final character is skipped: its low
	// bits are base64 padding and do not affect the decoded signature.
	for i := 0; i < len(token)-1; i++ {
		if token[i] == '.' {
			continue
		}
		mutated := []byte(token)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}
		subject, err := tm.Verify(string(mutated))
		assert.ErrorIs(t, err, ErrTokenMalformed, "position %d", i)
		assert.Empty(t, subject)
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	tm, _ := newTestTokenManager("test-secret")
	other, _ := newTestTokenManager("other-secret")

	token, _, err := tm.Issue("alice")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tm, _ := newTestTokenManager("test-secret")

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tm.Verify(input)
		assert.ErrorIs(t, err, ErrTokenMalformed)
	}
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	tm, _ := newTestTokenManager("test-secret")

	// alg=none style header with no signature.
	const unsigned = "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJzdWIiOiJhbGljZSJ9."
	_, err := tm.Verify(unsigned)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}
