package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse_Roundtrip(t *testing.T) {
	t.Parallel()

	issuedAt := time.Now()
	token, err := IssueToken("testuser", "abc123hash", "super-secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, "super-secret")
	require.NoError(t, err)
	assert.Equal(t, "testuser", claims.Username)
	assert.Equal(t, "abc123hash", claims.PasswordHash)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, issuedAt.Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	token, err := IssueToken("testuser", "h", "secret", -time.Second)
	require.NoError(t, err)

	_, err = ParseToken(token, "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := IssueToken("testuser", "h", "right-secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "wrong-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ParseToken("not.a.jwt", "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
