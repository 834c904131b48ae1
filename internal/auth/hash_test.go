package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_Deterministic(t *testing.T) {
	t.Parallel()

	first := HashPassword("mySecurePassword", "test-secret")
	second := HashPassword("mySecurePassword", "test-secret")

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
	// hex-encoded sha256 digest
	assert.Len(t, first, 64)
}

func TestHashPassword_DistinctPasswords(t *testing.T) {
	t.Parallel()

	hash1 := HashPassword("mySecurePassword1", "test-secret")
	hash2 := HashPassword("mySecurePassword2", "test-secret")

	assert.NotEqual(t, hash1, hash2)
}

func TestHashPassword_SecretChangesOutput(t *testing.T) {
	t.Parallel()

	hash1 := HashPassword("mySecurePassword", "secret-one")
	hash2 := HashPassword("mySecurePassword", "secret-two")

	assert.NotEqual(t, hash1, hash2)
}
