package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("P@ssw0rd!", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "P@ssw0rd!", hash)
	assert.NotContains(t, hash, "P@ssw0rd!")
	assert.True(t, VerifyPassword(hash, "P@ssw0rd!"))
	assert.False(t, VerifyPassword(hash, "p@ssw0rd!"))
	assert.False(t, VerifyPassword(hash, ""))
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("same-password", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("same-password", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
