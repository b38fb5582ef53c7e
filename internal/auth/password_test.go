package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("123456", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "123456", hash)

	assert.NoError(t, ComparePassword(hash, "123456"))
	assert.Error(t, ComparePassword(hash, "654321"))
}

func TestHashPassword_LowCostFallsBackToDefault(t *testing.T) {
	hash, err := HashPassword("secret", 1)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestBurnComparison_DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() { burnComparison("anything") })
	assert.NotEmpty(t, dummyHash)
}
