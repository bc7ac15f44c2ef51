package auth

import (
	"testing"

	"librarium/config"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{})

	secret := "Password123!"
	hash, err := hasher.Hash(secret)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, secret, hash)

	// Verify the hash can be checked
	assert.True(t, hasher.Check(secret, hash))
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{})
	secret := "Password123!"

	// Generate hash
	hash, err := hasher.Hash(secret)
	assert.NoError(t, err)

	// Test correct secret
	assert.True(t, hasher.Check(secret, hash))

	// Test incorrect secret
	assert.False(t, hasher.Check("WrongPassword123!", hash))

	// Test empty secret
	assert.False(t, hasher.Check("", hash))

	// Test with invalid hash
	assert.False(t, hasher.Check(secret, "invalid_hash"))
}

func TestBcryptHasher_WithConfiguredCost(t *testing.T) {
	customCost := 6 // Lower cost for faster testing
	hasher := NewBcryptHasher(&config.Config{
		Auth: &config.AuthConfig{BcryptCost: customCost},
	})

	secret := "Password123!"
	hash, err := hasher.Hash(secret)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)

	// Verify the hash uses the configured cost
	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, customCost, cost)

	// Verify the hash can be checked
	assert.True(t, hasher.Check(secret, hash))
}

func TestBcryptHasher_OutOfRangeCostFallsBackToDefault(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{
		Auth: &config.AuthConfig{BcryptCost: 99},
	})

	hash, err := hasher.Hash("Password123!")
	assert.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
