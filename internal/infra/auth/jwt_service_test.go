package auth

import (
	"testing"
	"time"

	"librarium/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = secret

	return cfg
}

func TestJWTService_GenerateAndValidateToken(t *testing.T) {
	cfg := testConfig("test_access_secret_key_very_long_for_testing")

	jwtService, err := NewJWTService(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, jwtService)

	identityID := uuid.New()

	token, err := jwtService.GenerateToken(identityID, "employee")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwtService.ValidateToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, identityID, claims.IdentityID)
	assert.Equal(t, "employee", claims.Role)
	assert.Equal(t, identityID.String(), claims.Subject)
}

func TestJWTService_InvalidToken(t *testing.T) {
	cfg := testConfig("test_access_secret_key_very_long_for_testing")

	jwtService, err := NewJWTService(cfg)
	assert.NoError(t, err)

	// Test invalid token - using clearly non-JWT format
	claims, err := jwtService.ValidateToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_WrongSecret(t *testing.T) {
	signer, err := NewJWTService(testConfig("signing_secret_very_long_for_testing"))
	assert.NoError(t, err)
	verifier, err := NewJWTService(testConfig("different_secret_very_long_for_testing"))
	assert.NoError(t, err)

	token, err := signer.GenerateToken(uuid.New(), "admin")
	assert.NoError(t, err)

	claims, err := verifier.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_EmptySecret(t *testing.T) {
	jwtService, err := NewJWTService(testConfig(""))
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}

func TestJWTService_ConfiguredTTL(t *testing.T) {
	cfg := testConfig("test_access_secret_key_very_long_for_testing")
	cfg.Auth = &config.AuthConfig{AccessTokenTTL: time.Minute}

	jwtService, err := NewJWTService(cfg)
	assert.NoError(t, err)

	token, err := jwtService.GenerateToken(uuid.New(), "customer")
	assert.NoError(t, err)

	claims, err := jwtService.ValidateToken(token)
	assert.NoError(t, err)
	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, time.Minute, ttl)
}
