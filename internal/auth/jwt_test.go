package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, ttl, err := m.Generate("u1", "alice", "MANAGER")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, ttl)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "MANAGER", claims.Role)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", time.Hour).Generate("u1", "alice", "VIEWER")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", time.Hour).Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute)

	token, _, err := m.Generate("u1", "alice", "VIEWER")
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	_, err := m.Validate("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("strongpassword123")
	require.NoError(t, err)
	assert.NotEqual(t, "strongpassword123", hash)

	assert.True(t, CheckPassword(hash, "strongpassword123"))
	assert.False(t, CheckPassword(hash, "wrongpassword"))
}
