package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	manager := NewJWTManager("test-secret", 1, 7)

	access, err := manager.GenerateToken(42, "alice", "ADMIN")
	require.NoError(t, err)

	claims, err := manager.VerifyAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, TypeAccess, claims.TokenType)
}

func TestTokenTypeIsEnforced(t *testing.T) {
	manager := NewJWTManager("test-secret", 1, 7)

	refresh, err := manager.GenerateRefreshToken(42, "alice", "USER")
	require.NoError(t, err)

	_, err = manager.VerifyAccessToken(refresh)
	assert.Error(t, err)

	claims, err := manager.VerifyRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, TypeRefresh, claims.TokenType)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", 1, 7)
	other := NewJWTManager("other-secret", 1, 7)

	access, err := manager.GenerateToken(1, "bob", "USER")
	require.NoError(t, err)

	_, err = other.VerifyToken(access)
	assert.Error(t, err)
}

func TestGenerateRandomString(t *testing.T) {
	a := GenerateRandomString(16)
	b := GenerateRandomString(16)
	assert.Len(t, a, 32) // hex 编码后长度翻倍
	assert.NotEqual(t, a, b)
}
