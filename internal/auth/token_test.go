package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_APIToken(t *testing.T) {
	m := NewTokenManager("secret", time.Minute, time.Hour)

	token, err := m.IssueAPIToken()
	require.NoError(t, err)

	subject, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, APIClientSubject, subject)
}

func TestTokenManager_AdminTokenSubject(t *testing.T) {
	m := NewTokenManager("secret", 0, 0)

	token, err := m.IssueAdminToken("root")
	require.NoError(t, err)

	subject, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "root", subject)
	assert.Equal(t, 120*time.Minute, m.AdminTokenTTL())
}

func TestTokenManager_RejectsExpiredAndForeign(t *testing.T) {
	m := NewTokenManager("secret", time.Minute, time.Minute)
	token, err := m.IssueAPIToken()
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewTokenManager("another-secret", time.Minute, time.Minute)
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCheckSecret(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.True(t, CheckSecret("hunter2", hash))
	assert.False(t, CheckSecret("hunter3", hash))
	assert.True(t, CheckSecret("plain", "plain"))
	assert.False(t, CheckSecret("", ""))
}
