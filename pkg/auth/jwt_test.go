package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	token, expiresAt, err := m.GenerateToken("session-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", claims.SessionID)
}

func TestParseTokenRejects(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	token, _, err := m.GenerateToken("session-1")
	require.NoError(t, err)

	_, err = NewTokenManager("other", time.Hour).ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, _, err := NewTokenManager("secret", -time.Minute).GenerateToken("session-1")
	require.NoError(t, err)
	_, err = m.ParseToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ParseToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
