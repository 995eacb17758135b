package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *JWTManager {
	return NewJWTManager("access-secret", "refresh-secret", time.Hour, 168*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, exp, err := m.GenerateAccessToken("64f1c0ffee", "admin", "ADMIN")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "64f1c0ffee", claims.Subject)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, _, err := m.GenerateRefreshToken("64f1c0ffee", "admin", "ADMIN")
	require.NoError(t, err)

	claims, err := m.ParseRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestSecretsAreNotInterchangeable(t *testing.T) {
	m := newTestManager()

	access, _, err := m.GenerateAccessToken("u1", "admin", "ADMIN")
	require.NoError(t, err)
	refresh, _, err := m.GenerateRefreshToken("u1", "admin", "ADMIN")
	require.NoError(t, err)

	_, err = m.ParseRefreshToken(access)
	assert.Error(t, err, "access token must not validate against the refresh secret")
	_, err = m.ParseAccessToken(refresh)
	assert.Error(t, err, "refresh token must not validate against the access secret")
}

func TestParseRejectsWrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewJWTManager("other-secret", "other-refresh", time.Hour, time.Hour)

	token, _, err := m.GenerateAccessToken("u1", "admin", "ADMIN")
	require.NoError(t, err)

	_, err = other.ParseAccessToken(token)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", -time.Minute, -time.Minute)

	token, _, err := m.GenerateAccessToken("u1", "admin", "ADMIN")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	m := newTestManager()

	_, err := m.ParseAccessToken("not.a.jwt")
	assert.Error(t, err)
	_, err = m.ParseAccessToken("")
	assert.Error(t, err)
}
