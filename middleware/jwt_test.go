package middleware

import (
	"elearn/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTokenConfig() {
	config.AppConfig = &config.Config{
		JWTKey:             "access-test-secret",
		JWTRefreshKey:      "refresh-test-secret",
		AccessTokenTTLMin:  60,
		RefreshTokenTTLDay: 7,
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	setupTokenConfig()

	token, expiresAt, err := GenerateRefreshToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, time.Minute)

	userID, err := VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestRefreshTokensAreUnique(t *testing.T) {
	setupTokenConfig()

	first, _, err := GenerateRefreshToken(42)
	require.NoError(t, err)
	second, _, err := GenerateRefreshToken(42)
	require.NoError(t, err)

	// jti makes every issued token distinct, even for the same user
	assert.NotEqual(t, first, second)
}

func TestAccessTokenIsNotARefreshToken(t *testing.T) {
	setupTokenConfig()

	accessToken, err := GenerateAccessToken(42, "Test", "user", "t@example.com")
	require.NoError(t, err)

	_, err = VerifyRefreshToken(accessToken)
	assert.Error(t, err, "tokens signed for access must not pass refresh verification")
}

func TestExpiredRefreshTokenRejected(t *testing.T) {
	setupTokenConfig()
	config.AppConfig.RefreshTokenTTLDay = -1

	token, _, err := GenerateRefreshToken(42)
	require.NoError(t, err)

	_, err = VerifyRefreshToken(token)
	assert.Error(t, err)
}

func TestTamperedRefreshTokenRejected(t *testing.T) {
	setupTokenConfig()

	token, _, err := GenerateRefreshToken(42)
	require.NoError(t, err)

	_, err = VerifyRefreshToken(token + "x")
	assert.Error(t, err)
}
