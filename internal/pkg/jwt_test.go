package pkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/config"
)

func testJWT(accessTTL time.Duration) *JWTManager {
	return NewJWTManager(config.JWT{
		AccessSecret:  "a",
		RefreshSecret: "r",
		AccessTTL:     accessTTL,
		RefreshTTL:    time.Hour,
	})
}

func TestGeneratePairRoundTrip(t *testing.T) {
	m := testJWT(time.Minute)
	pair, err := m.GeneratePair(42)
	require.NoError(t, err)

	claims, err := m.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)

	claims, err = m.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	m := testJWT(time.Minute)
	pair, err := m.GeneratePair(1)
	require.NoError(t, err)

	_, err = m.ParseAccess(pair.RefreshToken)
	assert.Error(t, err)
}

func TestParseAccessExpired(t *testing.T) {
	m := testJWT(-time.Minute)
	pair, err := m.GeneratePair(1)
	require.NoError(t, err)

	_, err = m.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}
