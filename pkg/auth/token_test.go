package auth

import (
	"testing"
	"time"

	"github.com/casamaria/storefront-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "casamaria-storefront",
		ExpirationMinutes: 60,
	}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now()

	signed, err := MintAccessToken(cfg, now, AccessTokenPayload{Email: "admin@casamaria.com"})
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, signed)
	require.NoError(t, err)
	assert.Equal(t, "admin@casamaria.com", claims.Email)
	assert.NotEmpty(t, claims.ID, "a session jti must be minted when omitted")
	assert.Equal(t, cfg.Issuer, claims.Issuer)
}

func TestMintPreservesProvidedJTI(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{Email: "admin@casamaria.com", JTI: "session-1"})
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, signed)
	require.NoError(t, err)
	assert.Equal(t, "session-1", claims.ID)
}

func TestMintValidatesInputs(t *testing.T) {
	cfg := testJWTConfig()

	_, err := MintAccessToken(config.JWTConfig{Issuer: "x", ExpirationMinutes: 1}, time.Now(), AccessTokenPayload{Email: "a@b.c"})
	assert.Error(t, err, "missing secret")

	_, err = MintAccessToken(cfg, time.Now(), AccessTokenPayload{})
	assert.Error(t, err, "missing email")
}

func TestParseRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{Email: "admin@casamaria.com"})
	require.NoError(t, err)

	other := cfg
	other.Secret = "different"
	_, err = ParseAccessToken(other, signed)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), AccessTokenPayload{Email: "admin@casamaria.com"})
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, signed)
	assert.Error(t, err)
}
