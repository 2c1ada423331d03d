package services

import (
	"strings"
	"testing"
	"time"

	"github.com/carelinkhq/carelink-backend/internal/config"
	"github.com/carelinkhq/carelink-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTAccessSecret:  "access-secret-for-tests",
		JWTRefreshSecret: "refresh-secret-for-tests",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
	}
}

func testUser() *models.User {
	return &models.User{ID: uuid.New(), Role: models.RolePatient}
}

func TestMintAccessTokenCarriesSubjectAndRole(t *testing.T) {
	cfg := testConfig()
	user := testUser()

	signed, expiresAt, err := MintAccessToken(cfg, user)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(cfg.JWTAccessExpiry), expiresAt, 2*time.Second)

	token, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTAccessSecret), nil
	})
	require.NoError(t, err)

	claims := token.Claims.(jwt.MapClaims)
	require.Equal(t, user.ID.String(), claims["sub"])
	require.Equal(t, models.RolePatient, claims["role"])
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	cfg := testConfig()
	user := testUser()

	signed, expiresAt, err := MintRefreshToken(cfg, user)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(cfg.JWTRefreshExpiry), expiresAt, 2*time.Second)

	userID, err := ParseRefreshToken(cfg, signed)
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)
}

func TestAccessTokenIsNotAValidRefreshToken(t *testing.T) {
	cfg := testConfig()
	user := testUser()

	access, _, err := MintAccessToken(cfg, user)
	require.NoError(t, err)

	// Different secret per token class; an access token must never pass.
	_, err = ParseRefreshToken(cfg, access)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseRefreshTokenRejectsForeignSecret(t *testing.T) {
	cfg := testConfig()
	user := testUser()

	signed, _, err := MintRefreshToken(cfg, user)
	require.NoError(t, err)

	other := testConfig()
	other.JWTRefreshSecret = "some-other-secret"
	_, err = ParseRefreshToken(other, signed)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseRefreshTokenReportsExpiry(t *testing.T) {
	cfg := testConfig()
	cfg.JWTRefreshExpiry = -time.Minute
	user := testUser()

	signed, _, err := MintRefreshToken(cfg, user)
	require.NoError(t, err)

	_, err = ParseRefreshToken(cfg, signed)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseRefreshTokenRejectsGarbage(t *testing.T) {
	_, err := ParseRefreshToken(testConfig(), "not.a.jwt")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRefreshTokensAreUniquePerMint(t *testing.T) {
	cfg := testConfig()
	user := testUser()

	a, _, err := MintRefreshToken(cfg, user)
	require.NoError(t, err)
	b, _, err := MintRefreshToken(cfg, user)
	require.NoError(t, err)

	// The jti keeps same-second mints distinct, so rotation always changes
	// the stored hash.
	require.NotEqual(t, a, b)
	require.NotEqual(t, HashToken(a), HashToken(b))
}

func TestHashTokenIsStableHex(t *testing.T) {
	h := HashToken("some-token")
	require.Len(t, h, 64)
	require.Equal(t, h, HashToken("some-token"))
	require.NotEqual(t, h, HashToken("some-other-token"))
}

func TestGenerateAccessCodeFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateAccessCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, c := range code {
			require.True(t, strings.ContainsRune(accessCodeCharset, c), "unexpected character %q", c)
		}
		seen[code] = true
	}
	// 50 draws from a 36^6 space colliding down to a handful would mean the
	// generator is broken.
	require.Greater(t, len(seen), 45)
}
