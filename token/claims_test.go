package token_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/athenaeum-hq/athenaeum-go/token"
)

func makeJWT(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestDecode(t *testing.T) {
	now := time.Now()

	t.Run("full identity payload", func(t *testing.T) {
		raw := makeJWT(t, jwtlib.MapClaims{
			"token_type": "access",
			"exp":        float64(now.Add(time.Hour).Unix()),
			"iat":        float64(now.Unix()),
			"user_id":    float64(42),
			"username":   "jdoe",
			"email":      "jdoe@example.com",
			"first_name": "John",
			"last_name":  "Doe",
		})

		claims, err := token.Decode(raw)
		require.NoError(t, err)
		require.Equal(t, int64(42), claims.UserID)
		require.Equal(t, "jdoe", claims.Username)
		require.Equal(t, "jdoe@example.com", claims.Email)
		require.Equal(t, "John", claims.FirstName)
		require.Equal(t, "Doe", claims.LastName)
		require.Equal(t, "access", claims.TokenType)
		require.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
		require.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	})

	t.Run("identity fields are optional", func(t *testing.T) {
		raw := makeJWT(t, jwtlib.MapClaims{"exp": float64(now.Add(time.Hour).Unix())})

		claims, err := token.Decode(raw)
		require.NoError(t, err)
		require.Empty(t, claims.Username)
		require.Zero(t, claims.UserID)
	})

	t.Run("empty string", func(t *testing.T) {
		_, err := token.Decode("")
		require.ErrorIs(t, err, token.ErrMalformedToken)
	})

	t.Run("not a JWT", func(t *testing.T) {
		_, err := token.Decode("not-a-token")
		require.ErrorIs(t, err, token.ErrMalformedToken)
	})

	t.Run("missing expiry", func(t *testing.T) {
		raw := makeJWT(t, jwtlib.MapClaims{"user_id": float64(1)})
		_, err := token.Decode(raw)
		require.ErrorIs(t, err, token.ErrMissingExpiry)
	})
}

func TestClaimsExpired(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	token.NowTimeFunc = func() time.Time { return now }
	defer func() { token.NowTimeFunc = time.Now }()

	t.Run("expiry in the past", func(t *testing.T) {
		claims := token.Claims{ExpiresAt: now.Add(-time.Minute)}
		require.True(t, claims.Expired(0))
	})

	t.Run("expiry exactly now is expired", func(t *testing.T) {
		claims := token.Claims{ExpiresAt: now}
		require.True(t, claims.Expired(0))
	})

	t.Run("expiry in the future", func(t *testing.T) {
		claims := token.Claims{ExpiresAt: now.Add(time.Minute)}
		require.False(t, claims.Expired(0))
	})

	t.Run("skew treats about-to-expire as expired", func(t *testing.T) {
		claims := token.Claims{ExpiresAt: now.Add(time.Minute)}
		require.True(t, claims.Expired(2*time.Minute))
		require.False(t, claims.Expired(30*time.Second))
	})
}

func TestPairComplete(t *testing.T) {
	require.True(t, token.Pair{Access: "a", Refresh: "r"}.Complete())
	require.False(t, token.Pair{Access: "a"}.Complete())
	require.False(t, token.Pair{Refresh: "r"}.Complete())
	require.False(t, token.Pair{}.Complete())
	require.True(t, token.Pair{}.IsZero())
	require.False(t, token.Pair{Access: "a"}.IsZero())
}
