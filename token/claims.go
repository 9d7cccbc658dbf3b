package token

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Claims is the identity payload decoded from an access token. Field
// availability depends on what the server embedded; only ExpiresAt is
// guaranteed by Decode.
type Claims struct {
	UserID    int64     // "user_id"
	Username  string    // "username"
	Email     string    // "email"
	FirstName string    // "first_name"
	LastName  string    // "last_name"
	TokenType string    // "token_type" ("access" or "refresh")
	IssuedAt  time.Time // "iat"
	ExpiresAt time.Time // "exp"
}

// Decode extracts the claims embedded in a raw JWT without verifying its
// signature. Signature checks belong to the server that issued the token;
// the client only needs the identity payload and the expiry instant.
// Returns ErrMalformedToken when the string is not a structurally valid
// JWT and ErrMissingExpiry when it carries no exp claim.
func Decode(rawToken string) (Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return Claims{}, errors.Wrap(ErrMalformedToken, "[Decode] empty token")
	}

	unverifiedToken, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return Claims{}, errors.Wrapf(ErrMalformedToken, "[Decode] %v", err)
	}

	mapClaims, ok := unverifiedToken.Claims.(jwtlib.MapClaims)
	if !ok {
		return Claims{}, errors.Wrap(ErrMalformedToken, "[Decode] error extracting claims")
	}

	exp, ok := mapClaims["exp"].(float64)
	if !ok {
		return Claims{}, errors.Wrap(ErrMissingExpiry, "[Decode]")
	}

	claims := Claims{
		ExpiresAt: time.Unix(int64(exp), 0),
	}

	if iat, ok := mapClaims["iat"].(float64); ok {
		claims.IssuedAt = time.Unix(int64(iat), 0)
	}
	if userID, ok := mapClaims["user_id"].(float64); ok {
		claims.UserID = int64(userID)
	}
	claims.Username, _ = mapClaims["username"].(string)
	claims.Email, _ = mapClaims["email"].(string)
	claims.FirstName, _ = mapClaims["first_name"].(string)
	claims.LastName, _ = mapClaims["last_name"].(string)
	claims.TokenType, _ = mapClaims["token_type"].(string)

	return claims, nil
}
