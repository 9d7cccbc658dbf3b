package token

import "errors"

var (
	// ErrMalformedToken indicates a string that is not a structurally valid
	// JWT. This is a parsing failure, not a trust decision.
	ErrMalformedToken = errors.New("malformed token")

	// ErrMissingExpiry indicates a token whose claims carry no exp instant,
	// which makes it unusable for client-side freshness checks.
	ErrMissingExpiry = errors.New("token has no expiry claim")
)
