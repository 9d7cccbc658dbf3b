package token

import "time"

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Expired reports whether the claims' expiry instant is at or before now,
// treating anything within skew of expiry as already expired. The boundary
// is inclusive: a token that expires exactly now is expired. Skew lets
// callers avoid sending requests with a token about to die mid-flight.
func (c Claims) Expired(skew time.Duration) bool {
	return !c.ExpiresAt.After(NowTimeFunc().Add(skew))
}
