// Package token holds the credential pair issued by the Athenaeum auth
// service and the client-side helpers for inspecting it: structural claim
// decoding and expiry checks. Nothing in this package verifies signatures -
// the server issued the token and re-validates it on every request, so the
// client only ever needs to read what is embedded in it.
package token

// Pair is the access/refresh credential tuple returned by the sign-in and
// refresh endpoints. It is treated as one atomic unit of session state:
// stores hold either a complete pair or nothing.
type Pair struct {
	// Access is the short-lived JWT attached to authenticated requests as
	// "Authorization: Bearer <access>". Its claims carry the user identity
	// and the expiry instant.
	Access string `json:"access"`

	// Refresh is the long-lived token used solely to mint a new pair via
	// the refresh endpoint.
	Refresh string `json:"refresh"`
}

// Complete reports whether both halves of the pair are present.
func (p Pair) Complete() bool {
	return p.Access != "" && p.Refresh != ""
}

// IsZero reports whether the pair is entirely absent.
func (p Pair) IsZero() bool {
	return p.Access == "" && p.Refresh == ""
}
