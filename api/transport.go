package api

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

// TokenSource yields the access token to attach to an outbound request.
// An empty token with a nil error means "send unauthenticated" - the
// server will reject the call if the endpoint needs credentials. An error
// abandons the request entirely; it must never be sent with a token known
// to be stale.
//
// session.Controller implements this, refreshing the pair before handing
// out a token that is at or past expiry.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

var _ http.RoundTripper = (*BearerTransport)(nil)

// BearerTransport is an http.RoundTripper that consults a TokenSource
// before every request and attaches "Authorization: Bearer <access>".
// Install it in the http.Client handed to api.NewClient via
// WithHTTPClient.
type BearerTransport struct {
	// Source provides fresh access tokens. Required.
	Source TokenSource

	// Base performs the actual round trip. Defaults to
	// http.DefaultTransport.
	Base http.RoundTripper
}

func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Source == nil {
		return nil, errors.New("[BearerTransport.RoundTrip] Source is required")
	}

	accessToken, err := t.Source.AccessToken(req.Context())
	if err != nil {
		return nil, errors.Wrap(err, "[BearerTransport.RoundTrip] token source")
	}

	// Per RoundTripper contract the request must not be mutated in place.
	authReq := req.Clone(req.Context())
	if accessToken != "" {
		authReq.Header.Set("Authorization", "Bearer "+accessToken)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(authReq)
}
