// Package auth speaks the /auth/ endpoint group of the Athenaeum API:
// sign-in, token refresh, logout, registration, profile, and password
// management. It is stateless - session state belongs to the session
// package, which drives this client.
package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/athenaeum-hq/athenaeum-go/api"
	"github.com/athenaeum-hq/athenaeum-go/token"
	"github.com/pkg/errors"
)

// Client calls the auth endpoints over a bare api.Client. It must not be
// built on a session-aware transport: refresh and sign-in run outside any
// session, and the endpoints that do need a bearer token take it
// explicitly.
type Client struct {
	api *api.Client
}

// NewClient creates an auth client over apiClient.
func NewClient(apiClient *api.Client) (*Client, error) {
	if apiClient == nil {
		return nil, errors.New("[auth.NewClient] api client is required")
	}
	return &Client{api: apiClient}, nil
}

// SignIn exchanges credentials for a fresh credential pair. A 401 from
// the server surfaces as ErrInvalidCredentials; no local state is touched
// on any failure.
func (c *Client) SignIn(ctx context.Context, username, password string) (token.Pair, error) {
	var pair token.Pair
	err := c.api.Post(ctx, "auth/signin/", signInRequest{Username: username, Password: password}, &pair)
	if err != nil {
		if api.StatusCode(err) == http.StatusUnauthorized {
			return token.Pair{}, errors.Wrap(ErrInvalidCredentials, "[SignIn]")
		}
		return token.Pair{}, errors.Wrap(err, "[SignIn]")
	}
	if !pair.Complete() {
		return token.Pair{}, errors.Wrap(api.ErrMalformedResponse, "[SignIn] incomplete token pair")
	}
	return pair, nil
}

// Refresh trades a refresh token for a new credential pair. Exactly one
// network attempt is made: a server rejection of any kind wraps
// ErrRefreshRejected, a transport failure surfaces as the underlying
// error. The caller decides what either means for the session.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (token.Pair, error) {
	if refreshToken == "" {
		return token.Pair{}, errors.Wrap(ErrRefreshRejected, "[Refresh] no refresh token")
	}

	var pair token.Pair
	err := c.api.Post(ctx, "auth/signin/refresh/", refreshRequest{Refresh: refreshToken}, &pair)
	if err != nil {
		if api.StatusCode(err) != 0 {
			return token.Pair{}, errors.Wrapf(ErrRefreshRejected, "[Refresh] %v", err)
		}
		return token.Pair{}, errors.Wrap(err, "[Refresh]")
	}
	if pair.Refresh == "" {
		// The backend rotates the pair wholesale; reuse the presented
		// refresh token if it chose not to.
		pair.Refresh = refreshToken
	}
	if !pair.Complete() {
		return token.Pair{}, errors.Wrap(api.ErrMalformedResponse, "[Refresh] incomplete token pair")
	}
	return pair, nil
}

// SignOut asks the server to invalidate the pair's refresh token. Callers
// clear local state regardless of the outcome - this call is best effort.
func (c *Client) SignOut(ctx context.Context, pair token.Pair) error {
	err := c.api.Post(ctx, "auth/logout/", logoutRequest{Refresh: pair.Refresh}, nil, api.WithBearer(pair.Access))
	if err != nil {
		return errors.Wrap(err, "[SignOut]")
	}
	return nil
}

// SignUp registers a new account. Validation failures carry per-field
// messages, retrievable with api.FieldErrors.
func (c *Client) SignUp(ctx context.Context, params SignUpParams) (User, error) {
	var user User
	if err := c.api.Post(ctx, "auth/signup/", params, &user); err != nil {
		return User{}, errors.Wrap(err, "[SignUp]")
	}
	return user, nil
}

// FetchUser returns the authoritative profile of the token's owner.
func (c *Client) FetchUser(ctx context.Context, accessToken string) (User, error) {
	var user User
	if err := c.api.Get(ctx, "auth/user/", &user, api.WithBearer(accessToken)); err != nil {
		return User{}, errors.Wrap(err, "[FetchUser]")
	}
	return user, nil
}

// UpdateProfile replaces the editable profile fields of user id and
// returns the server's updated record.
func (c *Client) UpdateProfile(ctx context.Context, accessToken string, id int64, params ProfileParams) (User, error) {
	var user User
	path := profilePath(id)
	if err := c.api.Put(ctx, path, params, &user, api.WithBearer(accessToken)); err != nil {
		return User{}, errors.Wrap(err, "[UpdateProfile]")
	}
	return user, nil
}

// ChangePassword sets a new password for the signed-in user.
func (c *Client) ChangePassword(ctx context.Context, accessToken string, params ChangePasswordParams) error {
	if err := c.api.Put(ctx, "auth/change_password/", params, nil, api.WithBearer(accessToken)); err != nil {
		return errors.Wrap(err, "[ChangePassword]")
	}
	return nil
}

// RequestPasswordReset emails a one-time password to the given address.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	if err := c.api.Post(ctx, "auth/password-reset/", passwordResetRequest{Email: email}, nil); err != nil {
		return errors.Wrap(err, "[RequestPasswordReset]")
	}
	return nil
}

func profilePath(id int64) string {
	return fmt.Sprintf("auth/update_profile/%d/", id)
}

// ConfirmPasswordReset completes a reset using the emailed OTP.
func (c *Client) ConfirmPasswordReset(ctx context.Context, params ResetConfirmParams) error {
	if err := c.api.Post(ctx, "auth/password-reset-confirm/", params, nil); err != nil {
		return errors.Wrap(err, "[ConfirmPasswordReset]")
	}
	return nil
}
