package auth

import "errors"

var (
	// ErrInvalidCredentials is returned by SignIn when the server rejects
	// the username/password combination.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrRefreshRejected is returned by Refresh when the server refuses
	// the refresh token (expired, revoked, or malformed). This is the
	// terminal failure that forces sign-out.
	ErrRefreshRejected = errors.New("refresh token rejected")
)
