// Package sessionfakes provides a function-field fake of the auth API for
// session tests. Each call is counted so tests can assert, for example,
// that a burst of requests triggered exactly one refresh.
package sessionfakes

import (
	"context"
	"errors"
	"sync"

	"github.com/athenaeum-hq/athenaeum-go/auth"
	"github.com/athenaeum-hq/athenaeum-go/session"
	"github.com/athenaeum-hq/athenaeum-go/token"
)

var _ session.API = (*FakeAPI)(nil)

// FakeAPI implements session.API. Set the *Func fields to script
// behavior; unset operations fail.
type FakeAPI struct {
	SignInFunc         func(ctx context.Context, username, password string) (token.Pair, error)
	RefreshFunc        func(ctx context.Context, refreshToken string) (token.Pair, error)
	SignOutFunc        func(ctx context.Context, pair token.Pair) error
	FetchUserFunc      func(ctx context.Context, accessToken string) (auth.User, error)
	UpdateProfileFunc  func(ctx context.Context, accessToken string, id int64, params auth.ProfileParams) (auth.User, error)
	ChangePasswordFunc func(ctx context.Context, accessToken string, params auth.ChangePasswordParams) error

	mu             sync.Mutex
	signInCalls    int
	refreshCalls   int
	signOutCalls   int
	fetchUserCalls int
}

func NewFakeAPI() *FakeAPI {
	return &FakeAPI{}
}

func (f *FakeAPI) SignIn(ctx context.Context, username, password string) (token.Pair, error) {
	f.mu.Lock()
	f.signInCalls++
	f.mu.Unlock()
	if f.SignInFunc == nil {
		return token.Pair{}, errors.New("SignIn not scripted")
	}
	return f.SignInFunc(ctx, username, password)
}

func (f *FakeAPI) Refresh(ctx context.Context, refreshToken string) (token.Pair, error) {
	f.mu.Lock()
	f.refreshCalls++
	f.mu.Unlock()
	if f.RefreshFunc == nil {
		return token.Pair{}, errors.New("Refresh not scripted")
	}
	return f.RefreshFunc(ctx, refreshToken)
}

func (f *FakeAPI) SignOut(ctx context.Context, pair token.Pair) error {
	f.mu.Lock()
	f.signOutCalls++
	f.mu.Unlock()
	if f.SignOutFunc == nil {
		return errors.New("SignOut not scripted")
	}
	return f.SignOutFunc(ctx, pair)
}

func (f *FakeAPI) FetchUser(ctx context.Context, accessToken string) (auth.User, error) {
	f.mu.Lock()
	f.fetchUserCalls++
	f.mu.Unlock()
	if f.FetchUserFunc == nil {
		return auth.User{}, errors.New("FetchUser not scripted")
	}
	return f.FetchUserFunc(ctx, accessToken)
}

func (f *FakeAPI) UpdateProfile(ctx context.Context, accessToken string, id int64, params auth.ProfileParams) (auth.User, error) {
	if f.UpdateProfileFunc == nil {
		return auth.User{}, errors.New("UpdateProfile not scripted")
	}
	return f.UpdateProfileFunc(ctx, accessToken, id, params)
}

func (f *FakeAPI) ChangePassword(ctx context.Context, accessToken string, params auth.ChangePasswordParams) error {
	if f.ChangePasswordFunc == nil {
		return errors.New("ChangePassword not scripted")
	}
	return f.ChangePasswordFunc(ctx, accessToken, params)
}

// SignInCalls returns the number of SignIn invocations.
func (f *FakeAPI) SignInCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signInCalls
}

// RefreshCalls returns the number of Refresh invocations.
func (f *FakeAPI) RefreshCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshCalls
}

// SignOutCalls returns the number of SignOut invocations.
func (f *FakeAPI) SignOutCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signOutCalls
}

// FetchUserCalls returns the number of FetchUser invocations.
func (f *FakeAPI) FetchUserCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchUserCalls
}
