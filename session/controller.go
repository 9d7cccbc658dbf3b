// Package session owns the authoritative session state machine: sign-in,
// sign-out, silent token renewal, and the decoded identity projection the
// rest of the application reads. Collaborators receive the Controller by
// handle - there is deliberately no package-level session state.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/athenaeum-hq/athenaeum-go/auth"
	"github.com/athenaeum-hq/athenaeum-go/credstore"
	"github.com/athenaeum-hq/athenaeum-go/token"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// API is the slice of the auth endpoint surface the controller drives.
// *auth.Client satisfies it; tests substitute a fake.
type API interface {
	SignIn(ctx context.Context, username, password string) (token.Pair, error)
	Refresh(ctx context.Context, refreshToken string) (token.Pair, error)
	SignOut(ctx context.Context, pair token.Pair) error
	FetchUser(ctx context.Context, accessToken string) (auth.User, error)
	UpdateProfile(ctx context.Context, accessToken string, id int64, params auth.ProfileParams) (auth.User, error)
	ChangePassword(ctx context.Context, accessToken string, params auth.ChangePasswordParams) error
}

// Session is the identity projection of the current credential pair. It
// has no independent existence: it is recomputed whenever the pair
// changes and vanishes with it.
type Session struct {
	UserID    int64
	Username  string
	Email     string
	FirstName string
	LastName  string
	ExpiresAt time.Time
}

// ErrNotSignedIn is returned by operations that require a live session.
var ErrNotSignedIn = errors.New("not signed in")

// Controller is the single owner of session state. The credential store
// is its only durable channel: every writer (sign-in, refresh, sign-out)
// goes through the same slot, overwriting or clearing it wholesale.
//
// Controller implements api.TokenSource, which makes it the request
// interceptor: api.BearerTransport asks it for a token before every
// outbound call, and AccessToken refreshes a stale pair before handing
// anything out.
type Controller struct {
	authAPI API
	store   credstore.Store
	skew    time.Duration
	logger  zerolog.Logger

	// refreshGroup collapses concurrent refresh attempts into a single
	// network call; every waiter observes its result.
	refreshGroup singleflight.Group

	mu      sync.Mutex
	state   State
	session *Session
}

// Option configures a Controller.
type Option func(*Controller)

// WithSkew treats tokens expiring within skew of now as already expired,
// so requests are not sent with a token about to die mid-flight.
func WithSkew(skew time.Duration) Option {
	return func(c *Controller) {
		c.skew = skew
	}
}

// WithLogger sets the controller's logger. The default discards
// everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// New creates a Controller in the SignedOut state. Call Start to resume a
// persisted session.
func New(authAPI API, store credstore.Store, options ...Option) (*Controller, error) {
	if authAPI == nil {
		return nil, errors.New("[session.New] auth API is required")
	}
	if store == nil {
		return nil, errors.New("[session.New] credential store is required")
	}

	controller := &Controller{
		authAPI: authAPI,
		store:   store,
		logger:  zerolog.Nop(),
		state:   SignedOut,
	}

	for _, opt := range options {
		opt(controller)
	}
	return controller, nil
}

// Start resumes a previously persisted session. With nothing in the
// store it settles on SignedOut without any network traffic. With a
// stored pair it enters Determining and performs one refresh: success
// lands on SignedIn, failure clears the store and lands on SignedOut.
// The state is well defined when Start returns, even on error.
func (c *Controller) Start(ctx context.Context) error {
	pair, ok, err := c.store.Load()
	if err != nil {
		// Corrupted local state: clear it rather than crash.
		c.logger.Warn().Err(err).Msg("stored credentials unreadable, clearing")
		c.forceSignOut()
		return errors.Wrap(err, "[Start]")
	}
	if !ok {
		c.setState(SignedOut, nil)
		return nil
	}
	if _, err := token.Decode(pair.Access); err != nil {
		c.logger.Warn().Err(err).Msg("stored access token undecodable, clearing")
		c.forceSignOut()
		return errors.Wrap(err, "[Start]")
	}

	c.setState(Determining, nil)
	if err := c.RefreshSession(ctx); err != nil {
		return errors.Wrap(err, "[Start] initial refresh")
	}
	return nil
}

// SignIn exchanges credentials for a pair, persists it, and transitions
// to SignedIn. On rejection the controller stays exactly as it was - no
// stored state is altered.
func (c *Controller) SignIn(ctx context.Context, username, password string) error {
	pair, err := c.authAPI.SignIn(ctx, username, password)
	if err != nil {
		return errors.Wrap(err, "[SignIn]")
	}
	if err := c.adoptPair(pair); err != nil {
		return errors.Wrap(err, "[SignIn]")
	}
	c.logger.Info().Str("username", username).Msg("signed in")
	return nil
}

// SignOut invalidates the refresh token server-side on a best-effort
// basis, then unconditionally clears local state. The user-visible
// contract is "no longer signed in on this device", so local cleanup
// happens even when the server call fails.
func (c *Controller) SignOut(ctx context.Context) error {
	pair, ok, err := c.store.Load()
	if err == nil && ok {
		if err := c.authAPI.SignOut(ctx, pair); err != nil {
			c.logger.Warn().Err(err).Msg("server logout failed, clearing local session anyway")
		}
	}
	c.forceSignOut()
	return nil
}

// RefreshSession trades the stored refresh token for a new pair and
// persists it. Concurrent callers share a single network call. Any
// failure - rejection, transport error, or a missing pair - forces
// SignedOut and clears the store.
func (c *Controller) RefreshSession(ctx context.Context) error {
	_, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		return nil, c.refreshOnce(ctx)
	})
	return err
}

func (c *Controller) refreshOnce(ctx context.Context) error {
	pair, ok, err := c.store.Load()
	if err != nil {
		c.forceSignOut()
		return errors.Wrap(err, "[RefreshSession] load pair")
	}
	if !ok {
		c.forceSignOut()
		return errors.Wrap(ErrNotSignedIn, "[RefreshSession]")
	}

	newPair, err := c.authAPI.Refresh(ctx, pair.Refresh)
	if err != nil {
		c.forceSignOut()
		return errors.Wrap(err, "[RefreshSession]")
	}

	if err := c.adoptPair(newPair); err != nil {
		return errors.Wrap(err, "[RefreshSession]")
	}
	c.logger.Debug().Msg("session refreshed")
	return nil
}

// AccessToken implements api.TokenSource - the per-request interceptor
// check. No pair means no header (the server decides whether the endpoint
// needed one). A fresh pair is used as-is. A stale pair triggers one
// shared refresh before the token is handed out; if that fails the
// request is abandoned rather than sent with a token known to be expired.
func (c *Controller) AccessToken(ctx context.Context) (string, error) {
	pair, ok, err := c.store.Load()
	if err != nil {
		c.forceSignOut()
		return "", errors.Wrap(err, "[AccessToken] load pair")
	}
	if !ok {
		return "", nil
	}

	claims, err := token.Decode(pair.Access)
	if err != nil {
		c.forceSignOut()
		return "", errors.Wrap(err, "[AccessToken] stored access token")
	}
	if !claims.Expired(c.skew) {
		return pair.Access, nil
	}

	if err := c.RefreshSession(ctx); err != nil {
		return "", errors.Wrap(err, "[AccessToken]")
	}

	pair, ok, err = c.store.Load()
	if err != nil || !ok {
		return "", errors.Wrap(ErrNotSignedIn, "[AccessToken] pair gone after refresh")
	}
	return pair.Access, nil
}

// RefreshProfile re-derives the session projection from the server's
// authoritative user record.
func (c *Controller) RefreshProfile(ctx context.Context) (auth.User, error) {
	accessToken, err := c.requireAccessToken(ctx)
	if err != nil {
		return auth.User{}, errors.Wrap(err, "[RefreshProfile]")
	}
	user, err := c.authAPI.FetchUser(ctx, accessToken)
	if err != nil {
		return auth.User{}, errors.Wrap(err, "[RefreshProfile]")
	}
	c.adoptUser(user)
	return user, nil
}

// UpdateProfile replaces the editable profile fields and re-derives the
// session projection from the server's response rather than trusting the
// locally-held edits.
func (c *Controller) UpdateProfile(ctx context.Context, params auth.ProfileParams) (auth.User, error) {
	current, ok := c.CurrentSession()
	if !ok {
		return auth.User{}, errors.Wrap(ErrNotSignedIn, "[UpdateProfile]")
	}
	accessToken, err := c.requireAccessToken(ctx)
	if err != nil {
		return auth.User{}, errors.Wrap(err, "[UpdateProfile]")
	}

	user, err := c.authAPI.UpdateProfile(ctx, accessToken, current.UserID, params)
	if err != nil {
		return auth.User{}, errors.Wrap(err, "[UpdateProfile]")
	}
	c.adoptUser(user)
	return user, nil
}

// UpdatePassword changes the signed-in user's password. Session state is
// unaffected; validation failures carry per-field messages.
func (c *Controller) UpdatePassword(ctx context.Context, params auth.ChangePasswordParams) error {
	accessToken, err := c.requireAccessToken(ctx)
	if err != nil {
		return errors.Wrap(err, "[UpdatePassword]")
	}
	if err := c.authAPI.ChangePassword(ctx, accessToken, params); err != nil {
		return errors.Wrap(err, "[UpdatePassword]")
	}
	return nil
}

// State returns the controller's current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentSession returns a copy of the identity projection. ok is false
// unless the controller is SignedIn.
func (c *Controller) CurrentSession() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// adoptPair persists a freshly minted pair and recomputes the session
// projection from its access token. The pair and the projection change
// together or not at all.
func (c *Controller) adoptPair(pair token.Pair) error {
	claims, err := token.Decode(pair.Access)
	if err != nil {
		c.forceSignOut()
		return errors.Wrap(err, "decode access token")
	}
	if err := c.store.Save(pair); err != nil {
		return errors.Wrap(err, "persist pair")
	}
	c.setState(SignedIn, &Session{
		UserID:    claims.UserID,
		Username:  claims.Username,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		ExpiresAt: claims.ExpiresAt,
	})
	return nil
}

func (c *Controller) adoptUser(user auth.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return
	}
	c.session.UserID = user.ID
	c.session.Username = user.Username
	c.session.Email = user.Email
	c.session.FirstName = user.FirstName
	c.session.LastName = user.LastName
}

func (c *Controller) forceSignOut() {
	if err := c.store.Clear(); err != nil {
		c.logger.Error().Err(err).Msg("failed to clear credential store")
	}
	c.setState(SignedOut, nil)
}

func (c *Controller) setState(state State, session *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != state {
		c.logger.Debug().Stringer("from", c.state).Stringer("to", state).Msg("session state")
	}
	c.state = state
	c.session = session
}

func (c *Controller) requireAccessToken(ctx context.Context) (string, error) {
	accessToken, err := c.AccessToken(ctx)
	if err != nil {
		return "", err
	}
	if accessToken == "" {
		return "", ErrNotSignedIn
	}
	return accessToken, nil
}
