package session

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// defaultRenewInterval matches the four-minute cadence the access token's
// five-minute lifetime was tuned for.
const defaultRenewInterval = 4 * time.Minute

// Renewer proactively refreshes the session on a fixed cadence so it
// survives idle periods. The refresh is unconditional - not gated on the
// access token's expiry - but only happens while the controller is
// SignedIn. A failed refresh lands in the controller's forced sign-out,
// after which ticks become no-ops until the context ends.
type Renewer struct {
	controller *Controller
	interval   time.Duration
	logger     zerolog.Logger
}

// RenewerOption configures a Renewer.
type RenewerOption func(*Renewer)

// WithInterval overrides the renewal cadence.
func WithInterval(interval time.Duration) RenewerOption {
	return func(r *Renewer) {
		r.interval = interval
	}
}

// WithRenewerLogger sets the renewer's logger.
func WithRenewerLogger(logger zerolog.Logger) RenewerOption {
	return func(r *Renewer) {
		r.logger = logger
	}
}

// NewRenewer creates a Renewer driving controller.
func NewRenewer(controller *Controller, options ...RenewerOption) (*Renewer, error) {
	if controller == nil {
		return nil, errors.New("[NewRenewer] controller is required")
	}

	renewer := &Renewer{
		controller: controller,
		interval:   defaultRenewInterval,
		logger:     zerolog.Nop(),
	}

	for _, opt := range options {
		opt(renewer)
	}
	return renewer, nil
}

// Run ticks until ctx is cancelled. Start it at most once per controller;
// cancelling ctx is the teardown path and releases the ticker on every
// exit.
func (r *Renewer) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if r.controller.State() != SignedIn {
				continue
			}
			if err := r.controller.RefreshSession(ctx); err != nil {
				r.logger.Warn().Err(err).Msg("background renewal failed, session signed out")
			}
		}
	}
}
