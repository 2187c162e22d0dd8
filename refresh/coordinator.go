// Package refresh coordinates access token refresh so that any number of
// requests failing with 401 at the same time trigger a single refresh call.
package refresh

import (
	"context"
	"fmt"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/schoolgest-client/internal/errors"
	"github.com/jrsteele09/schoolgest-client/metrics"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// State of the coordinator
type State int

const (
	Idle State = iota
	Refreshing
)

func (s State) String() string {
	if s == Refreshing {
		return "REFRESHING"
	}
	return "IDLE"
}

// Func exchanges the stored refresh token for a new access token
type Func func(ctx context.Context) (string, error)

// FailureHandler tears the session down after a failed refresh. It runs once
// per failed episode, before any waiter is released.
type FailureHandler func(err error)

// episode is one refresh round-trip. done is closed once token or err is set.
type episode struct {
	done  chan struct{}
	token string
	err   error
}

// Coordinator is a single-flight guard around a refresh Func. The zero value
// is not usable; create one with NewCoordinator.
type Coordinator struct {
	lock      sync.Mutex
	current   *episode // nil while idle
	refresher Func
	onFailure FailureHandler
	timeout   time.Duration
	metrics   metrics.Recorder
	logger    zerolog.Logger
}

type Option func(*Coordinator)

func WithFailureHandler(h FailureHandler) Option {
	return func(c *Coordinator) {
		c.onFailure = h
	}
}

// WithTimeout bounds each refresh call. Zero means no bound beyond the caller's.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Coordinator) {
		c.timeout = timeout
	}
}

func WithMetrics(m metrics.Recorder) Option {
	return func(c *Coordinator) {
		c.metrics = m
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

func NewCoordinator(refresher Func, options ...Option) *Coordinator {
	c := &Coordinator{
		refresher: refresher,
		metrics:   metrics.Noop{},
		logger:    log.Logger,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// SetRefresher replaces the refresh Func. It exists to break the construction
// cycle between the transport and the auth service and must be called before
// the first Await.
func (c *Coordinator) SetRefresher(refresher Func) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.refresher = refresher
}

// State reports whether a refresh is in flight
func (c *Coordinator) State() State {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.current != nil {
		return Refreshing
	}
	return Idle
}

// Await returns a fresh access token. The first caller while idle performs the
// refresh; callers arriving while it is in flight wait for its outcome. A
// waiter whose ctx ends stops waiting without affecting the episode.
func (c *Coordinator) Await(ctx context.Context) (string, error) {
	c.lock.Lock()
	if ep := c.current; ep != nil {
		c.lock.Unlock()
		c.metrics.RefreshWaited()
		return wait(ctx, ep)
	}
	ep := &episode{done: make(chan struct{})}
	c.current = ep
	refresher := c.refresher
	c.lock.Unlock()

	c.run(ctx, refresher, ep)
	return ep.token, ep.err
}

func (c *Coordinator) run(ctx context.Context, refresher Func, ep *episode) {
	start := time.Now()
	c.logger.Debug().Msg("access token refresh started")

	// Waiters depend on this call, so the leader's cancellation must not end it
	refreshCtx := context.WithoutCancel(ctx)
	if c.timeout > 0 {
		var cancel context.CancelFunc
		refreshCtx, cancel = context.WithTimeout(refreshCtx, c.timeout)
		defer cancel()
	}

	var (
		token string
		err   error
	)
	if refresher == nil {
		err = apperrors.ErrNoRefreshToken
	} else {
		token, err = refresher(refreshCtx)
	}
	if err == nil && token == "" {
		err = fmt.Errorf("empty access token in refresh response")
	}
	if err != nil {
		err = fmt.Errorf("%w: %w", apperrors.ErrRefreshFailed, err)
	}
	ep.token, ep.err = token, err

	took := time.Since(start)
	c.metrics.RefreshFinished(err == nil, took)

	if err != nil {
		c.logger.Warn().Err(err).Dur("took", took).Msg("access token refresh failed")
		if c.onFailure != nil {
			c.onFailure(err)
		}
	} else {
		c.logger.Debug().Dur("took", took).Msg("access token refreshed")
	}

	c.lock.Lock()
	c.current = nil
	c.lock.Unlock()
	close(ep.done)
}

func wait(ctx context.Context, ep *episode) (string, error) {
	select {
	case <-ep.done:
		return ep.token, ep.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
