// Package transport holds the http.RoundTripper that authenticates every
// backend request and recovers from an expired access token.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jrsteele09/schoolgest-client/api"
	apperrors "github.com/jrsteele09/schoolgest-client/internal/errors"
	"github.com/jrsteele09/schoolgest-client/metrics"
	"github.com/jrsteele09/schoolgest-client/token"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const HeaderRequestID = "X-Request-Id"

// TokenSource returns the stored access token, "" when there is none
type TokenSource interface {
	AccessToken() string
}

// Refresher obtains a fresh access token. *refresh.Coordinator implements it.
type Refresher interface {
	Await(ctx context.Context) (string, error)
}

// Authenticator attaches the bearer token and, on a 401, refreshes it once
// and replays the request.
type Authenticator struct {
	base        http.RoundTripper
	tokens      TokenSource
	refresher   Refresher
	metrics     metrics.Recorder
	logger      zerolog.Logger
	loginPath   string
	refreshPath string
}

var _ http.RoundTripper = (*Authenticator)(nil)

type Option func(*Authenticator)

func WithMetrics(m metrics.Recorder) Option {
	return func(a *Authenticator) {
		a.metrics = m
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(a *Authenticator) {
		a.logger = logger
	}
}

// WithAuthPaths overrides the login and refresh endpoints, which are never
// refreshed on 401
func WithAuthPaths(login, refresh string) Option {
	return func(a *Authenticator) {
		a.loginPath = login
		a.refreshPath = refresh
	}
}

func NewAuthenticator(base http.RoundTripper, tokens TokenSource, refresher Refresher, options ...Option) *Authenticator {
	if base == nil {
		base = http.DefaultTransport
	}
	a := &Authenticator{
		base:        base,
		tokens:      tokens,
		refresher:   refresher,
		metrics:     metrics.Noop{},
		logger:      log.Logger,
		loginPath:   api.RouteAuthLogin,
		refreshPath: api.RouteAuthRefresh,
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

func (a *Authenticator) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	if out.Header.Get(HeaderRequestID) == "" {
		out.Header.Set(HeaderRequestID, uuid.NewString())
	}

	sent := ""
	if a.matches(out, a.refreshPath) {
		out.Header.Del("Authorization")
	} else if sent = a.tokens.AccessToken(); sent != "" {
		setBearer(out, sent)
	}

	resp, err := a.base.RoundTrip(out)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}
	if a.matches(out, a.loginPath) || a.matches(out, a.refreshPath) {
		return resp, nil
	}
	if !replayable(out) {
		a.logger.Warn().Err(apperrors.ErrBodyNotReplayable).Str("url", out.URL.String()).Msg("401 not retried")
		return resp, nil
	}
	drain(resp)

	// Another episode may have settled while this request was in flight:
	// a new token means it refreshed, no token means it tore the session down
	fresh := a.tokens.AccessToken()
	switch {
	case fresh == "" && sent != "":
		return nil, fmt.Errorf("%w: %w", apperrors.ErrRefreshFailed, apperrors.ErrNotAuthenticated)
	case fresh == "" || fresh == sent:
		fresh, err = a.refresher.Await(out.Context())
		if err != nil {
			return nil, err
		}
	}

	retry, err := rebuild(out, fresh)
	if err != nil {
		return nil, err
	}
	a.metrics.RequestRetried()
	a.logger.Debug().
		Str("method", retry.Method).
		Str("url", retry.URL.String()).
		Str("request_id", retry.Header.Get(HeaderRequestID)).
		Msg("retrying with refreshed token")
	return a.base.RoundTrip(retry)
}

// matches reports whether the request targets the given endpoint
func (a *Authenticator) matches(req *http.Request, path string) bool {
	if path == "" {
		return false
	}
	p := strings.TrimSuffix(req.URL.Path, "/")
	path = strings.Trim(path, "/")
	return p == path || strings.HasSuffix(p, "/"+path)
}

func setBearer(req *http.Request, accessToken string) {
	token.Credential{AccessToken: accessToken}.OAuth2().SetAuthHeader(req)
}

func replayable(req *http.Request) bool {
	return req.Body == nil || req.Body == http.NoBody || req.GetBody != nil
}

func rebuild(req *http.Request, accessToken string) (*http.Request, error) {
	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, apperrors.Wrapf(err, "failed to replay body of %s %s", req.Method, req.URL.Path)
		}
		retry.Body = body
	}
	setBearer(retry, accessToken)
	return retry, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, api.MaxErrorBody))
	_ = resp.Body.Close()
}
