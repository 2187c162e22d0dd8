// Package app assembles the client: token store, session state, refresh
// coordinator, authenticating transport, auth service and the REST wrappers.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/schoolgest-client/academic"
	"github.com/jrsteele09/schoolgest-client/admin"
	"github.com/jrsteele09/schoolgest-client/api"
	"github.com/jrsteele09/schoolgest-client/apierror"
	"github.com/jrsteele09/schoolgest-client/assignments"
	"github.com/jrsteele09/schoolgest-client/attendance"
	"github.com/jrsteele09/schoolgest-client/auth"
	"github.com/jrsteele09/schoolgest-client/bulletins"
	"github.com/jrsteele09/schoolgest-client/communications"
	"github.com/jrsteele09/schoolgest-client/evaluations"
	"github.com/jrsteele09/schoolgest-client/internal/config"
	"github.com/jrsteele09/schoolgest-client/logbook"
	"github.com/jrsteele09/schoolgest-client/metrics"
	"github.com/jrsteele09/schoolgest-client/notify"
	"github.com/jrsteele09/schoolgest-client/refresh"
	"github.com/jrsteele09/schoolgest-client/resources"
	"github.com/jrsteele09/schoolgest-client/schedule"
	"github.com/jrsteele09/schoolgest-client/sessions"
	"github.com/jrsteele09/schoolgest-client/storage"
	"github.com/jrsteele09/schoolgest-client/token"
	tokenjwt "github.com/jrsteele09/schoolgest-client/token/jwt"
	"github.com/jrsteele09/schoolgest-client/transport"
	"github.com/jrsteele09/schoolgest-client/users"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type App struct {
	config      config.Config
	logger      zerolog.Logger
	store       *token.Store
	state       *sessions.State
	coordinator *refresh.Coordinator
	metrics     metrics.Recorder
	httpClient  *http.Client

	Auth           *auth.Service
	Users          *users.Client
	Academic       *academic.Client
	Schedule       *schedule.Client
	Attendance     *attendance.Client
	Evaluations    *evaluations.Client
	Assignments    *assignments.Client
	Resources      *resources.Client
	Communications *communications.Client
	Logbook        *logbook.Client
	Bulletins      *bulletins.Client
	Storage        *storage.Client
	Admin          *admin.Client
	Reporter       *apierror.Reporter
}

type Option func(*options)

type options struct {
	logger     zerolog.Logger
	registerer prometheus.Registerer
	base       http.RoundTripper
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegisterer exports the client metrics to a Prometheus registry
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithBaseTransport replaces http.DefaultTransport below the middleware chain
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.base = rt
	}
}

// New wires every component. repo holds the credential and the user
// snapshot; notifier and navigator receive user-facing messages and
// redirects.
func New(cfg config.Config, repo token.Repo, notifier notify.Notifier, navigator notify.Navigator, opts ...Option) (*App, error) {
	o := options{logger: log.Logger, base: http.DefaultTransport}
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{config: cfg, logger: o.logger, metrics: metrics.Noop{}}
	if o.registerer != nil {
		m, err := metrics.NewPrometheus(o.registerer)
		if err != nil {
			return nil, fmt.Errorf("[app New] failed to register metrics: %w", err)
		}
		a.metrics = m
	}

	a.store = token.NewStore(repo)
	a.state = sessions.NewState(a.store, sessions.WithLogger(o.logger))

	// The refresher is set once the auth service exists, since it sends
	// through the transport that calls the coordinator.
	a.coordinator = refresh.NewCoordinator(nil,
		refresh.WithFailureHandler(func(err error) { a.Auth.ExpireSession(err) }),
		refresh.WithTimeout(cfg.GetRefreshTimeout()),
		refresh.WithMetrics(a.metrics),
		refresh.WithLogger(o.logger),
	)

	inner := transport.Chain(o.base,
		transport.Recover(o.logger),
		transport.Logging(o.logger, cfg.IsDev()),
	)
	authenticator := transport.NewAuthenticator(inner, a.store, a.coordinator,
		transport.WithMetrics(a.metrics),
		transport.WithLogger(o.logger),
		transport.WithAuthPaths(api.RouteAuthLogin, api.RouteAuthRefresh),
	)
	a.httpClient = &http.Client{Transport: authenticator, Timeout: cfg.GetAPITimeout()}

	client, err := api.New(cfg.GetAPIURL(), a.httpClient, api.WithLogger(o.logger))
	if err != nil {
		return nil, fmt.Errorf("[app New] %w", err)
	}

	validator := tokenjwt.NewValidator(
		tokenjwt.WithRemoteKeySet(context.Background(), cfg.GetJWKSURL()),
		tokenjwt.WithLeeway(cfg.GetTokenLeeway()),
	)
	a.Auth, err = auth.NewService(client, a.store, a.state,
		auth.WithTokenValidator(validator),
		auth.WithNotifier(notifier),
		auth.WithNavigator(navigator),
		auth.WithLogger(o.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("[app New] failed to create auth service: %w", err)
	}
	a.coordinator.SetRefresher(a.Auth.RefreshAccessToken)

	a.Users = users.NewClient(client)
	a.Academic = academic.NewClient(client)
	a.Schedule = schedule.NewClient(client)
	a.Attendance = attendance.NewClient(client)
	a.Evaluations = evaluations.NewClient(client)
	a.Assignments = assignments.NewClient(client)
	a.Resources = resources.NewClient(client)
	a.Communications = communications.NewClient(client)
	a.Logbook = logbook.NewClient(client)
	a.Bulletins = bulletins.NewClient(client)
	a.Storage = storage.NewClient(client)
	a.Admin = admin.NewClient(client)
	a.Reporter = apierror.NewReporter(notifier, navigator,
		apierror.WithReporterMetrics(a.metrics),
		apierror.WithReporterLogger(o.logger),
	)
	return a, nil
}

// Start restores the persisted session and logs what the client is pointed at
func (a *App) Start(ctx context.Context) error {
	err := a.Auth.Initialize(ctx)

	event := a.logger.Info().
		Str("env", a.config.GetEnv()).
		Str("api", a.config.GetAPIURL()).
		Bool("authenticated", a.Auth.IsAuthenticated())
	if user := a.Auth.CurrentUser(); user != nil {
		event = event.Str("user", user.Username).Str("role", string(user.Role))
	}
	event.Msg("client ready")

	if err != nil {
		return fmt.Errorf("[app Start] failed to restore session: %w", err)
	}
	return nil
}

// Session returns the current session value
func (a *App) Session() sessions.Session {
	return a.state.Current()
}

// RefreshState reports whether a token refresh is in progress
func (a *App) RefreshState() refresh.State {
	return a.coordinator.State()
}

// Report classifies err and surfaces it through the notifier
func (a *App) Report(ctx context.Context, err error, op string) apierror.ErrorDetails {
	return a.Reporter.Report(ctx, err, op)
}
