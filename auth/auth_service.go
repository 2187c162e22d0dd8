// Package auth is the client side of the SchoolGest authentication flow. It
// owns the credential lifecycle and is the only caller that changes the
// session.
package auth

import (
	"context"
	"encoding/json"

	"github.com/jrsteele09/schoolgest-client/api"
	"github.com/jrsteele09/schoolgest-client/apierror"
	apperrors "github.com/jrsteele09/schoolgest-client/internal/errors"
	"github.com/jrsteele09/schoolgest-client/notify"
	"github.com/jrsteele09/schoolgest-client/sessions"
	"github.com/jrsteele09/schoolgest-client/token"
	tokenjwt "github.com/jrsteele09/schoolgest-client/token/jwt"
	"github.com/jrsteele09/schoolgest-client/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Service provides login, registration, token refresh and profile calls and
// keeps the session in line with their results.
type Service struct {
	client    *api.Client
	store     *token.Store
	state     *sessions.State
	tokens    *tokenjwt.Validator
	notifier  notify.Notifier
	navigator notify.Navigator
	logger    zerolog.Logger
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithTokenValidator sets the validator used on startup
func WithTokenValidator(v *tokenjwt.Validator) ServiceOption {
	return func(s *Service) {
		s.tokens = v
	}
}

func WithNotifier(n notify.Notifier) ServiceOption {
	return func(s *Service) {
		s.notifier = n
	}
}

func WithNavigator(n notify.Navigator) ServiceOption {
	return func(s *Service) {
		s.navigator = n
	}
}

func WithLogger(logger zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService initializes a Service. client must send requests through the
// authenticating transport.
func NewService(client *api.Client, store *token.Store, state *sessions.State, options ...ServiceOption) (*Service, error) {
	if client == nil {
		return nil, errors.New("[auth NewService] client is required")
	}
	if store == nil {
		return nil, errors.New("[auth NewService] token store is required")
	}
	if state == nil {
		return nil, errors.New("[auth NewService] session state is required")
	}

	s := &Service{
		client:    client,
		store:     store,
		state:     state,
		tokens:    tokenjwt.NewValidator(),
		notifier:  notify.Discard{},
		navigator: notify.Discard{},
		logger:    log.Logger,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Initialize restores the session on process start. Without a live access
// token every persisted value is cleared. Otherwise the cached user is shown
// straight away and then reconciled with the backend; a failed reconciliation
// logs out.
func (s *Service) Initialize(ctx context.Context) error {
	accessToken := s.store.AccessToken()
	if accessToken == "" {
		return s.state.Clear()
	}
	claims, err := s.tokens.Validate(ctx, accessToken)
	if err != nil {
		s.logger.Info().Err(err).Bool("expired", tokenjwt.IsExpired(err)).Msg("stored access token is no longer valid, clearing session")
		return s.state.Clear()
	}
	s.logger.Debug().Str("subject", claims.Subject).Time("expires_at", claims.ExpiresAt).Msg("stored access token accepted")

	user, err := s.store.Snapshot()
	switch {
	case err == nil && users.NormalizeRole(user.Role) != "":
		if err := s.state.Set(user); err != nil {
			s.logger.Warn().Err(err).Msg("cached user could not be restored")
		} else {
			s.logger.Debug().Str("username", user.Username).Msg("session restored from snapshot")
		}
	case err == nil, token.IsNotFound(err):
	default:
		s.logger.Warn().Err(err).Msg("cached user is corrupt")
	}

	return s.Reconcile(ctx)
}

// Reconcile replaces the session with the backend's view of the user and
// logs out when the backend does not confirm it.
func (s *Service) Reconcile(ctx context.Context) error {
	if _, err := s.GetMe(ctx); err != nil {
		s.Logout()
		return errors.Wrap(err, "[auth Reconcile] failed to fetch current user")
	}
	return nil
}

// Login authenticates with username and password
func (s *Service) Login(ctx context.Context, req users.LoginRequest) (*users.User, error) {
	if err := users.Validate(req); err != nil {
		return nil, err
	}

	var resp users.AuthResponse
	if err := s.client.Post(ctx, api.RouteAuthLogin, req, &resp); err != nil {
		return nil, err
	}
	if err := s.handleAuthResponse(&resp); err != nil {
		return nil, err
	}
	return s.CurrentUser(), nil
}

// Register creates an account. The user is logged in when the backend
// answers with an access token.
func (s *Service) Register(ctx context.Context, req users.RegisterRequest) (*users.AuthResponse, error) {
	if err := users.Validate(req); err != nil {
		return nil, err
	}

	var resp users.AuthResponse
	if err := s.client.Post(ctx, api.RouteAuthRegister, req, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken != "" {
		if err := s.handleAuthResponse(&resp); err != nil {
			return nil, err
		}
	}
	return &resp, nil
}

// RefreshAccessToken exchanges the stored refresh token for a new access
// token. It is the refresh coordinator's only refresher.
func (s *Service) RefreshAccessToken(ctx context.Context) (string, error) {
	refreshToken := s.store.RefreshToken()
	if refreshToken == "" {
		return "", apperrors.ErrNoRefreshToken
	}

	var resp users.AuthResponse
	if err := s.client.Post(ctx, api.RouteAuthRefresh, refreshRequest{RefreshToken: refreshToken}, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", MissingAccessTokenErr
	}

	if err := s.store.SetCredential(token.Credential{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}); err != nil {
		return "", errors.Wrap(err, "[auth RefreshAccessToken] failed to store credential")
	}
	if resp.User != nil {
		if err := s.state.Set(resp.User); err != nil {
			return "", err
		}
	}
	return resp.AccessToken, nil
}

// GetMe fetches the authenticated user and makes it the current user
func (s *Service) GetMe(ctx context.Context) (*users.User, error) {
	var raw json.RawMessage
	if err := s.client.Get(ctx, api.RouteAuthMe, nil, &raw); err != nil {
		return nil, err
	}

	user, err := decodeMe(raw)
	if err != nil {
		return nil, err
	}
	if err := s.state.Set(user); err != nil {
		return nil, err
	}
	return s.CurrentUser(), nil
}

// decodeMe accepts the bare user or the {profile, academicDetails} envelope
func decodeMe(raw json.RawMessage) (*users.User, error) {
	var envelope users.MeResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, errors.Wrap(MalformedProfileErr, err.Error())
	}
	if envelope.Profile != nil {
		user := envelope.Profile
		if len(envelope.AcademicDetails) > 0 && string(envelope.AcademicDetails) != "null" {
			user.AcademicDetails = envelope.AcademicDetails
		}
		return user, nil
	}

	var user users.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, errors.Wrap(MalformedProfileErr, err.Error())
	}
	return &user, nil
}

// UpdateProfile saves profile changes. A response without a role keeps the
// current one.
func (s *Service) UpdateProfile(ctx context.Context, update users.ProfileUpdate) (*users.User, error) {
	if err := users.Validate(update); err != nil {
		return nil, err
	}

	var user users.User
	if err := s.client.Put(ctx, api.RouteAuthProfile, update, &user); err != nil {
		return nil, err
	}
	if user.Role == "" {
		user.Role = s.Role()
	}
	if err := s.state.Set(&user); err != nil {
		return nil, err
	}
	return s.CurrentUser(), nil
}

func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	req := ForgotPasswordRequest{Email: email}
	if err := users.Validate(req); err != nil {
		return err
	}
	return s.client.Post(ctx, api.RouteAuthForgotPassword, req, nil)
}

func (s *Service) ResetPassword(ctx context.Context, req users.ResetPasswordRequest) error {
	if err := users.Validate(req); err != nil {
		return err
	}
	return s.client.Post(ctx, api.RouteAuthResetPassword, req, nil)
}

func (s *Service) VerifyEmail(ctx context.Context, email, code string) error {
	req := VerifyEmailRequest{Email: email, Code: code}
	if err := users.Validate(req); err != nil {
		return err
	}
	return s.client.Post(ctx, api.RouteAuthVerifyEmail, req, nil)
}

func (s *Service) ChangePassword(ctx context.Context, req users.ChangePasswordRequest) error {
	if err := users.Validate(req); err != nil {
		return err
	}
	return s.client.Post(ctx, api.RouteAuthChangePassword, req, nil)
}

// Logout clears the credential and the session and sends the user to the
// login route. In-flight requests are not cancelled.
func (s *Service) Logout() {
	if err := s.state.Clear(); err != nil {
		s.logger.Error().Err(err).Msg("failed to clear persisted session")
	}
	s.navigator.Navigate(notify.RouteLogin)
}

// ExpireSession is the refresh coordinator's failure handler: the user is
// told once and logged out.
func (s *Service) ExpireSession(err error) {
	s.logger.Warn().Err(err).Msg("session expired")
	s.notifier.Notify(apierror.UserMessage(err), notify.LevelError)
	s.Logout()
}

func (s *Service) handleAuthResponse(resp *users.AuthResponse) error {
	if resp == nil || resp.User == nil {
		s.logger.Error().Msg("auth response has no user")
		s.Logout()
		return apperrors.ErrInvalidAuthResponse
	}
	if resp.AccessToken == "" {
		s.Logout()
		return MissingAccessTokenErr
	}

	if err := s.store.SetCredential(token.Credential{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}); err != nil {
		return errors.Wrap(err, "[auth handleAuthResponse] failed to store credential")
	}
	if err := s.state.Set(resp.User); err != nil {
		s.Logout()
		return err
	}
	return nil
}

// AccessClaims decodes the stored access token. ErrNotAuthenticated means
// no token is stored.
func (s *Service) AccessClaims(ctx context.Context) (*tokenjwt.Claims, error) {
	accessToken := s.store.AccessToken()
	if accessToken == "" {
		return nil, apperrors.ErrNotAuthenticated
	}
	return s.tokens.Validate(ctx, accessToken)
}

// Session returns the current session value
func (s *Service) Session() sessions.Session {
	return s.state.Current()
}

// Subscribe follows session changes, see sessions.State.Subscribe
func (s *Service) Subscribe() (<-chan sessions.Session, func()) {
	return s.state.Subscribe()
}

func (s *Service) CurrentUser() *users.User {
	return s.state.Current().User
}

func (s *Service) IsAuthenticated() bool {
	return s.state.Current().Authenticated
}

func (s *Service) Role() users.Role {
	return s.state.Current().Role
}

func (s *Service) HasRole(role users.Role) bool {
	return s.state.Current().HasRole(role)
}
