package app_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/jrsteele09/schoolgest-client/apierror"
	"github.com/jrsteele09/schoolgest-client/app"
	"github.com/jrsteele09/schoolgest-client/internal/config"
	"github.com/jrsteele09/schoolgest-client/notify"
	"github.com/jrsteele09/schoolgest-client/refresh"
	tokenrepofake "github.com/jrsteele09/schoolgest-client/token/repofake"
	"github.com/jrsteele09/schoolgest-client/users"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type backend struct {
	lock          sync.Mutex
	refreshFails  bool
	refreshCalls  int
	refreshBearer []string
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/api/auth/login":
		_, _ = w.Write([]byte(`{"accessToken":"T1","refreshToken":"R1","user":{"id":1,"username":"admin","role":"ROLE_ADMIN"}}`))
	case "/api/auth/refresh":
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		b.lock.Lock()
		b.refreshCalls++
		b.refreshBearer = append(b.refreshBearer, r.Header.Get("Authorization"))
		fails := b.refreshFails
		b.lock.Unlock()

		if fails || body.RefreshToken != "R1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Refresh token expired"}`))
			return
		}
		_, _ = w.Write([]byte(`{"accessToken":"T2"}`))
	case "/api/users":
		if r.Header.Get("Authorization") != "Bearer T2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`[{"id":1,"username":"admin","role":"ADMIN"}]`))
	case "/api/communications/non-lus/1":
		if r.Header.Get("Authorization") != "Bearer T1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`3`))
	case "/api/admin/system/status":
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"Accès refusé"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (b *backend) refreshes() (int, []string) {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.refreshCalls, append([]string(nil), b.refreshBearer...)
}

type testFixture struct {
	app      *app.App
	backend  *backend
	recorder *notify.Recorder
	registry *prometheus.Registry
	repo     *tokenrepofake.FakeTokenRepo
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()
	b := &backend{}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	t.Setenv("API_URL", srv.URL+"/api")
	t.Setenv("ENV", "TEST")
	cfg, err := config.New()
	require.NoError(t, err)

	recorder := notify.NewRecorder()
	registry := prometheus.NewRegistry()
	repo := tokenrepofake.NewFakeTokenRepo()
	a, err := app.New(cfg, repo, recorder, recorder,
		app.WithLogger(zerolog.Nop()),
		app.WithRegisterer(registry),
		app.WithBaseTransport(srv.Client().Transport),
	)
	require.NoError(t, err)

	return &testFixture{app: a, backend: b, recorder: recorder, registry: registry, repo: repo}
}

func (f *testFixture) login(t *testing.T) {
	t.Helper()
	user, err := f.app.Auth.Login(context.Background(), users.LoginRequest{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, users.RoleAdmin, user.Role)
}

func TestApp_StartWithoutSession(t *testing.T) {
	f := setupTestFixture(t)

	require.NoError(t, f.app.Start(context.Background()))
	require.False(t, f.app.Session().Authenticated)
	require.Equal(t, refresh.Idle, f.app.RefreshState())
}

func TestApp_RefreshesExpiredToken(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)

	list, err := f.app.Users.Search(context.Background(), users.Filter{})
	require.NoError(t, err)
	require.Len(t, list, 1)

	calls, bearers := f.backend.refreshes()
	require.Equal(t, 1, calls)
	require.Equal(t, []string{""}, bearers)
	require.Equal(t, refresh.Idle, f.app.RefreshState())
	require.NoError(t, testutil.GatherAndCompare(f.registry, strings.NewReader(`
# HELP schoolgest_client_requests_retried_total Requests re-issued after a 401.
# TYPE schoolgest_client_requests_retried_total counter
schoolgest_client_requests_retried_total 1
`), "schoolgest_client_requests_retried_total"))
}

func TestApp_FailedRefreshExpiresSession(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)
	f.backend.lock.Lock()
	f.backend.refreshFails = true
	f.backend.lock.Unlock()

	_, err := f.app.Users.Search(context.Background(), users.Filter{})
	require.Error(t, err)
	details := f.app.Report(context.Background(), err, "list users")
	require.Equal(t, apierror.CodeSessionExpired, details.Code)

	require.False(t, f.app.Session().Authenticated)
	require.Zero(t, f.repo.Len())
	require.Equal(t, []notify.Notification{{Message: "Session expirée. Veuillez vous reconnecter.", Level: notify.LevelError}}, f.recorder.Notifications())
	require.Equal(t, []string{notify.RouteLogin}, f.recorder.Routes())
}

func TestApp_DomainClientsShareSession(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)

	unread, err := f.app.Communications.UnreadCount(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, int64(3), unread)
	calls, _ := f.backend.refreshes()
	require.Zero(t, calls)

	require.NotNil(t, f.app.Schedule)
	require.NotNil(t, f.app.Evaluations)
	require.NotNil(t, f.app.Assignments)
	require.NotNil(t, f.app.Resources)
	require.NotNil(t, f.app.Logbook)
}

func TestApp_ReportForbidden(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.app.Admin.SystemStatus(context.Background())
	details := f.app.Report(context.Background(), err, "admin status")

	require.Equal(t, apierror.CodeForbidden, details.Code)
	require.Len(t, f.recorder.Notifications(), 1)
	require.Equal(t, []string{notify.RouteAccessDenied}, f.recorder.Routes())
	count, err := testutil.GatherAndCount(f.registry, "schoolgest_client_errors_total")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
