package dashboard_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuraops/dashboard/internal/dashboard"
	"github.com/neuraops/dashboard/internal/dashboard/domain"
	commoncmd "github.com/neuraops/dashboard/internal/pkg/cmd"
)

type controlPlaneState struct {
	revoked atomic.Bool
	meCalls atomic.Int32
}

func fakeControlPlane(t *testing.T, state *controlPlaneState) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/health":
			_, _ = w.Write([]byte(`{"status":"healthy"}`))
		case "/api/auth/login":
			var in domain.Credentials
			_ = json.NewDecoder(r.Body).Decode(&in)
			if in.Password != "admin123" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"token":"T","user":{"id":1,"username":"admin","role":"admin"}}`))
		case "/api/auth/me":
			state.meCalls.Add(1)
			if state.revoked.Load() || r.Header.Get("Authorization") != "Bearer T" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"id":1,"username":"admin","role":"admin"}`))
		case "/api/auth/logout":
			_, _ = w.Write([]byte(`{"status":"success"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	return srv
}

func newContainers(t *testing.T) (*commoncmd.InfrastructureContainer, *dashboard.DependencyContainer) {
	t.Helper()

	infra := commoncmd.NewInfrastructureContainer(io.Discard)
	return infra, dashboard.NewDependencyContainer(
		infra.Config,
		infra.HTTPClientFactory,
		infra.Metrics,
		infra.Logger,
	)
}

func setupEnv(t *testing.T) (string, *controlPlaneState) {
	t.Helper()

	state := &controlPlaneState{}
	dir := t.TempDir()
	t.Setenv("NEURAOPS_API_URL", fakeControlPlane(t, state).URL)
	t.Setenv("NEURAOPS_API_WAIT", "1s")
	t.Setenv("LOG_LEVEL", "disabled")
	t.Setenv("DASHBOARD_STORAGE_PATH", filepath.Join(dir, "storage.json"))
	t.Setenv("NEURAOPS_CREDENTIALS_PATH", filepath.Join(dir, "credentials.json"))

	return dir, state
}

func TestDependencyContainer_ServesDashboard(t *testing.T) {
	_, _ = setupEnv(t)
	infra, container := newContainers(t)

	require.NoError(t, container.WaitControlPlane(context.Background()))

	server := infra.HTTPServer.MustLoad()
	container.MustRegisterHTTPHandlers(server)

	site := httptest.NewServer(server)
	defer site.Close()

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}

	tests := []struct {
		name     string
		path     string
		status   int
		location string
	}{
		{name: "health_check", path: "/healthz", status: http.StatusOK},
		{name: "metrics", path: "/metrics", status: http.StatusOK},
		{name: "login_page", path: "/login", status: http.StatusOK},
		{name: "protected_page", path: "/monitoring", status: http.StatusTemporaryRedirect, location: "/login?redirect=%2Fmonitoring"},
		{name: "home_page", path: "/", status: http.StatusTemporaryRedirect, location: "/login?redirect=%2F"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.Get(site.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.location, resp.Header.Get("Location"))
		})
	}
}

func TestDependencyContainer_CLISessionSurvivesRestart(t *testing.T) {
	dir, _ := setupEnv(t)
	ctx := context.Background()

	_, container := newContainers(t)
	user, err := container.CLISession.MustLoad().Login(ctx, domain.Credentials{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, "1", user.ID)

	info, err := os.Stat(filepath.Join(dir, "credentials.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	_, restarted := newContainers(t)
	session := restarted.CLISession.MustLoad()
	assert.True(t, session.IsAuthenticated(ctx))

	current, err := session.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "admin", current.Username)

	require.NoError(t, session.Logout(ctx))

	_, afterLogout := newContainers(t)
	assert.False(t, afterLogout.CLISession.MustLoad().IsAuthenticated(ctx))
}

func TestDependencyContainer_PurgeJobStopsWithContext(t *testing.T) {
	_, _ = setupEnv(t)
	t.Setenv("DASHBOARD_PURGE_INTERVAL", "10ms")
	_, container := newContainers(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- container.PurgeJob()(ctx) }()

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestDependencyContainer_CLISessionSeesRevokedToken(t *testing.T) {
	_, state := setupEnv(t)
	ctx := context.Background()

	_, container := newContainers(t)
	_, err := container.CLISession.MustLoad().Login(ctx, domain.Credentials{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	state.revoked.Store(true)

	_, restarted := newContainers(t)
	user, err := restarted.CLISession.MustLoad().CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Equal(t, int32(1), state.meCalls.Load())
}
