package dashboard

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/neuraops/dashboard/internal/dashboard/app/guard"
	"github.com/neuraops/dashboard/internal/dashboard/app/initializer"
	"github.com/neuraops/dashboard/internal/dashboard/app/service"
	"github.com/neuraops/dashboard/internal/dashboard/app/tokenstore"
	"github.com/neuraops/dashboard/internal/dashboard/infra/controlplane"
	"github.com/neuraops/dashboard/internal/dashboard/infra/cookie"
	"github.com/neuraops/dashboard/internal/dashboard/infra/http"
	"github.com/neuraops/dashboard/internal/dashboard/infra/storage"
	commoncmd "github.com/neuraops/dashboard/internal/pkg/cmd"
	commonhttp "github.com/neuraops/dashboard/internal/pkg/http"
	pkghttp "github.com/neuraops/dashboard/pkg/http"
	pkglazy "github.com/neuraops/dashboard/pkg/lazy"
	pkglog "github.com/neuraops/dashboard/pkg/log"
	pkgmetric "github.com/neuraops/dashboard/pkg/metric"
	pkgtime "github.com/neuraops/dashboard/pkg/time"
	pkgworker "github.com/neuraops/dashboard/pkg/worker"
)

const cliScopeName = "cli"

type DependencyContainer struct {
	Routes       guard.Routes
	Backend      pkglazy.Loader[storage.Backend]
	ControlPlane pkglazy.Loader[*controlplane.API]
	Renderer     pkglazy.Loader[*http.Renderer]
	Throttle     pkglazy.Loader[*http.LoginThrottle]
	Initializer  pkglazy.Loader[initializer.Initializer]
	CLISession   pkglazy.Loader[*service.SessionService]

	config  pkglazy.Loader[commoncmd.Config]
	clock   pkgtime.Clock
	metrics pkglazy.Loader[pkgmetric.Metrics]
	logger  pkglazy.Loader[pkglog.Logger]
}

func NewDependencyContainer(
	config pkglazy.Loader[commoncmd.Config],
	httpClients pkglazy.Loader[commoncmd.HTTPClientFactory],
	metrics pkglazy.Loader[pkgmetric.Metrics],
	logger pkglazy.Loader[pkglog.Logger],
) *DependencyContainer {
	clock := pkgtime.NewAdjustableClock()
	routes := guard.DefaultRoutes()

	return &DependencyContainer{
		Routes:       routes,
		Backend:      backendProvider(config, clock),
		ControlPlane: controlPlaneProvider(httpClients),
		Renderer: pkglazy.New(func() (*http.Renderer, error) {
			return http.NewRenderer(http.DefaultPages())
		}),
		Throttle: pkglazy.New(func() (*http.LoginThrottle, error) {
			cfg := config.MustLoad()
			return http.NewLoginThrottle(cfg.LoginRate, cfg.LoginBurst, clock), nil
		}),
		Initializer: pkglazy.New(func() (initializer.Initializer, error) {
			return initializer.New(routes, logger.MustLoad()), nil
		}),
		CLISession: cliSessionProvider(config, httpClients, clock, logger),
		config:     config,
		clock:      clock,
		metrics:    metrics,
		logger:     logger,
	}
}

func (c *DependencyContainer) MustRegisterHTTPHandlers(registry pkghttp.HandlerRegistry) {
	http.RegisterHandlers(registry, http.Dependencies{
		Scope: http.ScopeConfig{
			Backend:       c.Backend.MustLoad(),
			ControlPlane:  c.ControlPlane.MustLoad(),
			SecureCookies: c.config.MustLoad().SecureCookies,
			Logger:        c.logger.MustLoad(),
		},
		Routes:      c.Routes,
		Pages:       http.DefaultPages(),
		Renderer:    c.Renderer.MustLoad(),
		Throttle:    c.Throttle.MustLoad(),
		Initializer: c.Initializer.MustLoad(),
		Metrics:     c.metrics.MustLoad(),
		Logger:      c.logger.MustLoad(),
	})
}

// WaitControlPlane blocks until the control plane answers its health check.
func (c *DependencyContainer) WaitControlPlane(ctx context.Context) error {
	return c.ControlPlane.MustLoad().WaitReady(ctx, c.config.MustLoad().APIWait, c.logger.MustLoad())
}

// PurgeJob periodically forgets visitors and login throttles idle for longer than the configured TTL.
func (c *DependencyContainer) PurgeJob() pkgworker.ErrorJob {
	cfg := c.config.MustLoad()
	logger := c.logger.MustLoad()

	purge := func(ctx context.Context) error {
		idleSince := c.clock.Now(ctx).Add(-cfg.VisitorIdleTTL)

		scopes, err := c.Backend.MustLoad().PurgeIdle(ctx, idleSince)
		if err != nil {
			return fmt.Errorf("purge idle visitors: %w", err)
		}
		throttles := c.Throttle.MustLoad().Purge(idleSince)

		if scopes > 0 || throttles > 0 {
			logger.With(pkglog.Fields{
				"scopes":    scopes,
				"throttles": throttles,
			}).Info(ctx, "purged idle visitors")
		}
		return nil
	}

	return pkgworker.PeriodicalJob(purge, cfg.PurgeInterval, logger)
}

func backendProvider(config pkglazy.Loader[commoncmd.Config], clock pkgtime.Clock) pkglazy.Loader[storage.Backend] {
	return pkglazy.New(func() (storage.Backend, error) {
		path := config.MustLoad().StoragePath
		if path == "" {
			return storage.NewMemoryBackend(clock), nil
		}

		backend, err := storage.NewFileBackend(path, clock)
		if err != nil {
			return nil, fmt.Errorf("open storage %s: %w", path, err)
		}
		return backend, nil
	})
}

func controlPlaneProvider(httpClients pkglazy.Loader[commoncmd.HTTPClientFactory]) pkglazy.Loader[*controlplane.API] {
	return pkglazy.New(func() (*controlplane.API, error) {
		return controlplane.NewAPI(
			httpClients.MustLoad().MustInitClient(commonhttp.DestinationControlPlane),
			controlplane.DefaultTimeout,
		), nil
	})
}

// cliSessionProvider keeps the command line token in the credentials file, cookies live in a per-process jar.
func cliSessionProvider(
	config pkglazy.Loader[commoncmd.Config],
	httpClients pkglazy.Loader[commoncmd.HTTPClientFactory],
	clock pkgtime.Clock,
	logger pkglazy.Loader[pkglog.Logger],
) pkglazy.Loader[*service.SessionService] {
	return pkglazy.New(func() (*service.SessionService, error) {
		cfg := config.MustLoad()

		site, err := url.Parse(cfg.APIURL)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", cfg.APIURL, err)
		}
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		backend, err := storage.NewFileBackend(cfg.CredentialsPath, clock)
		if err != nil {
			return nil, fmt.Errorf("open credentials %s: %w", cfg.CredentialsPath, err)
		}

		api := controlplane.NewAPI(
			httpClients.MustLoad().MustInitClient(commonhttp.DestinationControlPlane, pkghttp.WithCookieJar(jar)),
			controlplane.DefaultTimeout,
		)
		tokens := tokenstore.NewStore(
			storage.Scoped(backend, storage.DurableScopeName(cliScopeName)),
			cookie.NewJarCookies(jar, site),
			logger.MustLoad(),
			tokenstore.WithCookieMaxAge(tokenstore.DefaultCookieMaxAge),
		)

		return service.NewSessionService(
			api,
			tokens,
			storage.Scoped(backend, storage.SessionScopeName(cliScopeName)),
			logger.MustLoad(),
			service.WithLogoutTimeout(5*time.Second),
		), nil
	})
}
