package http

import (
	"net/http"

	"github.com/neuraops/dashboard/internal/dashboard/app/guard"
	"github.com/neuraops/dashboard/internal/dashboard/app/initializer"
	pkghttp "github.com/neuraops/dashboard/pkg/http"
	"github.com/neuraops/dashboard/pkg/log"
	"github.com/neuraops/dashboard/pkg/metric"
)

type Dependencies struct {
	Scope       ScopeConfig
	Routes      guard.Routes
	Pages       []Page
	Renderer    *Renderer
	Throttle    *LoginThrottle
	Initializer initializer.Initializer
	Metrics     metric.Metrics
	Logger      log.Logger
}

// RegisterHandlers mounts the dashboard. Pages get the route guard and then the auth initializer.
func RegisterHandlers(registry pkghttp.HandlerRegistry, deps Dependencies) {
	scope := WithSessionScope(deps.Scope)
	routeGuard := WithRouteGuard(deps.Routes, deps.Metrics)
	authInit := WithAuthInitializer(deps.Initializer, deps.Routes, deps.Logger)

	registry.Use(
		pkghttp.WithPrefixRoute("/static/", StaticHandler()),
		pkghttp.WithRoute(http.MethodGet, "/favicon.ico", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})),
	)

	registry.Register(NewLoginPageHandler(deps.Renderer, deps.Routes), scope, routeGuard)
	// LoginHandler sends signed-in visitors on with a 303
	registry.Register(NewLoginHandler(deps.Renderer, deps.Routes, deps.Throttle, deps.Metrics, deps.Logger), scope)
	registry.Register(NewLogoutHandler(deps.Routes, deps.Logger), scope)
	registry.Register(NewSessionHandler(), scope)

	for _, page := range deps.Pages {
		registry.Register(NewPageHandler(page, deps.Renderer, deps.Routes), scope, routeGuard, authInit)
	}
}
