package http

import (
	"net/http"

	"github.com/neuraops/dashboard/internal/dashboard/app/guard"
	"github.com/neuraops/dashboard/internal/dashboard/app/initializer"
	pkghttp "github.com/neuraops/dashboard/pkg/http"
	"github.com/neuraops/dashboard/pkg/log"
	"github.com/neuraops/dashboard/pkg/metric"
)

// WithRouteGuard decides on token presence only and never calls the control plane.
func WithRouteGuard(routes guard.Routes, metrics metric.Metrics) pkghttp.ServerOption {
	return pkghttp.WithMW(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hasToken := false
			if scope, ok := ScopeFromContext(r.Context()); ok {
				_, hasToken = scope.Tokens.Get(r.Context())
			}

			decision := routes.Decide(r.URL.Path, r.URL.Query().Get(guard.RedirectParam), hasToken)
			if decision.Action == guard.ActionRedirect {
				metrics.With(metric.Labels{
					"class": routes.Classify(r.URL.Path).String(),
				}).Increment("route_guard_redirects_total")
				http.Redirect(w, r, decision.Location, http.StatusTemporaryRedirect)
				return
			}

			handler.ServeHTTP(w, r)
		})
	})
}

// WithAuthInitializer re-validates the session once per page load and exposes the confirmed user to the page.
func WithAuthInitializer(authInit initializer.Initializer, routes guard.Routes, logger log.Logger) pkghttp.ServerOption {
	return pkghttp.WithMW(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope, ok := ScopeFromContext(r.Context())
			if !ok {
				logger.Error(r.Context(), "session scope is missing, sending to login")
				http.Redirect(w, r, routes.LoginLocation(r.URL.Path), http.StatusTemporaryRedirect)
				return
			}

			result := authInit.Run(r.Context(), scope.Session, r.URL.Path)
			if result.Outcome == initializer.OutcomeRedirect {
				http.Redirect(w, r, result.Location, http.StatusTemporaryRedirect)
				return
			}

			ctx := r.Context()
			if result.User != nil {
				ctx = withUser(ctx, result.User)
			}
			handler.ServeHTTP(w, r.WithContext(ctx))
		})
	})
}
