package http

import (
	"net/http"

	"github.com/neuraops/dashboard/internal/dashboard/app/guard"
	pkghttp "github.com/neuraops/dashboard/pkg/http"
	"github.com/neuraops/dashboard/pkg/log"
)

type LogoutHandler struct {
	routes guard.Routes
	logger log.Logger
}

func NewLogoutHandler(routes guard.Routes, logger log.Logger) LogoutHandler {
	return LogoutHandler{
		routes: routes,
		logger: logger,
	}
}

func (h LogoutHandler) Method() string {
	return http.MethodPost
}

func (h LogoutHandler) Path() string {
	return "/logout"
}

func (h LogoutHandler) HTTPHandler() pkghttp.HandlerFunc {
	return func(w pkghttp.ResponseWriter, r *http.Request) error {
		scope, ok := ScopeFromContext(r.Context())
		if !ok {
			return errNoScope
		}

		if err := scope.Session.Logout(r.Context()); err != nil {
			h.logger.WithError(err).Error(r.Context(), "local session cleanup failed")
		}

		w.Redirect(h.routes.Login, http.StatusSeeOther)
		return nil
	}
}
