package http

import (
	"net/http"

	"github.com/neuraops/dashboard/internal/dashboard/domain"
	pkghttp "github.com/neuraops/dashboard/pkg/http"
)

type SessionHandler struct{}

func NewSessionHandler() SessionHandler {
	return SessionHandler{}
}

func (h SessionHandler) Method() string {
	return http.MethodGet
}

func (h SessionHandler) Path() string {
	return "/api/session"
}

func (h SessionHandler) HTTPHandler() pkghttp.HandlerFunc {
	return func(w pkghttp.ResponseWriter, r *http.Request) error {
		scope, ok := ScopeFromContext(r.Context())
		if !ok {
			return errNoScope
		}

		user, err := scope.Session.CurrentUser(r.Context())
		if err != nil {
			status := http.StatusBadGateway
			out := errorOut{Message: err.Error()}
			if apiErr, isAPIErr := pkghttp.AsAPIError(err); isAPIErr {
				out.Code = apiErr.Code
				out.Status = apiErr.Status
				if pkghttp.IsAuthError(err) {
					status = apiErr.Status
				}
			}

			w.SetStatusCode(status).SetJSONBody(sessionOut{Error: &out})
			return nil
		}

		w.SetHeader("Cache-Control", "no-store").SetJSONBody(sessionOut{
			Authenticated: user != nil,
			User:          user,
		})
		return nil
	}
}

type sessionOut struct {
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user"`
	Error         *errorOut    `json:"error,omitempty"`
}

type errorOut struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Status  int    `json:"status"`
}
