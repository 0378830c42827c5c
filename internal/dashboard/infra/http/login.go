package http

import (
	"errors"
	"net/http"

	"github.com/neuraops/dashboard/internal/dashboard/app/guard"
	"github.com/neuraops/dashboard/internal/dashboard/domain"
	pkghttp "github.com/neuraops/dashboard/pkg/http"
	"github.com/neuraops/dashboard/pkg/log"
	"github.com/neuraops/dashboard/pkg/metric"
)

const (
	messageLoginThrottled     = "Too many login attempts. Please wait a moment and try again."
	messageInvalidCredentials = "Invalid username or password"
	messageMissingCredentials = "Username and password are required"
	messageLoginFailed        = "Login failed, please try again"
)

var errNoScope = errors.New("session scope is not bound to request")

type LoginPageHandler struct {
	renderer *Renderer
	routes   guard.Routes
}

func NewLoginPageHandler(renderer *Renderer, routes guard.Routes) LoginPageHandler {
	return LoginPageHandler{
		renderer: renderer,
		routes:   routes,
	}
}

func (h LoginPageHandler) Method() string {
	return http.MethodGet
}

func (h LoginPageHandler) Path() string {
	return h.routes.Login
}

func (h LoginPageHandler) HTTPHandler() pkghttp.HandlerFunc {
	return func(w pkghttp.ResponseWriter, r *http.Request) error {
		redirect := pkghttp.ParseRequestOptional(r, pkghttp.QueryParameter[string](guard.RedirectParam), nil)

		data := viewData{Title: "Sign in"}
		if redirect != nil {
			data.Redirect = h.routes.SafeReturnTarget(*redirect)
		}

		w.SetHeader("Cache-Control", "no-store").SetHTMLBody(h.renderer.view(viewLogin, data))
		return nil
	}
}

type LoginHandler struct {
	renderer *Renderer
	routes   guard.Routes
	throttle *LoginThrottle
	metrics  metric.Metrics
	logger   log.Logger
}

func NewLoginHandler(
	renderer *Renderer,
	routes guard.Routes,
	throttle *LoginThrottle,
	metrics metric.Metrics,
	logger log.Logger,
) LoginHandler {
	return LoginHandler{
		renderer: renderer,
		routes:   routes,
		throttle: throttle,
		metrics:  metrics,
		logger:   logger,
	}
}

func (h LoginHandler) Method() string {
	return http.MethodPost
}

func (h LoginHandler) Path() string {
	return h.routes.Login
}

func (h LoginHandler) HTTPHandler() pkghttp.HandlerFunc {
	return func(w pkghttp.ResponseWriter, r *http.Request) error {
		scope, ok := ScopeFromContext(r.Context())
		if !ok {
			return errNoScope
		}

		creds := domain.Credentials{
			Username: valueOrEmpty(pkghttp.ParseRequestOptional(r, pkghttp.FormValue[string]("username"), nil)),
			Password: valueOrEmpty(pkghttp.ParseRequestOptional(r, pkghttp.FormValue[string]("password"), nil)),
		}
		redirect := h.routes.SafeReturnTarget(valueOrEmpty(pkghttp.ParseRequestOptional(r, pkghttp.FormValue[string](guard.RedirectParam), nil)))

		data := viewData{
			Title:    "Sign in",
			Redirect: redirect,
			Username: creds.Username,
		}

		if scope.Session.IsAuthenticated(r.Context()) {
			w.Redirect(redirect, http.StatusSeeOther)
			return nil
		}

		if !h.throttle.Allow(r.Context(), remoteAddress(r)) {
			h.countAttempt("throttled")
			data.Error = messageLoginThrottled
			w.SetStatusCode(http.StatusTooManyRequests).SetHTMLBody(h.renderer.view(viewLogin, data))
			return nil
		}

		_, err := scope.Session.Login(r.Context(), creds)
		if err != nil {
			status, message := loginFailure(err)
			h.countAttempt("failed")
			h.logger.WithError(err).WithField("username", creds.Username).Info(r.Context(), "login rejected")

			data.Error = message
			w.SetStatusCode(status).SetHTMLBody(h.renderer.view(viewLogin, data))
			return nil
		}

		h.countAttempt("succeeded")
		w.Redirect(redirect, http.StatusSeeOther)
		return nil
	}
}

func (h LoginHandler) countAttempt(result string) {
	h.metrics.With(metric.Labels{"result": result}).Increment("login_attempts_total")
}

func loginFailure(err error) (int, string) {
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return http.StatusBadRequest, messageMissingCredentials
	}
	if errors.Is(err, pkghttp.ErrUnauthenticated) {
		return http.StatusUnauthorized, messageInvalidCredentials
	}

	apiErr, ok := pkghttp.AsAPIError(err)
	if !ok {
		return http.StatusInternalServerError, messageLoginFailed
	}
	if apiErr.Status >= http.StatusBadRequest && apiErr.Status < http.StatusInternalServerError {
		return apiErr.Status, apiErr.Message
	}

	return http.StatusBadGateway, apiErr.Message
}

func valueOrEmpty(value *string) string {
	if value == nil {
		return ""
	}

	return *value
}
