package http

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/neuraops/dashboard/internal/dashboard/app/service"
	"github.com/neuraops/dashboard/internal/dashboard/app/tokenstore"
	"github.com/neuraops/dashboard/internal/dashboard/domain"
	"github.com/neuraops/dashboard/internal/dashboard/infra/cookie"
	"github.com/neuraops/dashboard/internal/dashboard/infra/storage"
	pkghttp "github.com/neuraops/dashboard/pkg/http"
	"github.com/neuraops/dashboard/pkg/log"
)

const (
	VisitorCookieName = "neuraops_client_id"
	SessionCookieName = "neuraops_session_id"

	visitorCookieMaxAge = 365 * 24 * time.Hour
)

type contextKey int

const (
	scopeContextKey contextKey = iota
	userContextKey
)

type Session interface {
	Login(ctx context.Context, creds domain.Credentials) (domain.User, error)
	Logout(ctx context.Context) error
	ValidateToken(ctx context.Context) (domain.User, error)
	CurrentUser(ctx context.Context) (*domain.User, error)
	IsAuthenticated(ctx context.Context) bool
}

// Scope is everything bound to one browser: its token store and the session service writing it.
type Scope struct {
	VisitorID string
	Tokens    tokenstore.Store
	Session   Session
}

type ScopeConfig struct {
	Backend       storage.Backend
	ControlPlane  service.ControlPlane
	SecureCookies bool
	Logger        log.Logger
}

// WithSessionScope identifies the browser by long-lived and browser-session cookies and binds a Scope to the request.
func WithSessionScope(cfg ScopeConfig) pkghttp.ServerOption {
	return pkghttp.WithMW(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			visitorID := ensureIDCookie(w, r, VisitorCookieName, visitorCookieMaxAge, cfg.SecureCookies)
			sessionID := ensureIDCookie(w, r, SessionCookieName, 0, cfg.SecureCookies)

			cookies := cookie.NewRequestCookies(w, r)
			tokens := tokenstore.NewStore(
				storage.Scoped(cfg.Backend, storage.DurableScopeName(visitorID)),
				cookies,
				cfg.Logger,
				tokenstore.WithSecureCookie(cfg.SecureCookies),
			)
			session := service.NewSessionService(
				cfg.ControlPlane,
				tokens,
				storage.Scoped(cfg.Backend, storage.SessionScopeName(sessionID)),
				cfg.Logger,
			)

			ctx := context.WithValue(r.Context(), scopeContextKey, Scope{
				VisitorID: visitorID,
				Tokens:    tokens,
				Session:   session,
			})
			handler.ServeHTTP(w, r.WithContext(ctx))
		})
	})
}

func ScopeFromContext(ctx context.Context) (Scope, bool) {
	scope, ok := ctx.Value(scopeContextKey).(Scope)
	return scope, ok
}

func withUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	return user, ok && user != nil
}

func ensureIDCookie(w http.ResponseWriter, r *http.Request, name string, maxAge time.Duration, secure bool) string {
	id, err := pkghttp.ParseRequest(r, pkghttp.CookieValue[uuid.UUID](name), nil)
	if err == nil && id != uuid.Nil {
		return id.String()
	}

	id = uuid.New()
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    id.String(),
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})

	return id.String()
}
