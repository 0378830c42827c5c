//go:generate ${TOOLS_PATH}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "Store=Store,Storage=Storage,Cookies=Cookies"
package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/neuraops/dashboard/internal/dashboard/domain"
	"github.com/neuraops/dashboard/pkg/log"
)

const (
	TokenKey   = "neuraops_auth_token"
	CookieName = "neuraops_auth_token"

	DefaultCookieMaxAge = 24 * time.Hour
)

// LegacyKeys were written by earlier dashboard versions and are purged on every Clear.
var LegacyKeys = []string{"neuraops_token", "neuraops_api_key"}

type (
	Store interface {
		Get(ctx context.Context) (domain.Token, bool)
		Set(ctx context.Context, token domain.Token) error
		Clear(ctx context.Context) error
	}

	Storage interface {
		Get(ctx context.Context, key string) (string, bool, error)
		Set(ctx context.Context, key, value string) error
		Delete(ctx context.Context, keys ...string) error
	}

	Cookies interface {
		Cookie(name string) (*http.Cookie, bool)
		SetCookie(cookie *http.Cookie)
	}

	Option func(*store)
)

type store struct {
	mu      sync.RWMutex
	storage Storage
	cookies Cookies
	logger  log.Logger

	cookieMaxAge time.Duration
	secure       bool
}

func NewStore(storage Storage, cookies Cookies, logger log.Logger, opts ...Option) Store {
	s := &store{
		storage:      storage,
		cookies:      cookies,
		logger:       logger,
		cookieMaxAge: DefaultCookieMaxAge,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func WithSecureCookie(secure bool) Option {
	return func(s *store) {
		s.secure = secure
	}
}

func WithCookieMaxAge(maxAge time.Duration) Option {
	return func(s *store) {
		s.cookieMaxAge = maxAge
	}
}

func (s *store) Get(ctx context.Context) (domain.Token, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok, err := s.storage.Get(ctx, TokenKey)
	if err != nil {
		s.logger.WithError(err).Warn(ctx, "failed to read token from storage, falling back to cookie")
	}
	if err == nil && ok && value != "" {
		return domain.Token(value), true
	}

	cookie, ok := s.cookies.Cookie(CookieName)
	if !ok || cookie.Value == "" {
		return "", false
	}

	return domain.Token(cookie.Value), true
}

// Set writes both sinks. An empty token clears the store.
func (s *store) Set(ctx context.Context, token domain.Token) error {
	if token.IsEmpty() {
		return s.Clear(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var storageErr error
	if err := s.storage.Set(ctx, TokenKey, string(token)); err != nil {
		storageErr = fmt.Errorf("write token to storage: %w", err)
		// a stale durable token would shadow the fresh cookie
		if delErr := s.storage.Delete(ctx, TokenKey); delErr != nil {
			storageErr = errors.Join(storageErr, fmt.Errorf("drop stale token: %w", delErr))
		}
	}

	s.cookies.SetCookie(s.cookie(string(token), int(s.cookieMaxAge.Seconds())))
	return storageErr
}

func (s *store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(LegacyKeys)+1)
	keys = append(keys, TokenKey)
	keys = append(keys, LegacyKeys...)

	var storageErr error
	if err := s.storage.Delete(ctx, keys...); err != nil {
		storageErr = fmt.Errorf("delete tokens from storage: %w", err)
	}

	s.cookies.SetCookie(s.cookie("", -1))
	for _, legacy := range LegacyKeys {
		if _, ok := s.cookies.Cookie(legacy); ok {
			expired := s.cookie("", -1)
			expired.Name = legacy
			s.cookies.SetCookie(expired)
		}
	}

	return storageErr
}

func (s *store) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
