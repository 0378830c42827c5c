//go:generate ${TOOLS_PATH}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "ControlPlane=ControlPlane,Cache=Cache"
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/neuraops/dashboard/internal/dashboard/app/tokenstore"
	"github.com/neuraops/dashboard/internal/dashboard/domain"
	pkghttp "github.com/neuraops/dashboard/pkg/http"
	"github.com/neuraops/dashboard/pkg/log"
)

const (
	UserCacheKey = "neuraops_user"

	CodeInvalidLoginResponse = "invalid_login_response"
	CodeMissingToken         = "missing_token"

	DefaultLogoutTimeout = 5 * time.Second
)

type (
	ControlPlane interface {
		Login(ctx context.Context, creds domain.Credentials) (domain.LoginResult, error)
		Logout(ctx context.Context, token domain.Token) error
		CurrentUser(ctx context.Context, token domain.Token) (domain.User, error)
	}

	// Cache holds state that lives as long as the browser session and dies with logout.
	Cache interface {
		Get(ctx context.Context, key string) (string, bool, error)
		Set(ctx context.Context, key, value string) error
		Clear(ctx context.Context) error
	}

	Option func(*SessionService)
)

// SessionService is the only writer of the token store.
type SessionService struct {
	controlPlane  ControlPlane
	tokens        tokenstore.Store
	cache         Cache
	logger        log.Logger
	logoutTimeout time.Duration
}

func NewSessionService(
	controlPlane ControlPlane,
	tokens tokenstore.Store,
	cache Cache,
	logger log.Logger,
	opts ...Option,
) *SessionService {
	s := &SessionService{
		controlPlane:  controlPlane,
		tokens:        tokens,
		cache:         cache,
		logger:        logger,
		logoutTimeout: DefaultLogoutTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func WithLogoutTimeout(timeout time.Duration) Option {
	return func(s *SessionService) {
		s.logoutTimeout = timeout
	}
}

// Login commits the token only when the control plane answers with both a token and a user.
func (s *SessionService) Login(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	if err := creds.Validate(); err != nil {
		return domain.User{}, err
	}

	result, err := s.controlPlane.Login(ctx, creds)
	if err != nil {
		return domain.User{}, err
	}

	if result.Token.IsEmpty() || (result.User.ID == "" && result.User.Username == "") {
		return domain.User{}, &pkghttp.APIError{
			Kind:    pkghttp.ErrorKindInvalidResponse,
			Message: "Invalid login response",
			Status:  http.StatusOK,
			Code:    CodeInvalidLoginResponse,
		}
	}

	if err = s.tokens.Set(ctx, result.Token); err != nil {
		if clearErr := s.tokens.Clear(ctx); clearErr != nil {
			s.logger.WithError(clearErr).Error(ctx, "failed to roll back partially stored token")
		}
		return domain.User{}, fmt.Errorf("store token: %w", err)
	}

	s.cacheUser(ctx, result.User)
	s.logger.WithField("username", result.User.Username).Info(ctx, "user logged in")
	return result.User, nil
}

// Logout never fails because of the control plane. The returned error only reports local cleanup problems.
func (s *SessionService) Logout(ctx context.Context) error {
	if token, ok := s.tokens.Get(ctx); ok {
		callCtx, cancel := context.WithTimeout(ctx, s.logoutTimeout)
		err := s.controlPlane.Logout(callCtx, token)
		cancel()
		if err != nil {
			s.logger.WithError(err).Warn(ctx, "control plane logout failed, clearing local session anyway")
		}
	}

	return s.clearLocal(ctx)
}

// ValidateToken checks the stored token and drops the session on any failure.
func (s *SessionService) ValidateToken(ctx context.Context) (domain.User, error) {
	token, ok := s.tokens.Get(ctx)
	if !ok {
		return domain.User{}, &pkghttp.APIError{
			Kind:    pkghttp.ErrorKindUnauthenticated,
			Message: pkghttp.MessageUnauthenticated,
			Status:  http.StatusUnauthorized,
			Code:    CodeMissingToken,
		}
	}

	user, err := s.controlPlane.CurrentUser(ctx, token)
	if err != nil {
		if clearErr := s.clearLocal(ctx); clearErr != nil {
			s.logger.WithError(clearErr).Error(ctx, "failed to clear rejected session")
		}
		return domain.User{}, err
	}

	s.cacheUser(ctx, user)
	return user, nil
}

// CurrentUser asks the control plane for the profile behind the stored token.
// It returns nil without error when there is no token or the control plane rejects it.
func (s *SessionService) CurrentUser(ctx context.Context) (*domain.User, error) {
	token, ok := s.tokens.Get(ctx)
	if !ok {
		return nil, nil
	}

	user, err := s.controlPlane.CurrentUser(ctx, token)
	if errors.Is(err, pkghttp.ErrUnauthenticated) {
		if clearErr := s.cache.Clear(ctx); clearErr != nil {
			s.logger.WithError(clearErr).Warn(ctx, "failed to drop cached user")
		}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s.cacheUser(ctx, user)
	return &user, nil
}

// CachedUser is the profile last confirmed in this session. It is for display only and may be stale.
func (s *SessionService) CachedUser(ctx context.Context) (*domain.User, bool) {
	if _, ok := s.tokens.Get(ctx); !ok {
		return nil, false
	}

	user, ok := s.cachedUser(ctx)
	if !ok {
		return nil, false
	}

	return &user, true
}

func (s *SessionService) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.tokens.Get(ctx)
	return ok
}

func (s *SessionService) clearLocal(ctx context.Context) error {
	return errors.Join(
		s.tokens.Clear(ctx),
		s.cache.Clear(ctx),
	)
}

func (s *SessionService) cacheUser(ctx context.Context, user domain.User) {
	encoded, err := json.Marshal(user)
	if err == nil {
		err = s.cache.Set(ctx, UserCacheKey, string(encoded))
	}
	if err != nil {
		s.logger.WithError(err).Warn(ctx, "failed to cache user")
	}
}

func (s *SessionService) cachedUser(ctx context.Context) (domain.User, bool) {
	var user domain.User

	encoded, ok, err := s.cache.Get(ctx, UserCacheKey)
	if err != nil || !ok {
		return user, false
	}

	if err = json.Unmarshal([]byte(encoded), &user); err != nil {
		s.logger.WithError(err).Warn(ctx, "dropping malformed cached user")
		return user, false
	}

	return user, true
}
