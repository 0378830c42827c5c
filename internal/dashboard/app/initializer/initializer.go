//go:generate ${TOOLS_PATH}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "Session=Session"
package initializer

import (
	"context"
	"fmt"

	"github.com/neuraops/dashboard/internal/dashboard/app/guard"
	"github.com/neuraops/dashboard/internal/dashboard/domain"
	"github.com/neuraops/dashboard/pkg/log"
)

type Session interface {
	IsAuthenticated(ctx context.Context) bool
	ValidateToken(ctx context.Context) (domain.User, error)
	Logout(ctx context.Context) error
}

type Outcome int

const (
	OutcomeStay Outcome = iota
	OutcomeRedirect
)

type Result struct {
	Outcome  Outcome
	Location string
	User     *domain.User
}

// Initializer confirms the session once per page load. Any doubt ends on the login page.
type Initializer struct {
	routes guard.Routes
	logger log.Logger
}

func New(routes guard.Routes, logger log.Logger) Initializer {
	return Initializer{
		routes: routes,
		logger: logger,
	}
}

func (i Initializer) Run(ctx context.Context, session Session, path string) (result Result) {
	if i.routes.IsLogin(path) {
		return Result{Outcome: OutcomeStay}
	}

	toLogin := Result{Outcome: OutcomeRedirect, Location: i.routes.LoginLocation(path)}
	defer func() {
		if msg := recover(); msg != nil {
			i.logger.WithError(fmt.Errorf("%v", msg)).Error(ctx, "auth initialization panicked")
			result = toLogin
		}
	}()

	if !session.IsAuthenticated(ctx) {
		return toLogin
	}

	user, err := session.ValidateToken(ctx)
	if err != nil {
		i.logger.WithError(err).Info(ctx, "session rejected, logging out")
		if logoutErr := session.Logout(ctx); logoutErr != nil {
			i.logger.WithError(logoutErr).Error(ctx, "failed to logout rejected session")
		}
		return toLogin
	}

	return Result{Outcome: OutcomeStay, User: &user}
}
