package controlplane

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/neuraops/dashboard/internal/dashboard/app/service"
	"github.com/neuraops/dashboard/internal/dashboard/domain"
	pkghttp "github.com/neuraops/dashboard/pkg/http"
)

const (
	loginPath  = "/api/auth/login"
	logoutPath = "/api/auth/logout"
	mePath     = "/api/auth/me"
	healthPath = "/api/health"

	DefaultTimeout = 30 * time.Second
)

type API struct {
	client  pkghttp.Client
	timeout time.Duration
}

func NewAPI(client pkghttp.Client, timeout time.Duration) *API {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &API{
		client:  client,
		timeout: timeout,
	}
}

var _ service.ControlPlane = (*API)(nil)

func (a *API) Login(ctx context.Context, creds domain.Credentials) (domain.LoginResult, error) {
	raw, err := a.call(ctx, http.MethodPost, loginPath, "",
		pkghttp.WithBody(loginIn{Username: creds.Username, Password: creds.Password}),
	)
	if err != nil {
		return domain.LoginResult{}, fmt.Errorf("request %s: %w", loginPath, err)
	}

	var out loginOut
	if err = json.Unmarshal(raw, &out); err != nil {
		return domain.LoginResult{}, invalidResponse(loginPath, err)
	}

	return out.toResult(), nil
}

func (a *API) Logout(ctx context.Context, token domain.Token) error {
	_, err := a.call(ctx, http.MethodPost, logoutPath, token)
	if err != nil {
		return fmt.Errorf("request %s: %w", logoutPath, err)
	}

	return nil
}

func (a *API) CurrentUser(ctx context.Context, token domain.Token) (domain.User, error) {
	raw, err := a.call(ctx, http.MethodGet, mePath, token)
	if err != nil {
		return domain.User{}, fmt.Errorf("request %s: %w", mePath, err)
	}

	var out userOut
	if err = json.Unmarshal(raw, &out); err != nil {
		return domain.User{}, invalidResponse(mePath, err)
	}
	if out.ID == "" && out.Username == "" {
		return domain.User{}, invalidResponse(mePath, fmt.Errorf("empty user record"))
	}

	return out.toDomain(), nil
}

type Health struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

func (a *API) Health(ctx context.Context) (Health, error) {
	raw, err := a.call(ctx, http.MethodGet, healthPath, "")
	if err != nil {
		return Health{}, fmt.Errorf("request %s: %w", healthPath, err)
	}

	var details map[string]any
	if len(raw) > 0 {
		if err = json.Unmarshal(raw, &details); err != nil {
			return Health{}, invalidResponse(healthPath, err)
		}
	}

	status, _ := details["status"].(string)
	if status == "" {
		status = "ok"
	}

	return Health{Status: status, Details: details}, nil
}

// call returns the payload with the response envelope, if any, already removed.
func (a *API) call(
	ctx context.Context,
	method, path string,
	token domain.Token,
	opts ...pkghttp.CallOption,
) (json.RawMessage, error) {
	opts = append(opts, pkghttp.WithTimeout(a.timeout))
	if !token.IsEmpty() {
		opts = append(opts, pkghttp.WithBearerToken(func(context.Context) (string, bool) {
			return string(token), true
		}))
	}

	raw, err := pkghttp.Do[json.RawMessage](ctx, a.client, method, path, opts...)
	if err != nil {
		return nil, err
	}

	return unwrapEnvelope(raw)
}

func invalidResponse(path string, err error) error {
	return &pkghttp.APIError{
		Kind:    pkghttp.ErrorKindInvalidResponse,
		Message: fmt.Sprintf("invalid %s response: %s", path, err.Error()),
		Status:  http.StatusOK,
		Err:     err,
	}
}
