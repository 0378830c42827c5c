package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkghttp "github.com/neuraops/dashboard/pkg/http"
)

type profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) pkghttp.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return pkghttp.NewClient(pkghttp.WithClientDestination("test", srv.URL))
}

func staticToken(token string) pkghttp.BearerTokenProvider {
	return func(context.Context) (string, bool) {
		return token, token != ""
	}
}

func TestDo_SetsContentTypeAndBearer(t *testing.T) {
	var gotHeaders http.Header
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		w.WriteHeader(http.StatusNoContent)
	})

	_, err := pkghttp.Do[any](context.Background(), client, http.MethodGet, "/api/agents",
		pkghttp.WithBearerToken(staticToken("abc")),
		pkghttp.WithHeader("X-Trace", "1"),
	)
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Equal(t, "Bearer abc", gotHeaders.Get("Authorization"))
	assert.Equal(t, "1", gotHeaders.Get("X-Trace"))
}

func TestDo_WithoutTokenSendsNoAuthorization(t *testing.T) {
	var gotHeaders http.Header
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		w.WriteHeader(http.StatusNoContent)
	})

	_, err := pkghttp.Do[any](context.Background(), client, http.MethodGet, "/api/agents",
		pkghttp.WithBearerToken(staticToken("")),
	)
	require.NoError(t, err)
	assert.Empty(t, gotHeaders.Get("Authorization"))
}

func TestDo_CallHeaderOverridesContentType(t *testing.T) {
	var contentType string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusNoContent)
	})

	_, err := pkghttp.Do[any](context.Background(), client, http.MethodPost, "/upload",
		pkghttp.WithHeader("Content-Type", "text/plain"),
		pkghttp.WithBody("raw"),
	)
	require.NoError(t, err)
	assert.Equal(t, "text/plain", contentType)
}

func TestDo_SendsJSONBody(t *testing.T) {
	var body string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.WriteHeader(http.StatusNoContent)
	})

	_, err := pkghttp.Do[any](context.Background(), client, http.MethodPost, "/api/auth/login",
		pkghttp.WithBody(map[string]string{"username": "admin"}),
	)
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"admin"}`, body)
}

func TestDo_DecodesResponses(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		expect  func(t *testing.T, client pkghttp.Client)
	}{
		{
			name: "json body decoded into type",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				_, _ = w.Write([]byte(`{"id":"1","username":"admin"}`))
			},
			expect: func(t *testing.T, client pkghttp.Client) {
				result, err := pkghttp.Do[profile](context.Background(), client, http.MethodGet, "/me")
				require.NoError(t, err)
				assert.Equal(t, profile{ID: "1", Username: "admin"}, result)
			},
		},
		{
			name: "no content yields zero value",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			},
			expect: func(t *testing.T, client pkghttp.Client) {
				result, err := pkghttp.Do[*profile](context.Background(), client, http.MethodDelete, "/me")
				require.NoError(t, err)
				assert.Nil(t, result)
			},
		},
		{
			name: "empty success body yields zero value",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
			},
			expect: func(t *testing.T, client pkghttp.Client) {
				result, err := pkghttp.Do[profile](context.Background(), client, http.MethodGet, "/me")
				require.NoError(t, err)
				assert.Equal(t, profile{}, result)
			},
		},
		{
			name: "text body returned raw",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				_, _ = w.Write([]byte("pong"))
			},
			expect: func(t *testing.T, client pkghttp.Client) {
				result, err := pkghttp.Do[string](context.Background(), client, http.MethodGet, "/ping")
				require.NoError(t, err)
				assert.Equal(t, "pong", result)
			},
		},
		{
			name: "malformed json classified as invalid response",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"id":`))
			},
			expect: func(t *testing.T, client pkghttp.Client) {
				_, err := pkghttp.Do[profile](context.Background(), client, http.MethodGet, "/me")
				require.ErrorIs(t, err, pkghttp.ErrInvalidResponse)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.expect(t, newTestClient(t, tt.handler))
		})
	}
}

func TestDo_ClassifiesHTTPFailures(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		kind        error
		message     string
		code        string
	}{
		{
			name:        "unauthorized",
			status:      http.StatusUnauthorized,
			contentType: "application/json",
			body:        `{"detail":"Invalid token"}`,
			kind:        pkghttp.ErrUnauthenticated,
			message:     pkghttp.MessageUnauthenticated,
		},
		{
			name:        "forbidden replaces server message",
			status:      http.StatusForbidden,
			contentType: "application/json",
			body:        `{"message":"nope"}`,
			kind:        pkghttp.ErrForbidden,
			message:     pkghttp.MessageForbidden,
		},
		{
			name:        "server message passed through",
			status:      http.StatusInternalServerError,
			contentType: "application/json",
			body:        `{"message":"db down","error":{"code":"db_error"}}`,
			kind:        pkghttp.ErrHTTP,
			message:     "db down",
			code:        "db_error",
		},
		{
			name:        "fastapi detail used as message",
			status:      http.StatusBadRequest,
			contentType: "application/json",
			body:        `{"detail":"Incorrect username or password"}`,
			kind:        pkghttp.ErrHTTP,
			message:     "Incorrect username or password",
		},
		{
			name:        "validation details joined",
			status:      http.StatusUnprocessableEntity,
			contentType: "application/json",
			body:        `{"detail":[{"msg":"field required"},{"msg":"too short"}]}`,
			kind:        pkghttp.ErrHTTP,
			message:     "field required; too short",
		},
		{
			name:        "unparseable body falls back to status line",
			status:      http.StatusBadGateway,
			contentType: "text/html",
			body:        "<html>bad gateway</html>",
			kind:        pkghttp.ErrHTTP,
			message:     "HTTP 502: Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := pkghttp.Do[profile](context.Background(), client, http.MethodGet, "/api/agents")
			require.ErrorIs(t, err, tt.kind)

			apiErr, ok := pkghttp.AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, tt.code, apiErr.Code)
		})
	}
}

func TestDo_TimeoutYields408(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		w.WriteHeader(http.StatusOK)
	})

	_, err := pkghttp.Do[any](context.Background(), client, http.MethodGet, "/slow",
		pkghttp.WithTimeout(50*time.Millisecond),
	)
	require.ErrorIs(t, err, pkghttp.ErrTimeout)

	apiErr, ok := pkghttp.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusRequestTimeout, apiErr.Status)
	assert.Equal(t, "Request timeout after 50ms", apiErr.Message)
}

func TestDo_CallerCancellationIsNetworkFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pkghttp.Do[any](ctx, client, http.MethodGet, "/", pkghttp.WithTimeout(time.Second))
	require.ErrorIs(t, err, pkghttp.ErrNetwork)

	apiErr, _ := pkghttp.AsAPIError(err)
	assert.Equal(t, pkghttp.StatusNetworkError, apiErr.Status)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestDo_UnreachableHostIsNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := pkghttp.NewClient(pkghttp.WithClientDestination("closed", srv.URL))

	_, err := pkghttp.Do[any](context.Background(), client, http.MethodGet, "/")
	require.ErrorIs(t, err, pkghttp.ErrNetwork)

	apiErr, _ := pkghttp.AsAPIError(err)
	assert.Equal(t, 0, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
}

func TestDo_RoundTripCarriesBearerOfLogin(t *testing.T) {
	var token string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/auth/login":
			_, _ = w.Write([]byte(`{"token":"t-1"}`))
		case "/api/auth/me":
			if r.Header.Get("Authorization") != "Bearer t-1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"id":"1","username":"admin"}`))
		}
	})

	login, err := pkghttp.Do[struct {
		Token string `json:"token"`
	}](context.Background(), client, http.MethodPost, "/api/auth/login")
	require.NoError(t, err)
	token = login.Token

	me, err := pkghttp.Do[profile](context.Background(), client, http.MethodGet, "/api/auth/me",
		pkghttp.WithBearerToken(staticToken(token)),
	)
	require.NoError(t, err)
	assert.Equal(t, "admin", me.Username)
}

func TestDo_CookiesStayInOptedInJar(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/api/auth/login" {
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "visitor-a", Path: "/"})
			_, _ = w.Write([]byte(`{"token":"t-1"}`))
			return
		}
		c, err := r.Cookie("session")
		if err != nil {
			_, _ = w.Write([]byte(`{"username":""}`))
			return
		}
		_, _ = w.Write([]byte(`{"username":"` + c.Value + `"}`))
	}

	srv := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		client pkghttp.Client
		want   string
	}{
		{
			name:   "shared_client_keeps_no_cookies",
			client: pkghttp.NewClient(pkghttp.WithClientDestination("test", srv.URL)),
			want:   "",
		},
		{
			name:   "client_with_jar_replays_cookies",
			client: pkghttp.NewClient(pkghttp.WithClientDestination("test", srv.URL), pkghttp.WithCookieJar(jar)),
			want:   "visitor-a",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pkghttp.Do[struct {
				Token string `json:"token"`
			}](context.Background(), tt.client, http.MethodPost, "/api/auth/login")
			require.NoError(t, err)

			me, err := pkghttp.Do[profile](context.Background(), tt.client, http.MethodGet, "/api/auth/me")
			require.NoError(t, err)
			assert.Equal(t, tt.want, me.Username)
		})
	}
}
