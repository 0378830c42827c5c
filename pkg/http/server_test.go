package http_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkghttp "github.com/neuraops/dashboard/pkg/http"
	"github.com/neuraops/dashboard/pkg/log"
	"github.com/neuraops/dashboard/pkg/observability"
)

type testHandler struct {
	method string
	path   string
	impl   pkghttp.HandlerFunc
}

func (h testHandler) Method() string                   { return h.method }
func (h testHandler) Path() string                     { return h.path }
func (h testHandler) HTTPHandler() pkghttp.HandlerFunc { return h.impl }

func TestServer_HandlerResponses(t *testing.T) {
	srv := pkghttp.NewServer(pkghttp.DefaultServerAddress,
		pkghttp.WithHealthCheck(nil),
		pkghttp.WithLogging(log.NewStub(), log.LevelInfo, log.LevelError),
	)
	srv.Register(testHandler{http.MethodGet, "/json", func(w pkghttp.ResponseWriter, _ *http.Request) error {
		w.SetStatusCode(http.StatusCreated).SetJSONBody(map[string]bool{"ok": true})
		return nil
	}})
	srv.Register(testHandler{http.MethodGet, "/html", func(w pkghttp.ResponseWriter, _ *http.Request) error {
		w.SetHTMLBody(func(out io.Writer) error {
			_, err := out.Write([]byte("<p>hi</p>"))
			return err
		})
		return nil
	}})
	srv.Register(testHandler{http.MethodGet, "/redirect", func(w pkghttp.ResponseWriter, _ *http.Request) error {
		w.Redirect("/login", http.StatusSeeOther)
		return nil
	}})
	srv.Register(testHandler{http.MethodGet, "/query", func(w pkghttp.ResponseWriter, r *http.Request) error {
		_, err := pkghttp.ParseRequest(r, pkghttp.QueryParameter[int]("n"), nil)
		return err
	}})
	srv.Register(testHandler{http.MethodGet, "/fail", func(pkghttp.ResponseWriter, *http.Request) error {
		return errors.New("boom")
	}})
	srv.Register(testHandler{http.MethodGet, "/panic", func(pkghttp.ResponseWriter, *http.Request) error {
		panic("unexpected")
	}})

	tests := []struct {
		path        string
		code        int
		contentType string
		body        string
		location    string
	}{
		{path: "/healthz", code: http.StatusOK, contentType: "application/json", body: `{"status":"OK"}`},
		{path: "/json", code: http.StatusCreated, contentType: "application/json", body: `{"ok":true}`},
		{path: "/html", code: http.StatusOK, contentType: "text/html; charset=utf-8", body: "<p>hi</p>"},
		{path: "/redirect", code: http.StatusSeeOther, location: "/login"},
		{path: "/query?n=abc", code: http.StatusBadRequest},
		{path: "/fail", code: http.StatusInternalServerError},
		{path: "/panic", code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.code, rec.Code)
			if tt.contentType != "" {
				assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			}
			if tt.body != "" {
				assert.Equal(t, tt.body, strings.TrimSpace(rec.Body.String()))
			}
			if tt.location != "" {
				assert.Equal(t, tt.location, rec.Header().Get("Location"))
			}
		})
	}
}

func TestServer_ObservabilityPropagatesRequestID(t *testing.T) {
	observer := observability.New()

	var seen string
	srv := pkghttp.NewServer(pkghttp.DefaultServerAddress,
		pkghttp.WithObservability(observer, pkghttp.DefaultRequestIDHeader),
	)
	srv.Register(testHandler{http.MethodGet, "/", func(_ pkghttp.ResponseWriter, r *http.Request) error {
		seen, _ = observer.RequestID(r.Context())
		return nil
	}})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(pkghttp.DefaultRequestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-1", seen)
	assert.Equal(t, "req-1", rec.Header().Get(pkghttp.DefaultRequestIDHeader))

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.NotEqual(t, "req-1", seen)
}

func TestClient_ForwardsRequestID(t *testing.T) {
	observer := observability.New()

	var got string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(pkghttp.DefaultRequestIDHeader)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer upstream.Close()

	client := pkghttp.NewClientFactory(
		pkghttp.WithRequestObservability(observer, pkghttp.DefaultRequestIDHeader),
	).InitClient("upstream", upstream.URL)

	ctx := observer.WithRequestID(t.Context(), "req-42")
	_, err := pkghttp.Do[any](ctx, client, http.MethodGet, "/")
	require.NoError(t, err)
	assert.Equal(t, "req-42", got)
}
