package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/gorilla/mux"
)

const (
	DefaultServerAddress = ":3000"

	defaultReadTimeout       = 10 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
)

type (
	ServerOption func(*mux.Router)

	HandlerRegistry interface {
		Register(handler Handler, opts ...ServerOption)
		Use(opts ...ServerOption)
	}

	Server interface {
		HandlerRegistry
		http.Handler
		Listener(context.Context) error
	}
)

type server struct {
	srv    *http.Server
	router *mux.Router
}

func NewServer(address string, opts ...ServerOption) Server {
	router := mux.NewRouter()
	router.Use(withHandlerMetadata)
	for _, opt := range opts {
		opt(router)
	}

	srv := &http.Server{
		Addr:              address,
		Handler:           router,
		ReadTimeout:       defaultReadTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
	}

	return server{
		srv:    srv,
		router: router,
	}
}

func WithMW(mw mux.MiddlewareFunc) ServerOption {
	return func(router *mux.Router) {
		router.Use(mw)
	}
}

// WithRoute registers a plain net/http handler that bypasses the ResponseWriter wrapper.
func WithRoute(method, path string, handler http.Handler) ServerOption {
	return func(router *mux.Router) {
		router.
			Name(getRouteName(method, path)).
			Methods(method).
			Path(path).
			Handler(handler)
	}
}

func WithPrefixRoute(prefix string, handler http.Handler) ServerOption {
	return func(router *mux.Router) {
		router.
			Name(getRouteName(http.MethodGet, prefix)).
			PathPrefix(prefix).
			Handler(handler)
	}
}

func (s server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s server) Listener(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("http listener %s: %w", s.srv.Addr, err)
	}

	serverDoneChan := make(chan error, 1)
	go func() {
		serveErr := s.srv.Serve(listener)
		if errors.Is(serveErr, http.ErrServerClosed) {
			serveErr = nil
		}
		serverDoneChan <- serveErr
	}()

	select {
	case err = <-serverDoneChan:
	case <-ctx.Done():
		err = s.shutdown()
	}
	if err != nil {
		return fmt.Errorf("http listener %s: %w", s.srv.Addr, err)
	}

	return nil
}

func (s server) Register(handler Handler, opts ...ServerOption) {
	router := s.router
	if len(opts) > 0 {
		router = s.router.NewRoute().Subrouter()
		for _, opt := range opts {
			opt(router)
		}
	}

	router.
		Name(getRouteName(handler.Method(), handler.Path())).
		Methods(handler.Method()).
		Path(handler.Path()).
		Handler(httpHandlerWrapper(handler.HTTPHandler()))
}

// Use applies options to the root router after the server is built.
func (s server) Use(opts ...ServerOption) {
	for _, opt := range opts {
		opt(s.router)
	}
}

func (s server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	err := s.srv.Shutdown(ctx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

func getRouteName(method, path string) string {
	path = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Latin, r) || unicode.IsDigit(r) {
			return r
		}

		if r == '{' || r == '}' {
			return -1
		}

		return '_'
	}, strings.Trim(path, "/"))
	return fmt.Sprintf("%s_%s", strings.ToUpper(method), path)
}

func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return r.URL.Path
	}

	tpl, err := route.GetPathTemplate()
	if err != nil {
		return r.URL.Path
	}

	return tpl
}
