package http

import (
	"net/http"
)

const HealthPath = "/healthz"

func WithHealthCheck(customHandlerFunc http.HandlerFunc) ServerOption {
	defaultHandler := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"OK"}`))
	}

	handler := http.HandlerFunc(defaultHandler)
	if customHandlerFunc != nil {
		handler = customHandlerFunc
	}

	return WithRoute(http.MethodGet, HealthPath, handler)
}
