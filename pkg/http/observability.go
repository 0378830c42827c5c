package http

import (
	"net/http"

	"github.com/neuraops/dashboard/pkg/observability"
)

// WithObservability takes the request ID from the incoming header or mints a new one.
func WithObservability(observer observability.Observer, requestIDHeader string) ServerOption {
	return WithMW(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = observer.NewRequestID()
			}

			w.Header().Set(requestIDHeader, requestID)
			handler.ServeHTTP(w, r.WithContext(observer.WithRequestID(r.Context(), requestID)))
		})
	})
}
