package http

import (
	"net/http"
	"slices"
	"time"

	"github.com/neuraops/dashboard/pkg/log"
)

func WithLogging(logger log.Logger, infoLevel, errorLevel log.Level, excludedPaths ...string) ServerOption {
	excludedPaths = append(excludedPaths, HealthPath)

	return WithMW(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(excludedPaths, r.URL.Path) {
				handler.ServeHTTP(w, r)
				return
			}

			started := time.Now()
			handler.ServeHTTP(w, r)
			meta := getHandlerMetadata(r.Context())

			entry := logger.With(log.Fields{
				"routeName":    getRouteName(r.Method, routeTemplate(r)),
				"method":       r.Method,
				"uri":          r.RequestURI,
				"responseCode": meta.Code,
				"duration":     time.Since(started).String(),
			})

			switch {
			case meta.Panic != nil:
				entry.With(log.Fields{
					"panic":      meta.Panic.Message,
					"stacktrace": string(meta.Panic.Stacktrace),
				}).Error(r.Context(), "call handler panicked")
			case meta.Error != nil:
				entry.WithError(meta.Error).Log(r.Context(), errorLevel, "call handled with error")
			default:
				entry.Log(r.Context(), infoLevel, "call handled")
			}
		})
	})
}
