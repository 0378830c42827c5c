package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/neuraops/dashboard/pkg/metric"
)

const MetricsPath = "/metrics"

func WithMetrics(metrics metric.Metrics) ServerOption {
	return WithMW(func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			handler.ServeHTTP(w, r)
			meta := getHandlerMetadata(r.Context())
			path := routeTemplate(r)

			if meta.Panic != nil {
				metrics.With(metric.Labels{
					"method": r.Method,
					"path":   path,
				}).Increment("http_api_request_panics_total")
			}

			metrics.With(metric.Labels{
				"method": r.Method,
				"path":   path,
				"code":   fmt.Sprintf("%d", meta.Code),
			}).Duration("http_api_request_duration_seconds", time.Since(started))
		})
	})
}

func WithMetricsHandler(gatherer prometheus.Gatherer) ServerOption {
	return WithRoute(http.MethodGet, MetricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}
