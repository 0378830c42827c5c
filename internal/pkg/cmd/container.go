package cmd

import (
	"context"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	commonhttp "github.com/neuraops/dashboard/internal/pkg/http"
	"github.com/neuraops/dashboard/pkg/cmd"
	"github.com/neuraops/dashboard/pkg/env"
	"github.com/neuraops/dashboard/pkg/http"
	"github.com/neuraops/dashboard/pkg/lazy"
	"github.com/neuraops/dashboard/pkg/log"
	"github.com/neuraops/dashboard/pkg/metric"
	"github.com/neuraops/dashboard/pkg/observability"
)

type InfrastructureContainer struct {
	Config            lazy.Loader[Config]
	HTTPServer        lazy.Loader[http.Server]
	HTTPClientFactory lazy.Loader[HTTPClientFactory]
	Observer          lazy.Loader[observability.Observer]
	Registry          lazy.Loader[*prometheus.Registry]
	Metrics           lazy.Loader[metric.Metrics]
	Logger            lazy.Loader[log.Logger]
}

// NewInfrastructureContainer writes logs to logOutput, stdout when nil.
func NewInfrastructureContainer(logOutput io.Writer) *InfrastructureContainer {
	if logOutput == nil {
		logOutput = os.Stdout
	}

	config := configProvider()
	logger := loggerProvider(config, logOutput)
	registry := registryProvider()
	metrics := metricsProvider(registry)
	observer := observerProvider(logger)

	return &InfrastructureContainer{
		Config:            config,
		HTTPServer:        httpServerProvider(config, registry, observer, metrics, logger),
		HTTPClientFactory: httpClientFactoryProvider(config, observer, metrics, logger),
		Observer:          observer,
		Registry:          registry,
		Metrics:           metrics,
		Logger:            logger,
	}
}

// Close must be deferred directly, it recovers the panic of the calling goroutine.
func (i *InfrastructureContainer) Close(ctx context.Context) {
	if cmd.HandleAppPanic(ctx, i.Logger.MustLoad(), recover()) {
		defer os.Exit(1)
	}
}

func configProvider() lazy.Loader[Config] {
	return lazy.New(func() (Config, error) {
		return env.Must(ParseConfig()), nil
	})
}

func loggerProvider(config lazy.Loader[Config], output io.Writer) lazy.Loader[log.Logger] {
	return lazy.New(func() (log.Logger, error) {
		cfg, err := config.Load()
		if err != nil {
			return log.NewWithWriter(log.LevelInfo, output), nil
		}

		return log.NewWithWriter(log.ParseLevel(cfg.LogLevel), output), nil
	})
}

func registryProvider() lazy.Loader[*prometheus.Registry] {
	return lazy.New(func() (*prometheus.Registry, error) {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		return registry, nil
	})
}

func metricsProvider(registry lazy.Loader[*prometheus.Registry]) lazy.Loader[metric.Metrics] {
	return lazy.New(func() (metric.Metrics, error) {
		return metric.NewPrometheus(registry.MustLoad()), nil
	})
}

func observerProvider(
	logger lazy.Loader[log.Logger],
) lazy.Loader[observability.Observer] {
	return lazy.New(func() (observability.Observer, error) {
		return observability.New(
			observability.WithFieldsLogging(logger.MustLoad(), observability.LogFieldRequestID),
		), nil
	})
}

func httpServerProvider(
	config lazy.Loader[Config],
	registry lazy.Loader[*prometheus.Registry],
	observer lazy.Loader[observability.Observer],
	metrics lazy.Loader[metric.Metrics],
	logger lazy.Loader[log.Logger],
) lazy.Loader[http.Server] {
	return lazy.New(func() (http.Server, error) {
		return http.NewServer(
			config.MustLoad().Address,
			http.WithHealthCheck(nil),
			http.WithMetricsHandler(registry.MustLoad()),
			http.WithObservability(observer.MustLoad(), commonhttp.RequestIDHeader),
			http.WithMetrics(metrics.MustLoad()),
			http.WithLogging(logger.MustLoad(), log.LevelInfo, log.LevelError, http.MetricsPath),
		), nil
	})
}

func httpClientFactoryProvider(
	config lazy.Loader[Config],
	observer lazy.Loader[observability.Observer],
	metrics lazy.Loader[metric.Metrics],
	logger lazy.Loader[log.Logger],
) lazy.Loader[HTTPClientFactory] {
	return lazy.New(func() (HTTPClientFactory, error) {
		return NewHTTPClientFactory(
			map[http.Destination]string{
				commonhttp.DestinationControlPlane: config.MustLoad().APIURL,
			},
			http.WithRequestObservability(observer.MustLoad(), commonhttp.RequestIDHeader),
			http.WithRequestMetrics(metrics.MustLoad()),
			http.WithRequestLogging(logger.MustLoad(), log.LevelInfo, log.LevelWarn),
		), nil
	})
}
