package controlplane

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	pkghttp "github.com/neuraops/dashboard/pkg/http"
	"github.com/neuraops/dashboard/pkg/log"
)

// WaitReady polls the health endpoint until it answers or maxWait elapses.
// Client errors other than timeouts stop the wait at once.
func (a *API) WaitReady(ctx context.Context, maxWait time.Duration, logger log.Logger) error {
	if maxWait <= 0 {
		_, err := a.Health(ctx)
		return err
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = 200 * time.Millisecond
	eb.RandomizationFactor = 0
	eb.Multiplier = 2
	eb.MaxInterval = maxWait / 4
	eb.MaxElapsedTime = maxWait

	return backoff.RetryNotify(func() error {
		_, err := a.Health(ctx)
		if err == nil {
			return nil
		}

		var apiErr *pkghttp.APIError
		if errors.As(err, &apiErr) &&
			apiErr.Status >= http.StatusBadRequest &&
			apiErr.Status < http.StatusInternalServerError &&
			apiErr.Kind != pkghttp.ErrorKindTimeout {
			return backoff.Permanent(err)
		}

		return err
	}, backoff.WithContext(eb, ctx), func(err error, next time.Duration) {
		logger.WithError(err).WithField("retryIn", next.String()).Warn(ctx, "control plane is not ready yet")
	})
}
