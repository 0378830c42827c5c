package http_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	dashboardhttp "github.com/neuraops/dashboard/internal/dashboard/infra/http"
	pkgtime "github.com/neuraops/dashboard/pkg/time"
)

func TestLoginThrottle_AllowAndPurge(t *testing.T) {
	clock := pkgtime.NewAdjustableClock()
	started := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ctx := clock.Set(context.Background(), started)

	throttle := dashboardhttp.NewLoginThrottle(1, 2, clock)

	assert.True(t, throttle.Allow(ctx, "10.0.0.1"))
	assert.True(t, throttle.Allow(ctx, "10.0.0.1"))
	assert.False(t, throttle.Allow(ctx, "10.0.0.1"))
	assert.True(t, throttle.Allow(ctx, "10.0.0.2"))

	later := clock.Set(context.Background(), started.Add(2*time.Second))
	assert.True(t, throttle.Allow(later, "10.0.0.1"))

	assert.Equal(t, 1, throttle.Purge(started.Add(time.Second)))
	assert.Equal(t, 1, throttle.Purge(started.Add(time.Hour)))
}
