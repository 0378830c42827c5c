package env_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuraops/dashboard/pkg/env"
)

type testConfig struct {
	URL     string        `env:"TEST_ENV_URL" envDefault:"http://localhost:8000"`
	Timeout time.Duration `env:"TEST_ENV_TIMEOUT" envDefault:"5s"`
	Secure  bool          `env:"TEST_ENV_SECURE"`
}

func TestParseAs_AppliesDefaultsAndOverrides(t *testing.T) {
	t.Setenv("TEST_ENV_SECURE", "true")

	cfg, err := env.ParseAs[testConfig]()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.URL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.Secure)
}

func TestParseAs_ReturnsErrorOnInvalidValue(t *testing.T) {
	t.Setenv("TEST_ENV_TIMEOUT", "soon")

	_, err := env.ParseAs[testConfig]()
	assert.Error(t, err)
	assert.Panics(t, func() { env.Must(env.ParseAs[testConfig]()) })
}
