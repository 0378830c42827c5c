package lazy_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuraops/dashboard/pkg/lazy"
)

func TestLoader_CallsProviderOnce(t *testing.T) {
	calls := 0
	loader := lazy.New(func() (int, error) {
		calls++
		return 42, nil
	})

	assert.Equal(t, 42, loader.MustLoad())
	assert.Equal(t, 42, loader.MustLoad())
	assert.Equal(t, 1, calls)
}

func TestLoader_IfLoaded(t *testing.T) {
	loader := lazy.Of("value")

	called := false
	loader.IfLoaded(func(string) { called = true })
	assert.False(t, called)

	_ = loader.MustLoad()
	loader.IfLoaded(func(v string) {
		called = true
		assert.Equal(t, "value", v)
	})
	assert.True(t, called)
}

func TestLoader_ReturnsProviderError(t *testing.T) {
	loader := lazy.New(func() (int, error) { return 0, errors.New("unexpected") })

	_, err := loader.Load()
	require.Error(t, err)
	assert.Panics(t, func() { loader.MustLoad() })
}
