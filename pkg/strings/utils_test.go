package strings_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuraops/dashboard/pkg/strings"
)

func TestParseTypedValue(t *testing.T) {
	b, err := strings.ParseTypedValue[bool]("true")
	require.NoError(t, err)
	assert.True(t, b)

	d, err := strings.ParseTypedValue[time.Duration]("50ms")
	require.NoError(t, err)
	assert.Equal(t, 50*time.Millisecond, d)

	id := uuid.New()
	parsed, err := strings.ParseTypedValue[uuid.UUID](id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = strings.ParseTypedValue[int]("ten")
	assert.Error(t, err)
}

func TestCaseConversion(t *testing.T) {
	assert.Equal(t, "control_plane", strings.ToSnakeCase("controlPlane"))
	assert.Equal(t, "CONTROL_PLANE", strings.ToScreamingSnakeCase("control-plane"))
}
