package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaError(t *testing.T) {
	err := NewSchemaError("ubicacion", "nombre")
	assert.Equal(t, `key column "nombre" not found in ubicacion`, err.Error())
	assert.True(t, IsSchemaMismatch(err))
	assert.False(t, IsSourceUnavailable(err))

	var target *SchemaError
	require.True(t, As(err, &target))
	assert.Equal(t, "ubicacion", target.Source)
}

func TestSourceError(t *testing.T) {
	err := NewSourceError("correo", "file not cached", nil)
	assert.Contains(t, err.Error(), "correo")
	assert.True(t, IsSourceUnavailable(err))

	wrapped := WrapSource("telefono", fmt.Errorf("disk gone"))
	assert.True(t, IsSourceUnavailable(wrapped))
	assert.Contains(t, wrapped.Error(), "disk gone")

	assert.Nil(t, WrapSource("telefono", nil))
}

func TestFetchError(t *testing.T) {
	err := NewFetchError("https://x.test/a", 503, "Service Unavailable")
	assert.True(t, IsSourceUnavailable(err))
	assert.False(t, IsRateLimited(err))
	assert.Contains(t, err.Error(), "503")

	throttled := NewFetchError("https://x.test/a", 429, "Too Many Requests")
	assert.True(t, IsRateLimited(throttled))
	assert.True(t, IsSourceUnavailable(throttled))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("mode", "unknown mode: otro")
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "mode")
}

func TestIOErrorUnwrap(t *testing.T) {
	cause := New("permission denied")
	err := WrapIO("write", "/tmp/x", cause)
	assert.True(t, Is(err, cause))
	assert.Contains(t, err.Error(), "/tmp/x")

	assert.Nil(t, WrapIO("write", "/tmp/x", nil))
}
