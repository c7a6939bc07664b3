package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMemory(t *testing.T) {
	mem := NewMemory([]string{"A=1", "B=x=y", "A=2", "EMPTY="})

	v, found, err := mem.Lookup("A")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "2", v, "later entries win")

	v, _, _ = mem.Lookup("B")
	assert.Equal(t, "x=y", v, "only the first '=' splits")

	v, found, _ = mem.Lookup("EMPTY")
	assert.True(t, found)
	assert.Empty(t, v)
}

func TestMemory_Environ(t *testing.T) {
	mem := NewMemory(nil)
	require.NoError(t, mem.Set("PATH", "/b:/a"))
	require.NoError(t, mem.Set("HOME", "/home/u"))
	require.NoError(t, mem.Set("TMP", "/tmp"))
	require.NoError(t, mem.Unset("TMP"))

	assert.Equal(t, []string{"HOME=/home/u", "PATH=/b:/a"}, mem.Environ())
}

func TestMemory_ValidatesNames(t *testing.T) {
	mem := NewMemory(nil)
	for _, name := range []string{"", "A=B", "A\x00"} {
		_, _, err := mem.Lookup(name)
		assert.ErrorIs(t, err, ErrInvalidArgument, "name %q", name)
		assert.ErrorIs(t, mem.Set(name, "v"), ErrInvalidArgument, "name %q", name)
		assert.ErrorIs(t, mem.Unset(name), ErrInvalidArgument, "name %q", name)
	}
}
