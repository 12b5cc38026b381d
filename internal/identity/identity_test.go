package identity

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIsUnique(t *testing.T) {
	a := Generate()
	b := Generate()
	assert.False(t, a.IsZero())
	assert.NotEqual(t, a.Address(), b.Address())
}

func TestFromBase58RoundTrip(t *testing.T) {
	id := Generate()
	loaded, err := FromBase58(id.PrivateKey().String())
	require.NoError(t, err)
	assert.Equal(t, id.Address(), loaded.Address())

	_, err = FromBase58("not a key")
	assert.Error(t, err)
}

func TestFromKeygenFile(t *testing.T) {
	id := Generate()
	raw := make([]int, 0, len(id.PrivateKey()))
	for _, b := range id.PrivateKey() {
		raw = append(raw, int(b))
	}
	body, err := json.Marshal(raw)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "id.json")
	require.NoError(t, os.WriteFile(path, body, 0o600))

	loaded, err := FromKeygenFile(path)
	require.NoError(t, err)
	assert.Equal(t, id.Address(), loaded.Address())
}

func TestFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())

	_, ok, err := FromEnv("LIFECYCLE_TEST_KEY")
	require.NoError(t, err)
	assert.False(t, ok)

	id := Generate()
	t.Setenv("LIFECYCLE_TEST_KEY", id.PrivateKey().String())
	loaded, ok, err := FromEnv("LIFECYCLE_TEST_KEY")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, id.Address(), loaded.Address())
}

func TestZeroIdentity(t *testing.T) {
	var id Identity
	assert.True(t, id.IsZero())
	assert.Equal(t, "<none>", id.String())
}
