package localstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutGetDelete(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "nested", "local.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	got, err := store.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Put("k", []byte("v1")))
	require.NoError(t, store.Put("k", []byte("v2")))

	got, err = store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, store.Delete("k"))
	got, err = store.Get("k")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, store.Ping())
}

func TestNilStoreIsNotOpen(t *testing.T) {
	var store *Store
	_, err := store.Get("k")
	assert.Error(t, err)
	assert.NoError(t, store.Close())
}
