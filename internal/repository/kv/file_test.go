package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFileStore_NotFound verifies Get returns ErrNotFound for a missing key.
func TestFileStore_NotFound(t *testing.T) {
	t.Parallel()

	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	data, err := store.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
	require.Nil(t, data)
}

// TestFileStore_PutGet_Roundtrip ensures Put followed by Get returns the same bytes
// and leaves no temporary files behind.
func TestFileStore_PutGet_Roundtrip(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "data")
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "savedAlarms", []byte("first")))
	require.NoError(t, store.Put(ctx, "savedAlarms", []byte("second")))

	got, err := store.Get(ctx, "savedAlarms")
	require.NoError(t, err)
	require.Equal(t, []byte("second"), got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "savedAlarms.bin", entries[0].Name())
}

// TestFileStore_InvalidKey rejects keys that would escape the data directory.
func TestFileStore_InvalidKey(t *testing.T) {
	t.Parallel()

	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "../etc/passwd")
	require.ErrorIs(t, err, ErrInvalidKey)

	err = store.Put(context.Background(), "", nil)
	require.ErrorIs(t, err, ErrInvalidKey)
}
