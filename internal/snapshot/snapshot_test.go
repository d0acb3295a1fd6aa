package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store, err := NewFileStore(filepath.Join(t.TempDir(), "snapshots"))
	require.NoError(t, err)

	require.NoError(t, store.Save("business_tasks", []byte(`[{"id":"1"}]`)))

	data, err := store.Load("business_tasks")
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":"1"}]`, string(data))
}

func TestFileStoreAbsentKey(t *testing.T) {
	t.Parallel()

	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	data, err := store.Load("never_written")
	require.NoError(t, err)
	require.Nil(t, data)
}

func TestFileStoreOverwriteReplacesWhole(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save("k", []byte(`{"v":1,"extra":true}`)))
	require.NoError(t, store.Save("k", []byte(`{"v":2}`)))

	data, err := store.Load("k")
	require.NoError(t, err)
	require.JSONEq(t, `{"v":2}`, string(data))

	// no temp file left behind
	_, err = os.Stat(filepath.Join(dir, "k.json.tmp"))
	require.True(t, os.IsNotExist(err))
}

func TestFileStoreCreatesDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "a", "b")
	_, err := NewFileStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestMemStoreIsolatesCallers(t *testing.T) {
	t.Parallel()

	store := NewMemStore()
	in := []byte("hello")
	require.NoError(t, store.Save("k", in))

	in[0] = 'X'
	data, err := store.Load("k")
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), data)

	data[0] = 'Y'
	again, err := store.Load("k")
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), again)
}

func TestMemStoreAbsentKey(t *testing.T) {
	t.Parallel()

	data, err := NewMemStore().Load("missing")
	require.NoError(t, err)
	require.Nil(t, data)
}
