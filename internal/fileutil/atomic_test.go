package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/tablescribe/internal/fileutil"
)

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.json")

	require.NoError(t, fileutil.WriteAtomic(path, []byte(`[]`), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, `[]`, string(data))

	// Overwrite replaces the previous content entirely.
	require.NoError(t, fileutil.WriteAtomic(path, []byte(`[{"id":1}]`), 0o644))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, `[{"id":1}]`, string(data))
}

func TestWriteAtomicLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.json")

	require.NoError(t, fileutil.WriteAtomic(path, []byte("data"), 0o600))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "store.json", entries[0].Name())
}

func TestReadIfExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing.json")

	data, ok, err := fileutil.ReadIfExists(path)
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, data)

	require.NoError(t, os.WriteFile(path, []byte("present"), 0o644))
	data, ok, err = fileutil.ReadIfExists(path)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "present", string(data))
}
