package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *LocalUploadStore {
	t.Helper()
	store, err := NewLocalUploadStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestSaveAndRead(t *testing.T) {
	store := newTestStore(t)

	path, err := store.Save("invoice.PDF", []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".pdf"), "extension should be kept lowercased: %s", path)

	data, err := store.Read(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)
}

func TestSaveUniqueNames(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Save("scan.png", []byte("a"))
	require.NoError(t, err)
	second, err := store.Save("scan.png", []byte("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)

	path, err := store.Save("doc.pdf", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Removing twice is fine.
	assert.NoError(t, store.Remove(path))
}

func TestOutsideDirectoryRejected(t *testing.T) {
	store := newTestStore(t)

	outside := filepath.Join(t.TempDir(), "secret.pdf")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	_, err := store.Read(outside)
	assert.Error(t, err)

	assert.Error(t, store.Remove(outside))
	_, err = os.Stat(outside)
	assert.NoError(t, err, "file outside the store must be untouched")
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalUploadStore(dir, zap.NewNop())
	require.NoError(t, err)

	_, err = store.Save("a.pdf", []byte("a"))
	require.NoError(t, err)
	_, err = store.Save("b.png", []byte("b"))
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	removed, err := store.Clear()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsDir())
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads", "nested")

	_, err := NewLocalUploadStore(dir, zap.NewNop())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
