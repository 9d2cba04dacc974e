package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_CreatesDirectoryIdempotently(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	store, err := NewStore(dir)
	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Second creation over the same directory is fine.
	again, err := NewStore(dir)
	require.NoError(t, err)
	assert.Equal(t, store.Dir(), again.Dir())
}

func TestStore_WriteReadRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Write("style_report.txt", "E501 line too long\n"))
	content, err := store.Read("style_report.txt")
	require.NoError(t, err)
	assert.Equal(t, "E501 line too long\n", content)
}

func TestStore_WriteOverwrites(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Write("r.txt", "first run findings\n"))
	require.NoError(t, store.Write("r.txt", ""))

	content, err := store.Read("r.txt")
	require.NoError(t, err)
	assert.Equal(t, "", content)
}

func TestStore_WriteReplacesInvalidUTF8(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Write("r.txt", "ok \xff\xfe end"))
	content, err := store.Read("r.txt")
	require.NoError(t, err)
	assert.Equal(t, "ok �� end", content)
}

func TestStore_ReadMissingArtifact(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Read("never_ran.txt")
	assert.True(t, os.IsNotExist(err))
}
