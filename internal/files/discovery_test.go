package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bicingwrapped/internal/errors"
)

func TestFindExportsSortedAndFiltered(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{"b.csv", "a.xlsx", "c.txt", "notes.pdf", "d.tsv"} {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "sub.csv"), 0o755))

	d := NewDiscovery(tmpDir)
	found, err := d.FindExports(".")
	require.NoError(t, err)

	names := make([]string, 0, len(found))
	for _, f := range found {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"a.xlsx", "b.csv", "c.txt", "d.tsv"}, names)
}

func TestFindExportsAbsoluteDir(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "export.csv"), []byte("x"), 0o644))

	d := NewDiscovery("/unrelated/base")
	found, err := d.FindExports(tmpDir)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, filepath.Join(tmpDir, "export.csv"), found[0].Path)
}

func TestFindExportsMissingDir(t *testing.T) {
	d := NewDiscovery(t.TempDir())
	_, err := d.FindExports("nope")
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
}

func TestManagerHelpers(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "out", "report.json")

	assert.False(t, FileExists(target))
	require.NoError(t, WriteFile(target, []byte(`{}`)))
	assert.True(t, FileExists(target))
	assert.False(t, FileExists(filepath.Join(tmpDir, "out")), "directories are not files")

	require.NoError(t, EnsureDirectory(filepath.Join(tmpDir, "deep", "dir")))
	info, err := os.Stat(filepath.Join(tmpDir, "deep", "dir"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
