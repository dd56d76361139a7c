package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"camancipate/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
}

func TestFindUniqueFile(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "recording.mkv")
	touch(t, dir, "webcam.mp4")
	touch(t, dir, "other.mp4")

	path, ok := utils.FindUniqueFile(dir, ".mkv")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "recording.mkv"), path)

	// two candidates, no default
	_, ok = utils.FindUniqueFile(dir, ".mp4")
	assert.False(t, ok)

	// no candidates, no default
	_, ok = utils.FindUniqueFile(dir, ".aac")
	assert.False(t, ok)

	_, ok = utils.FindUniqueFile(filepath.Join(dir, "does-not-exist"), ".mkv")
	assert.False(t, ok)
}

func TestCleanupWorkFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "slice_000.ts")
	touch(t, dir, "slice_001.ts")
	touch(t, dir, "concat_list.txt")
	touch(t, dir, "keep.mp4")

	removed, err := utils.CleanupWorkFiles(dir)
	assert.NoError(t, err)
	assert.Equal(t, 3, removed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "keep.mp4", entries[0].Name())
}
