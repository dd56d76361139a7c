package transcode

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "concat_list.txt")

	require.NoError(t, AppendManifest(manifest, "slice_000.ts"))
	require.NoError(t, AppendManifest(manifest, "slice_001.ts"))

	entries, err := ReadManifest(manifest)
	require.NoError(t, err)
	assert.Equal(t, []string{"slice_000.ts", "slice_001.ts"}, entries)
}

func TestWriteManifest_Replaces(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "concat_list.txt")

	require.NoError(t, AppendManifest(manifest, "stale.ts"))
	require.NoError(t, WriteManifest(manifest, []string{"slice_000.ts"}))

	entries, err := ReadManifest(manifest)
	require.NoError(t, err)
	assert.Equal(t, []string{"slice_000.ts"}, entries)
}

func TestConcat_MissingSlice(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "concat_list.txt")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "slice_000.ts"), []byte("x"), 0644))
	require.NoError(t, WriteManifest(manifest, []string{"slice_000.ts", "slice_001.ts"}))

	_, err := Concat(context.Background(), ConcatInput{
		ManifestPath: manifest,
		OutputPath:   filepath.Join(dir, "out.mp4"),
	}, nil)

	assert.True(t, errors.Is(err, ErrIncompleteManifest))
}

func TestConcat_MissingManifest(t *testing.T) {
	_, err := Concat(context.Background(), ConcatInput{
		ManifestPath: filepath.Join(t.TempDir(), "concat_list.txt"),
		OutputPath:   "out.mp4",
	}, nil)

	assert.Error(t, err)
}
