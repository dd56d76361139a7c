package flows

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camancipate/services/transcode"
)

func TestReconstruct_NothingToRender(t *testing.T) {
	result, err := Reconstruct(context.Background(), zerolog.Nop(), ReconstructInput{
		WorkDir:    t.TempDir(),
		OutputPath: "out.mp4",
	})

	require.NoError(t, err)
	assert.True(t, result.NothingToRender)
	assert.Equal(t, 0, result.SliceCount)
}

func TestReconstruct_RestartWithoutManifest(t *testing.T) {
	_, err := Reconstruct(context.Background(), zerolog.Nop(), ReconstructInput{
		WorkDir:    t.TempDir(),
		OutputPath: "out.mp4",
		Restart:    true,
	})

	assert.Error(t, err)
}

func TestReconstruct_RestartEmptyManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, transcode.WriteManifest(filepath.Join(dir, ManifestName), nil))

	result, err := Reconstruct(context.Background(), zerolog.Nop(), ReconstructInput{
		WorkDir:    dir,
		OutputPath: "out.mp4",
		Restart:    true,
	})

	require.NoError(t, err)
	assert.True(t, result.NothingToRender)
}

func TestWithDefaults(t *testing.T) {
	input := withDefaults(ReconstructInput{})

	assert.Equal(t, DefaultFrameRate, input.FrameRate)
	assert.Equal(t, DefaultOverlayWidth, input.OverlayWidth)
	assert.Equal(t, DefaultOverlayInset, input.OverlayInset)
	assert.Equal(t, DefaultBitrate, input.Bitrate)
	assert.Equal(t, DefaultScreenWidth, input.ScreenWidth)
	assert.Equal(t, DefaultScreenHeight, input.ScreenHeight)
	assert.Equal(t, ".", input.WorkDir)
	assert.Equal(t, "libx264", input.Encoder.Value)
}

func TestWithDefaults_KeepsExplicitValues(t *testing.T) {
	input := withDefaults(ReconstructInput{
		FrameRate:    60,
		ScreenWidth:  1920,
		ScreenHeight: 1080,
		Bitrate:      "8M",
	})

	assert.Equal(t, 60, input.FrameRate)
	assert.Equal(t, 1920, input.ScreenWidth)
	assert.Equal(t, 1080, input.ScreenHeight)
	assert.Equal(t, "8M", input.Bitrate)
}
