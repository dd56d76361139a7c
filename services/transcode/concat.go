package transcode

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ansel1/merry/v2"

	"camancipate/services/ffmpeg"
)

type ConcatInput struct {
	ManifestPath string
	OutputPath   string
	Quiet        bool
}

type ConcatResult struct {
	Path   string
	Slices []string
}

// Concat stream-copies the slices listed in the manifest into the final
// output, no re-encoding. All slices share encode settings, so the copy is
// safe. Every manifest entry must exist before the engine is invoked.
func Concat(ctx context.Context, input ConcatInput, progressCallback ffmpeg.ProgressCallback) (*ConcatResult, error) {
	slices, err := ReadManifest(input.ManifestPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(input.ManifestPath)
	for _, slice := range slices {
		path := slice
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		if _, err := os.Stat(path); err != nil {
			return nil, merry.Wrap(ErrIncompleteManifest, merry.AppendMessage(slice))
		}
	}

	params := []string{
		"-y",
		"-progress", "pipe:1",
		"-hide_banner",
	}
	if input.Quiet {
		params = append(params, "-loglevel", "error")
	}
	params = append(params,
		"-f", "concat",
		"-safe", "0",
		"-i", input.ManifestPath,
		"-c", "copy",
		input.OutputPath,
	)

	_, err = ffmpeg.Do(ctx, params, ffmpeg.StreamInfo{}, progressCallback)
	if err != nil {
		return nil, merry.Wrap(err, merry.AppendMessagef("concatenating %v", slices))
	}

	return &ConcatResult{
		Path:   input.OutputPath,
		Slices: slices,
	}, nil
}
