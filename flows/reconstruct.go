package flows

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ansel1/merry/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"camancipate/project"
	"camancipate/services/ffmpeg"
	"camancipate/services/transcode"
	"camancipate/utils"
)

const (
	DefaultFrameRate    = 30
	DefaultOverlayWidth = 720
	DefaultOverlayInset = 50
	DefaultBitrate      = "15M"

	// Fallback geometry when the screen recording could not be probed.
	DefaultScreenWidth  = 3840
	DefaultScreenHeight = 2160

	ManifestName = "concat_list.txt"

	renderRetryDelay = 5 * time.Second
)

var ErrRenderTimeout = merry.Sentinel("segment render timed out")

// ReconstructInput carries everything one run needs. It is built once by the
// CLI and never mutated, there is no ambient configuration.
type ReconstructInput struct {
	Segments []project.Segment

	ScreenPath string
	WebcamPath string
	AudioPath  string

	ScreenWidth  int
	ScreenHeight int
	FrameRate    int
	OverlayWidth int
	OverlayInset int

	Encoder ffmpeg.Encoder
	Bitrate string

	WorkDir    string
	OutputPath string

	Quiet   bool
	Restart bool

	// Zero disables the per-segment deadline.
	SegmentTimeout time.Duration
}

type ReconstructResult struct {
	OutputPath      string
	SliceCount      int
	RenderedFrames  int
	NothingToRender bool
	Elapsed         time.Duration
}

// Reconstruct renders every segment sequentially in timeline order, appends
// each slice to the manifest as it completes, then stream-copies the slices
// into the final output. A failure partway through leaves the manifest and
// rendered slices in place so the run can be restarted.
func Reconstruct(ctx context.Context, logger zerolog.Logger, input ReconstructInput) (*ReconstructResult, error) {
	started := time.Now()
	input = withDefaults(input)
	logger = logger.With().Str("run", uuid.NewString()[:8]).Logger()

	manifestPath := filepath.Join(input.WorkDir, ManifestName)
	result := &ReconstructResult{OutputPath: input.OutputPath}

	if input.Restart {
		slices, err := transcode.ReadManifest(manifestPath)
		if err != nil {
			return nil, merry.Wrap(err, merry.AppendMessage("restart requires an existing manifest"))
		}
		result.SliceCount = len(slices)
		logger.Info().Int("slices", len(slices)).Msg("restarting from existing slices")
	} else {
		if len(input.Segments) == 0 {
			logger.Warn().Msg("nothing to render, the edit list is empty")
			result.NothingToRender = true
			result.Elapsed = time.Since(started)
			return result, nil
		}

		// Stale work files from a previous run would corrupt the manifest.
		_, _ = utils.CleanupWorkFiles(input.WorkDir)

		for i, segment := range input.Segments {
			slice := fmt.Sprintf("slice_%03d.ts", i)
			logger.Info().
				Int("segment", i+1).
				Int("of", len(input.Segments)).
				Str("slice", slice).
				Msg("extracting segment")

			err := renderSegment(ctx, logger, input, segment, slice)
			if err != nil {
				return nil, err
			}

			if err := transcode.AppendManifest(manifestPath, slice); err != nil {
				return nil, err
			}
			result.SliceCount++
			result.RenderedFrames += segment.Duration
		}
	}

	if result.SliceCount == 0 {
		logger.Warn().Msg("manifest is empty, skipping concatenation")
		result.NothingToRender = true
		result.Elapsed = time.Since(started)
		return result, nil
	}

	logger.Info().Str("output", input.OutputPath).Msg("final concatenation")
	_, err := transcode.Concat(ctx, transcode.ConcatInput{
		ManifestPath: manifestPath,
		OutputPath:   input.OutputPath,
		Quiet:        input.Quiet,
	}, progressLogger(logger, "concat"))
	if err != nil {
		return nil, err
	}

	removed, _ := utils.CleanupWorkFiles(input.WorkDir)
	logger.Debug().Int("files", removed).Msg("cleaned up work files")

	result.Elapsed = time.Since(started)
	return result, nil
}

func renderSegment(ctx context.Context, logger zerolog.Logger, input ReconstructInput, segment project.Segment, slice string) error {
	segmentInput := transcode.SegmentInput{
		ScreenPath:      input.ScreenPath,
		WebcamPath:      input.WebcamPath,
		AudioPath:       input.AudioPath,
		StartSeconds:    float64(segment.MediaStart) / float64(input.FrameRate),
		DurationSeconds: float64(segment.Duration) / float64(input.FrameRate),
		ScreenWidth:     input.ScreenWidth,
		ScreenHeight:    input.ScreenHeight,
		FrameRate:       input.FrameRate,
		OverlayWidth:    input.OverlayWidth,
		OverlayInset:    input.OverlayInset,
		Encoder:         input.Encoder,
		Bitrate:         input.Bitrate,
		OutputPath:      filepath.Join(input.WorkDir, slice),
		Quiet:           input.Quiet,
	}

	operation := func() error {
		segmentCtx := ctx
		cancel := func() {}
		if input.SegmentTimeout > 0 {
			segmentCtx, cancel = context.WithTimeout(ctx, input.SegmentTimeout)
		}
		defer cancel()

		_, err := transcode.RenderSegment(segmentCtx, segmentInput, progressLogger(logger, slice))
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return backoff.Permanent(merry.Wrap(ErrRenderTimeout, merry.AppendMessage(slice), merry.WithCause(err)))
		}
		logger.Warn().Err(err).Str("slice", slice).Msg("segment render failed, retrying")
		return err
	}

	// One retry with constant backoff, then give up and leave the work
	// files for --restart.
	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(renderRetryDelay), 1)
	return backoff.Retry(operation, backoff.WithContext(policy, ctx))
}

func progressLogger(logger zerolog.Logger, label string) ffmpeg.ProgressCallback {
	return func(p ffmpeg.Progress) {
		logger.Debug().
			Float64("percent", p.Percent).
			Str("speed", p.Speed).
			Str("bitrate", p.Bitrate).
			Msg(label)
	}
}

func withDefaults(input ReconstructInput) ReconstructInput {
	if input.FrameRate == 0 {
		input.FrameRate = DefaultFrameRate
	}
	if input.OverlayWidth == 0 {
		input.OverlayWidth = DefaultOverlayWidth
	}
	if input.OverlayInset == 0 {
		input.OverlayInset = DefaultOverlayInset
	}
	if input.Bitrate == "" {
		input.Bitrate = DefaultBitrate
	}
	if input.ScreenWidth == 0 || input.ScreenHeight == 0 {
		input.ScreenWidth = DefaultScreenWidth
		input.ScreenHeight = DefaultScreenHeight
	}
	if input.WorkDir == "" {
		input.WorkDir = "."
	}
	if input.Encoder.Value == "" {
		input.Encoder = ffmpeg.EncoderX264
	}
	return input
}
