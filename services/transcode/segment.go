package transcode

import (
	"context"
	"fmt"
	"strconv"

	"camancipate/services/ffmpeg"
)

// SegmentInput describes one picture-in-picture render: the same time window
// cut from all three recordings, webcam composited onto the screen capture.
type SegmentInput struct {
	ScreenPath string
	WebcamPath string
	AudioPath  string

	StartSeconds    float64
	DurationSeconds float64

	ScreenWidth  int
	ScreenHeight int
	FrameRate    int
	OverlayWidth int
	OverlayInset int

	Encoder ffmpeg.Encoder
	Bitrate string

	OutputPath string
	Quiet      bool
}

type SegmentResult struct {
	Path string
}

func segmentFilter(input SegmentInput) string {
	return fmt.Sprintf(
		"[0:v]scale=%d:%d,fps=%d[scr]; [1:v]scale=%d:-1,fps=%d[cam]; [scr][cam]overlay=main_w-overlay_w-%d:main_h-overlay_h-%d",
		input.ScreenWidth, input.ScreenHeight, input.FrameRate,
		input.OverlayWidth, input.FrameRate,
		input.OverlayInset, input.OverlayInset,
	)
}

func segmentArguments(input SegmentInput) []string {
	start := strconv.FormatFloat(input.StartSeconds, 'f', -1, 64)
	duration := strconv.FormatFloat(input.DurationSeconds, 'f', -1, 64)

	params := []string{
		"-y",
		"-progress", "pipe:1",
		"-hide_banner",
	}

	if input.Quiet {
		params = append(params, "-loglevel", "error")
	}

	// The same window is cut from every input, the editor's timeline keeps
	// all three recordings in lockstep.
	for _, path := range []string{input.ScreenPath, input.WebcamPath, input.AudioPath} {
		params = append(params,
			"-ss", start,
			"-t", duration,
			"-i", path,
		)
	}

	params = append(params,
		"-filter_complex", segmentFilter(input),
		"-c:v", input.Encoder.Value,
		"-b:v", input.Bitrate,
		"-c:a", "aac",
		input.OutputPath,
	)

	return params
}

// RenderSegment cuts one segment out of the three recordings and renders it
// with the webcam overlaid bottom-right on the screen capture.
func RenderSegment(ctx context.Context, input SegmentInput, progressCallback ffmpeg.ProgressCallback) (*SegmentResult, error) {
	info := ffmpeg.StreamInfo{
		TotalSeconds: input.DurationSeconds,
		TotalFrames:  int(input.DurationSeconds * float64(input.FrameRate)),
	}

	_, err := ffmpeg.Do(ctx, segmentArguments(input), info, progressCallback)
	if err != nil {
		return nil, err
	}

	return &SegmentResult{
		Path: input.OutputPath,
	}, nil
}
