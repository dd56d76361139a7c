package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ansel1/merry/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"camancipate/flows"
	"camancipate/project"
	"camancipate/services/ffmpeg"
	"camancipate/utils"
)

var ErrUserAbort = merry.Sentinel("aborted by user")

type options struct {
	Folder         string
	Screen         string
	Webcam         string
	Audio          string
	Project        string
	Output         string
	Encoder        string
	Bitrate        string
	GroupStrategy  string
	Quiet          bool
	DryRun         bool
	Restart        bool
	SegmentTimeout time.Duration
}

func main() {
	opts := options{}

	rootCmd := &cobra.Command{
		Use:   "camancipate",
		Short: "Reconstruct a Camtasia recording with a webcam picture-in-picture overlay",
		Long: "Flattens the edit list of a Camtasia project XML into segments, renders each\n" +
			"segment with the webcam composited onto the screen capture, and concatenates\n" +
			"the renders into a single video.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	f := rootCmd.Flags()
	f.StringVarP(&opts.Folder, "folder", "f", ".", "folder containing the media files")
	f.StringVarP(&opts.Screen, "screen", "s", "", "screen recording filename (default: the only .mkv in the folder)")
	f.StringVarP(&opts.Webcam, "webcam", "w", "", "webcam recording filename (default: the only .mp4 in the folder)")
	f.StringVarP(&opts.Audio, "audio", "a", "", "audio filename (default: the only .aac in the folder)")
	f.StringVarP(&opts.Project, "project", "x", "", "project XML filename (default: the only .xml in the folder)")
	f.StringVarP(&opts.Output, "output", "o", "camancipated_video.mp4", "output video filename")
	f.StringVarP(&opts.Encoder, "encoder", "e", "", "video encoder (auto-detect if not specified)")
	f.StringVar(&opts.Bitrate, "bitrate", flows.DefaultBitrate, "video bitrate for segment renders")
	f.StringVar(&opts.GroupStrategy, "group-strategy", project.StrategyOpaque.Value, "stitched group handling: opaque or transparent")
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress engine output (only show errors)")
	f.BoolVarP(&opts.DryRun, "dry-run", "n", false, "show the extracted segments without rendering")
	f.BoolVarP(&opts.Restart, "restart", "r", false, "skip rendering and concatenate existing slice files")
	f.DurationVar(&opts.SegmentTimeout, "segment-timeout", 0, "abort a segment render after this duration (0 disables)")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if errors.Is(err, ErrUserAbort) {
			fmt.Println("Aborted.")
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	started := time.Now()
	logger := newLogger(opts.Quiet)

	strategy := project.Strategies.Parse(opts.GroupStrategy)
	if strategy == nil {
		return merry.New(fmt.Sprintf("unknown group strategy %q", opts.GroupStrategy))
	}

	screen, err := resolveInput(opts.Screen, opts.Folder, ".mkv", "screen recording")
	if err != nil {
		return err
	}
	webcam, err := resolveInput(opts.Webcam, opts.Folder, ".mp4", "webcam recording")
	if err != nil {
		return err
	}
	audio, err := resolveInput(opts.Audio, opts.Folder, ".aac", "audio recording")
	if err != nil {
		return err
	}
	projectFile, err := resolveInput(opts.Project, opts.Folder, ".xml", "project XML")
	if err != nil {
		return err
	}

	if err := confirmOverwrite(opts.Output); err != nil {
		return err
	}

	segments, err := extractSegments(projectFile, *strategy)
	if err != nil {
		return err
	}

	screenInfo := probeBanner(ctx, logger, screen, webcam)

	fmt.Printf("Total segments: %d\n\n", len(segments))
	printSegments(os.Stdout, segments, flows.DefaultFrameRate)

	encoder := ffmpeg.SelectEncoder(ctx, opts.Encoder)
	if opts.Encoder != "" {
		fmt.Printf("Using encoder: %s\n", encoder.Value)
	} else {
		fmt.Printf("Auto-detected encoder: %s (%s)\n", encoder.Value, encoder.Description())
	}

	if opts.DryRun {
		return nil
	}

	fmt.Println()
	result, err := flows.Reconstruct(ctx, logger, flows.ReconstructInput{
		Segments:       segments,
		ScreenPath:     screen,
		WebcamPath:     webcam,
		AudioPath:      audio,
		ScreenWidth:    screenInfo.Width,
		ScreenHeight:   screenInfo.Height,
		Encoder:        encoder,
		Bitrate:        opts.Bitrate,
		WorkDir:        opts.Folder,
		OutputPath:     opts.Output,
		Quiet:          opts.Quiet,
		Restart:        opts.Restart,
		SegmentTimeout: opts.SegmentTimeout,
	})
	if err != nil {
		return err
	}

	if result.NothingToRender {
		fmt.Println("Nothing to render.")
		return nil
	}

	elapsed := time.Since(started).Round(time.Second)
	fmt.Printf("\nCompleted in %s --> %s\n", formatElapsed(elapsed), result.OutputPath)
	return nil
}

func newLogger(quiet bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if quiet {
		level = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func resolveInput(explicit, folder, ext, description string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	path, ok := utils.FindUniqueFile(folder, ext)
	if !ok {
		return "", merry.Wrap(utils.ErrMissingMediaFile,
			merry.AppendMessagef("%s: no unambiguous %s file in %s, specify one explicitly", description, ext, folder))
	}
	return path, nil
}

func confirmOverwrite(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	fmt.Printf("File '%s' already exists. Overwrite? (y/n): ", path)
	response, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return merry.Wrap(ErrUserAbort, merry.WithCause(err))
	}
	if strings.ToLower(strings.TrimSpace(response)) != "y" {
		return merry.Wrap(ErrUserAbort)
	}
	return nil
}

func extractSegments(projectFile string, strategy project.GroupStrategy) ([]project.Segment, error) {
	f, err := os.Open(projectFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := project.Parse(f)
	if err != nil {
		return nil, err
	}

	return project.Extract(doc, strategy)
}

// probeBanner prints the recording geometry and runtime, and returns the
// screen stream info used for the overlay layout. Probe failures are not
// fatal, rendering falls back to the default geometry.
func probeBanner(ctx context.Context, logger zerolog.Logger, screen, webcam string) ffmpeg.StreamInfo {
	screenInfo, err := ffmpeg.GetStreamInfo(ctx, screen)
	if err != nil {
		logger.Warn().Err(err).Msg("could not probe screen recording, using default geometry")
	} else {
		fmt.Printf("Screen video size: %dx%d\n", screenInfo.Width, screenInfo.Height)
		minutes := int(screenInfo.TotalSeconds) / 60
		seconds := int(screenInfo.TotalSeconds) % 60
		fmt.Printf("Video runtime: %02d:%02d\n", minutes, seconds)
	}

	webcamInfo, err := ffmpeg.GetStreamInfo(ctx, webcam)
	if err != nil {
		logger.Warn().Err(err).Msg("could not probe webcam recording")
	} else {
		fmt.Printf("Webcam video size: %dx%d\n", webcamInfo.Width, webcamInfo.Height)
	}

	return screenInfo
}

func formatElapsed(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}
