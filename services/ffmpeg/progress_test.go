package ffmpeg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProgressCallback(t *testing.T) {
	var reported []Progress
	parse := parseProgressCallback([]string{"-i", "in.mkv"}, StreamInfo{
		TotalFrames:  300,
		TotalSeconds: 10,
	}, func(p Progress) {
		reported = append(reported, p)
	})

	for _, line := range []string{
		"frame=150",
		"bitrate=15000.0kbits/s",
		"speed=2.1x",
		"progress=continue",
		"frame=300",
		"progress=end",
	} {
		parse(line)
	}

	require.Len(t, reported, 2)
	assert.InDelta(t, 50, reported[0].Percent, 0.01)
	assert.Equal(t, 150, reported[0].CurrentFrame)
	assert.Equal(t, "15000.0kbits/s", reported[0].Bitrate)
	assert.Equal(t, "2.1x", reported[0].Speed)
	assert.Equal(t, float64(100), reported[1].Percent)
}

func TestParseProgressCallback_IgnoresNoise(t *testing.T) {
	parse := parseProgressCallback(nil, StreamInfo{}, func(p Progress) {
		t.Fatal("no progress line, no callback")
	})

	parse("random output")
	parse("a=b=c")
}

func TestProbeResultToInfo(t *testing.T) {
	result := &FFProbeResult{
		Streams: []FFProbeStream{
			{CodecType: "video", Width: 3840, Height: 2160, RFrameRate: "30/1", NbFrames: "900", Duration: "30.0"},
			{CodecType: "audio", Channels: 2, ChannelLayout: "stereo"},
		},
	}

	info := ProbeResultToInfo(result)

	assert.True(t, info.HasVideo)
	assert.True(t, info.HasAudio)
	assert.Equal(t, 3840, info.Width)
	assert.Equal(t, 2160, info.Height)
	assert.Equal(t, 30, info.FrameRate)
	assert.Equal(t, 900, info.TotalFrames)
	assert.Equal(t, 30.0, info.TotalSeconds)
	assert.Len(t, info.VideoStreams, 1)
	assert.Len(t, info.AudioStreams, 1)
}

func TestProbeResultToInfo_AudioOnly(t *testing.T) {
	result := &FFProbeResult{
		Streams: []FFProbeStream{
			{CodecType: "audio", Channels: 2, Duration: "45.5"},
		},
	}

	info := ProbeResultToInfo(result)

	assert.False(t, info.HasVideo)
	assert.True(t, info.HasAudio)
	assert.Equal(t, 0, info.Width)
	assert.Equal(t, 45.5, info.TotalSeconds)
}
