package ffmpeg

import (
	"context"
	"os/exec"
	"strings"

	"github.com/ansel1/merry/v2"
	"github.com/orsinium-labs/enum"
	"github.com/samber/lo"

	"camancipate/utils"
)

type Encoder enum.Member[string]

var (
	EncoderVideoToolbox = Encoder{Value: "h264_videotoolbox"}
	EncoderNVENC        = Encoder{Value: "h264_nvenc"}
	EncoderAMF          = Encoder{Value: "h264_amf"}
	EncoderX264         = Encoder{Value: "libx264"}
	Encoders            = enum.New(EncoderVideoToolbox, EncoderNVENC, EncoderAMF, EncoderX264)

	// Hardware first, portable software encoder last.
	encoderPreference = []Encoder{EncoderVideoToolbox, EncoderNVENC, EncoderAMF, EncoderX264}
)

func (e Encoder) Description() string {
	switch e {
	case EncoderVideoToolbox:
		return "Apple Hardware (macOS/iOS)"
	case EncoderNVENC:
		return "NVIDIA GPU"
	case EncoderAMF:
		return "AMD GPU"
	case EncoderX264:
		return "Software (portable)"
	}
	return ""
}

// AvailableEncoders asks ffmpeg for its codec list and returns the known
// H.264 encoders it reports.
func AvailableEncoders(ctx context.Context) ([]Encoder, error) {
	cmd := exec.CommandContext(ctx, "ffmpeg", "-codecs", "-hide_banner")

	out, err := utils.ExecuteCmd(cmd, nil)
	if err != nil {
		return nil, merry.Wrap(ErrEngineFailure, merry.WithCause(err))
	}

	return encodersFromCodecList(out), nil
}

func encodersFromCodecList(codecList string) []Encoder {
	return lo.Filter(encoderPreference, func(e Encoder, _ int) bool {
		return strings.Contains(codecList, " "+e.Value+" ")
	})
}

// SelectEncoder picks the best available encoder, preferring hardware. A
// non-empty override wins unconditionally, even if ffmpeg did not report it.
func SelectEncoder(ctx context.Context, override string) Encoder {
	if override != "" {
		if e := Encoders.Parse(override); e != nil {
			return *e
		}
		return Encoder{Value: override}
	}

	available, err := AvailableEncoders(ctx)
	if err != nil || len(available) == 0 {
		return EncoderX264
	}

	for _, preferred := range encoderPreference {
		if lo.Contains(available, preferred) {
			return preferred
		}
	}
	return available[0]
}
