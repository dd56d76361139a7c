package ffmpeg

import (
	"context"
	"os/exec"

	"github.com/ansel1/merry/v2"

	"camancipate/utils"
)

var ErrEngineFailure = merry.Sentinel("transcoding engine failed")

// Do runs ffmpeg with the given arguments. Progress lines written to stdout
// via "-progress pipe:1" are parsed and forwarded to progressCallback. The
// context cancels or times out the engine process.
func Do(ctx context.Context, arguments []string, info StreamInfo, progressCallback ProgressCallback) (string, error) {
	cmd := exec.CommandContext(ctx, "ffmpeg", arguments...)

	out, err := utils.ExecuteCmd(cmd, parseProgressCallback(arguments, info, progressCallback))
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", merry.Wrap(ErrEngineFailure, merry.WithCause(err))
	}
	return out, nil
}
