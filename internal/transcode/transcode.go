// Package transcode is the universal media conversion collaborator. It
// shells out to ffmpeg, which accepts a far larger format matrix than the
// native codec at the cost of spawning a process per conversion.
package transcode

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// DefaultBinary is used when no explicit ffmpeg path is configured.
const DefaultBinary = "ffmpeg"

// FFmpeg invokes the ffmpeg binary. The output container is inferred from
// the output path's extension, the same way the engine's own CLI does it.
type FFmpeg struct {
	binary string
}

// New returns an FFmpeg transcoder. An empty binary resolves ffmpeg from
// PATH.
func New(binary string) *FFmpeg {
	if binary == "" {
		binary = DefaultBinary
	}
	return &FFmpeg{binary: binary}
}

// Transcode converts sourcePath into outputPath. A failed run removes any
// partial output file before returning.
func (f *FFmpeg) Transcode(ctx context.Context, sourcePath, outputPath string) error {
	cmd := exec.CommandContext(ctx, f.binary,
		"-hide_banner",
		"-loglevel", "error",
		"-y",
		"-i", sourcePath,
		outputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.Remove(outputPath)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("ffmpeg: %s", lastLine(msg))
		}
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return nil
}

// lastLine keeps error output readable: ffmpeg prints the decisive message
// on its final stderr line.
func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
