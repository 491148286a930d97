// Package capture encodes rendered frames to a video file by piping raw
// RGBA pixels into an ffmpeg process.
package capture

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

var ErrFrameSize = errors.New("frame does not match recorder size")

type Config struct {
	Width      int
	Height     int
	FPS        int
	OutputFile string
	FFMPEGPath string
	// Codec is "h264" or "hevc".
	Codec string
}

// FrameSize is the byte size of one RGBA frame.
func (c Config) FrameSize() int {
	return c.Width * c.Height * 4
}

func (c Config) inputArgs() ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", c.Width, c.Height),
		"r":       c.FPS,
	}
}

// outputArgs picks a hardware encoder for goos where one is commonly
// available. Frames arrive bottom row first and are flipped.
func (c Config) outputArgs(goos string) ffmpeg.KwArgs {
	out := ffmpeg.KwArgs{
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
		"b:v":     "25M",
	}
	hevc := c.Codec == "hevc"
	switch goos {
	case "darwin":
		if hevc {
			out["c:v"] = "hevc_videotoolbox"
		} else {
			out["c:v"] = "h264_videotoolbox"
		}
	default:
		if hevc {
			out["c:v"] = "libx265"
		} else {
			out["c:v"] = "libx264"
		}
	}
	if hevc && strings.HasSuffix(c.OutputFile, ".mp4") {
		out["tag:v"] = "hvc1"
	}
	return out
}

func (c Config) stream(input io.Reader) *ffmpeg.Stream {
	s := ffmpeg.Input("pipe:", c.inputArgs()).
		Output(c.OutputFile, c.outputArgs(runtime.GOOS)).
		OverWriteOutput().WithInput(input).ErrorToStdOut()
	if c.FFMPEGPath != "" {
		s = s.SetFfmpegPath(c.FFMPEGPath)
	}
	return s
}

// Recorder feeds frames to a running ffmpeg.
type Recorder struct {
	cfg    Config
	pw     *io.PipeWriter
	errc   chan error
	frames int
	logger *log.Logger
}

// Start launches ffmpeg writing to cfg.OutputFile.
func Start(cfg Config, logger *log.Logger) (*Recorder, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.FPS <= 0 {
		return nil, fmt.Errorf("invalid recording format %dx%d@%d", cfg.Width, cfg.Height, cfg.FPS)
	}
	if cfg.OutputFile == "" {
		return nil, errors.New("no output file")
	}
	pr, pw := io.Pipe()
	r := &Recorder{
		cfg:    cfg,
		pw:     pw,
		errc:   make(chan error, 1),
		logger: logger,
	}
	cmd := cfg.stream(pr)
	go func() {
		err := cmd.Run()
		// Unblock WriteFrame if ffmpeg exits early.
		pr.CloseWithError(io.ErrClosedPipe)
		r.errc <- err
	}()
	logger.Info("recording", "output", cfg.OutputFile, "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height), "fps", cfg.FPS)
	return r, nil
}

// WriteFrame blocks until ffmpeg has consumed pixels.
func (r *Recorder) WriteFrame(pixels []byte) error {
	if len(pixels) != r.cfg.FrameSize() {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrFrameSize, len(pixels), r.cfg.FrameSize())
	}
	if _, err := r.pw.Write(pixels); err != nil {
		return fmt.Errorf("failed to write frame %d to ffmpeg: %w", r.frames, err)
	}
	r.frames++
	return nil
}

// Frames returns the number of frames written.
func (r *Recorder) Frames() int {
	return r.frames
}

// Close ends the input stream and waits for ffmpeg to finish.
func (r *Recorder) Close() error {
	r.pw.Close()
	if err := <-r.errc; err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	r.logger.Info("recording finished", "output", r.cfg.OutputFile, "frames", r.frames)
	return nil
}
