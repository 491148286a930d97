package options

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"

	"github.com/richinsley/gogfx/gfx"
)

// MaxInstances bounds the number of quads the demo scene draws.
const MaxInstances = 64

type Options struct {
	Width      *int
	Height     *int
	Title      *string
	Headless   *bool
	Frames     *int
	FPS        *int
	Instances  *int
	Filter     *string
	Translate  *bool
	OutputFile *string // record frames to this file with ffmpeg when set
	FFMPEGPath *string
	Codec      *string
	LogLevel   *string
	Config     *string // TOML file with defaults for any flag not given
	Help       *bool
}

// Register defines every option on fs.
func Register(fs *flag.FlagSet) *Options {
	return &Options{
		Width:      fs.Int("width", 1280, "Width of the output"),
		Height:     fs.Int("height", 720, "Height of the output"),
		Title:      fs.String("title", "gogfx", "Window title"),
		Headless:   fs.Bool("headless", false, "Render through an EGL pbuffer instead of a window"),
		Frames:     fs.Int("frames", 0, "Number of frames to render, 0 renders until the window closes"),
		FPS:        fs.Int("fps", 60, "Frames per second for recording"),
		Instances:  fs.Int("instances", 4, "Number of instanced quads to draw"),
		Filter:     fs.String("filter", "linear", "Texture filter: linear or nearest"),
		Translate:  fs.Bool("translate", false, "Translate WebGL2 shaders with goshadertranslator before compiling"),
		OutputFile: fs.String("output", "", "Output file name for recording"),
		FFMPEGPath: fs.String("ffmpeg", "", "Path to ffmpeg executable"),
		Codec:      fs.String("codec", "h264", "Video codec for recording: h264 or hevc"),
		LogLevel:   fs.String("log-level", "info", "Log level: debug, info, warn or error"),
		Config:     fs.String("config", "", "TOML config file"),
		Help:       fs.Bool("help", false, "Show help message"),
	}
}

// Parse parses args into a fresh set of options. Values from the -config
// file apply to every option not given on the command line.
func Parse(fs *flag.FlagSet, args []string) (*Options, error) {
	o := Register(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *o.Help {
		return o, nil
	}
	if *o.Config != "" {
		if err := o.loadFile(fs, *o.Config); err != nil {
			return nil, err
		}
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

type fileConfig struct {
	Width      *int    `toml:"width"`
	Height     *int    `toml:"height"`
	Title      *string `toml:"title"`
	Headless   *bool   `toml:"headless"`
	Frames     *int    `toml:"frames"`
	FPS        *int    `toml:"fps"`
	Instances  *int    `toml:"instances"`
	Filter     *string `toml:"filter"`
	Translate  *bool   `toml:"translate"`
	OutputFile *string `toml:"output"`
	FFMPEGPath *string `toml:"ffmpeg"`
	Codec      *string `toml:"codec"`
	LogLevel   *string `toml:"log-level"`
}

func (o *Options) loadFile(fs *flag.FlagSet, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	var cfg fileConfig
	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("failed to parse config %s:%d:%d: %w", path, row, col, err)
		}
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	merge(set, "width", o.Width, cfg.Width)
	merge(set, "height", o.Height, cfg.Height)
	merge(set, "title", o.Title, cfg.Title)
	merge(set, "headless", o.Headless, cfg.Headless)
	merge(set, "frames", o.Frames, cfg.Frames)
	merge(set, "fps", o.FPS, cfg.FPS)
	merge(set, "instances", o.Instances, cfg.Instances)
	merge(set, "filter", o.Filter, cfg.Filter)
	merge(set, "translate", o.Translate, cfg.Translate)
	merge(set, "output", o.OutputFile, cfg.OutputFile)
	merge(set, "ffmpeg", o.FFMPEGPath, cfg.FFMPEGPath)
	merge(set, "codec", o.Codec, cfg.Codec)
	merge(set, "log-level", o.LogLevel, cfg.LogLevel)
	return nil
}

func merge[T any](set map[string]bool, name string, dst, v *T) {
	if v != nil && !set[name] {
		*dst = *v
	}
}

func (o *Options) Validate() error {
	if *o.Width <= 0 || *o.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", *o.Width, *o.Height)
	}
	if *o.FPS <= 0 {
		return fmt.Errorf("invalid fps %d", *o.FPS)
	}
	if *o.Frames < 0 {
		return fmt.Errorf("invalid frame count %d", *o.Frames)
	}
	if *o.Instances < 1 || *o.Instances > MaxInstances {
		return fmt.Errorf("instances must be between 1 and %d, got %d", MaxInstances, *o.Instances)
	}
	if _, err := o.TextureFilter(); err != nil {
		return err
	}
	switch *o.Codec {
	case "h264", "hevc":
	default:
		return fmt.Errorf("unknown codec %q", *o.Codec)
	}
	if _, err := log.ParseLevel(*o.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

func (o *Options) TextureFilter() (gfx.FilterMode, error) {
	switch *o.Filter {
	case "linear":
		return gfx.FilterLinear, nil
	case "nearest":
		return gfx.FilterNearest, nil
	default:
		return 0, fmt.Errorf("unknown texture filter %q", *o.Filter)
	}
}

// Recording reports whether frames should be piped to ffmpeg.
func (o *Options) Recording() bool {
	return *o.OutputFile != ""
}
