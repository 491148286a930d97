package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/richinsley/gogfx/capture"
	"github.com/richinsley/gogfx/gfx"
	"github.com/richinsley/gogfx/gldriver"
	"github.com/richinsley/gogfx/glfwcontext"
	"github.com/richinsley/gogfx/graphics"
	"github.com/richinsley/gogfx/headless"
	"github.com/richinsley/gogfx/options"
	"github.com/richinsley/gogfx/renderer"
	"github.com/richinsley/gogfx/translator"
)

// defaultSeconds is how long headless runs last when -frames is not given.
const defaultSeconds = 10

func init() {
	runtime.LockOSThread()
}

func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "gogfx",
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

func openContext(opts *options.Options, logger *log.Logger) (graphics.Context, func(), error) {
	if *opts.Headless {
		h, err := headless.NewHeadless(*opts.Width, *opts.Height)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create headless context: %w", err)
		}
		logger.Info("using headless EGL context")
		return h, h.Shutdown, nil
	}
	if err := glfwcontext.Init(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	// The window stays hidden while recording.
	win, err := glfwcontext.New(glfwcontext.Config{
		Width:  *opts.Width,
		Height: *opts.Height,
		Title:  *opts.Title,
		Hidden: opts.Recording(),
	})
	if err != nil {
		glfwcontext.Terminate()
		return nil, nil, fmt.Errorf("failed to create window: %w", err)
	}
	return win, func() {
		win.Shutdown()
		glfwcontext.Terminate()
	}, nil
}

func run(opts *options.Options, logger *log.Logger) error {
	ctx, closeContext, err := openContext(opts, logger)
	if err != nil {
		return err
	}
	defer closeContext()
	ctx.MakeCurrent()

	d, err := gldriver.New()
	if err != nil {
		return err
	}
	logger.Info("OpenGL initialized", "version", d.Version())

	filter, err := opts.TextureFilter()
	if err != nil {
		return err
	}
	cfg := renderer.Config{Scene: renderer.SceneConfig{
		Width:     *opts.Width,
		Height:    *opts.Height,
		Instances: *opts.Instances,
		Filter:    filter,
		WebGL:     *opts.Translate,
	}}
	if *opts.Translate {
		tr, err := translator.New(false)
		if err != nil {
			return err
		}
		cfg.GFX = append(cfg.GFX, gfx.WithTranslator(tr))
	}

	r, err := renderer.NewRenderer(ctx, d, cfg, logger)
	if err != nil {
		return err
	}
	if win, ok := ctx.(*glfwcontext.Context); ok {
		win.OnResize(r.Resize)
	}

	frames := *opts.Frames
	if !opts.Recording() && !*opts.Headless {
		logger.Info("starting interactive render loop")
		return r.Run(frames)
	}
	if frames == 0 {
		frames = defaultSeconds * *opts.FPS
	}
	if !opts.Recording() {
		return r.RunOffscreen(frames, *opts.FPS, nil)
	}

	rec, err := capture.Start(capture.Config{
		Width:      *opts.Width,
		Height:     *opts.Height,
		FPS:        *opts.FPS,
		OutputFile: *opts.OutputFile,
		FFMPEGPath: *opts.FFMPEGPath,
		Codec:      *opts.Codec,
	}, logger)
	if err != nil {
		return err
	}
	renderErr := r.RunOffscreen(frames, *opts.FPS, rec)
	if err := rec.Close(); err != nil && renderErr == nil {
		renderErr = err
	}
	return renderErr
}

func main() {
	opts, err := options.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal("invalid options", "err", err)
	}
	if *opts.Help {
		fmt.Println("gogfx instanced quad renderer")
		flag.PrintDefaults()
		return
	}

	logger := newLogger(*opts.LogLevel)
	log.SetDefault(logger)
	if err := run(opts, logger); err != nil {
		logger.Fatal("rendering failed", "err", err)
	}
}
