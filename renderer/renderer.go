package renderer

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/richinsley/gogfx/gfx"
	"github.com/richinsley/gogfx/graphics"
)

// FrameWriter consumes RGBA frames read back from the offscreen pass.
type FrameWriter interface {
	WriteFrame(pixels []byte) error
}

// Config selects what the renderer draws.
type Config struct {
	Scene SceneConfig
	// GFX options passed to gfx.NewContext.
	GFX []gfx.Option
}

// Renderer drives a Scene on a graphics context.
type Renderer struct {
	context graphics.Context
	gfx     *gfx.Context
	scene   *Scene
	logger  *log.Logger
	frames  int
}

// NewRenderer makes ctx current and builds the scene on driver d.
func NewRenderer(ctx graphics.Context, d gfx.Driver, cfg Config, logger *log.Logger) (*Renderer, error) {
	ctx.MakeCurrent()
	opts := append([]gfx.Option{gfx.WithLogger(logger.WithPrefix("gfx"))}, cfg.GFX...)
	r := &Renderer{
		context: ctx,
		gfx:     gfx.NewContext(d, ctx, opts...),
		logger:  logger,
	}
	scene, err := NewScene(r.gfx, cfg.Scene)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize scene: %w", err)
	}
	r.scene = scene
	logger.Debug("scene ready", "size", fmt.Sprintf("%dx%d", cfg.Scene.Width, cfg.Scene.Height), "instances", cfg.Scene.Instances)
	return r, nil
}

// Resize updates the viewport after the window framebuffer changes size.
func (r *Renderer) Resize(width, height int) {
	r.gfx.Resize(width, height)
}

// Frames returns the number of frames rendered so far.
func (r *Renderer) Frames() int {
	return r.frames
}

// RenderFrame draws the scene at time t and presents it.
func (r *Renderer) RenderFrame(t float64) error {
	if err := r.scene.Draw(t); err != nil {
		return fmt.Errorf("frame %d: %w", r.frames, err)
	}
	if err := r.scene.Present(); err != nil {
		return fmt.Errorf("frame %d: %w", r.frames, err)
	}
	r.frames++
	return nil
}

// Run renders until the context asks to close, or for maxFrames frames when
// maxFrames is positive. Dragging with the left button pans the view.
func (r *Renderer) Run(maxFrames int) error {
	start := r.context.Time()
	for !r.context.ShouldClose() {
		if maxFrames > 0 && r.frames >= maxFrames {
			break
		}
		r.scene.SetPan(r.dragOffset())
		if err := r.RenderFrame(r.context.Time() - start); err != nil {
			return err
		}
		r.context.EndFrame()
	}
	r.logger.Info("render loop finished", "frames", r.frames)
	return nil
}

// dragOffset converts the mouse state into a pan in normalized device units.
// Click coordinates are negative while the button is up.
func (r *Renderer) dragOffset() (float32, float32) {
	m := r.context.GetMouseInput()
	if m[2] <= 0 && m[3] <= 0 {
		return 0, 0
	}
	w, h := r.context.GetFramebufferSize()
	if w == 0 || h == 0 {
		return 0, 0
	}
	return 2 * (m[0] - m[2]) / float32(w), 2 * (m[1] - m[3]) / float32(h)
}

// RunOffscreen renders frames at fixed steps of 1/fps seconds and reads each
// one back into w. A nil w renders without readback.
func (r *Renderer) RunOffscreen(frames, fps int, w FrameWriter) error {
	if frames <= 0 || fps <= 0 {
		return errors.New("offscreen rendering needs a positive frame count and rate")
	}
	var pixels []byte
	if w != nil {
		out := r.gfx.Texture(r.scene.Output())
		pixels = make([]byte, out.Width*out.Height*4)
	}
	step := 1 / float64(fps)
	for i := 0; i < frames; i++ {
		if err := r.RenderFrame(float64(i) * step); err != nil {
			return err
		}
		if w != nil {
			if err := r.gfx.ReadPixels(r.scene.Output(), pixels); err != nil {
				return fmt.Errorf("failed to read frame %d: %w", i, err)
			}
			if err := w.WriteFrame(pixels); err != nil {
				return err
			}
		}
		r.context.EndFrame()
		if (i+1)%fps == 0 {
			r.logger.Debug("rendered", "frames", i+1, "of", frames)
		}
	}
	r.logger.Info("offscreen rendering finished", "frames", frames)
	return nil
}
