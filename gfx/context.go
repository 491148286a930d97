// Package gfx is a small rendering context over an OpenGL-style driver. It
// hands out integer handles for shaders, pipelines and render passes, and
// caches driver state so that repeated binds of the same state cost no
// driver calls.
//
// A Context is not safe for concurrent use; every method must be called on
// the thread that owns the graphics context.
package gfx

import (
	"encoding/binary"
	"math"

	"github.com/charmbracelet/log"
)

type Context struct {
	d          Driver
	surface    Surface
	logger     *log.Logger
	translator ShaderTranslator

	cache              stateCache
	defaultFramebuffer uint32
	framebuffer        uint32

	shaders   []shaderEntry
	pipelines []pipelineEntry
	passes    []passEntry

	// scratch holds uniform data converted for upload.
	scratch []float32
}

type Option func(*Context)

// WithLogger replaces the logger used for resource creation messages.
func WithLogger(l *log.Logger) Option {
	return func(c *Context) {
		c.logger = l
	}
}

// WithTranslator runs all shader sources through t before compiling them.
func WithTranslator(t ShaderTranslator) Option {
	return func(c *Context) {
		c.translator = t
	}
}

// NewContext wraps d. The framebuffer bound at the time of the call becomes
// the default framebuffer, sized by s.
func NewContext(d Driver, s Surface, opts ...Option) *Context {
	c := &Context{
		d:       d,
		surface: s,
		logger:  defaultLogger(),
		cache:   newStateCache(d),
	}
	for _, o := range opts {
		o(c)
	}
	c.defaultFramebuffer = d.CurrentFramebuffer()
	c.framebuffer = c.defaultFramebuffer
	d.BindVertexArray(d.CreateVertexArray())
	w, h := s.GetFramebufferSize()
	c.logger.Debug("context ready", "framebuffer", c.defaultFramebuffer, "width", w, "height", h)
	return c
}

// ScreenSize returns the size of the default framebuffer in pixels.
func (c *Context) ScreenSize() (int, int) {
	return c.surface.GetFramebufferSize()
}

// Resize updates the viewport after the surface changed size.
func (c *Context) Resize(width, height int) {
	c.d.Viewport(0, 0, width, height)
}

func (c *Context) floats(b []byte) []float32 {
	n := len(b) / 4
	if cap(c.scratch) < n {
		c.scratch = make([]float32, n)
	}
	v := c.scratch[:n]
	for i := range v {
		v[i] = math.Float32frombits(binary.NativeEndian.Uint32(b[4*i:]))
	}
	return v
}
