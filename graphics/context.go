// Package graphics defines the surfaces the renderer draws on.
package graphics

import "github.com/richinsley/gogfx/gfx"

// Context owns a drawable surface and its OpenGL context. It is a
// gfx.Surface, so a gfx.Context can target its default framebuffer.
type Context interface {
	gfx.Surface
	MakeCurrent()
	// Shutdown releases the surface. The context is unusable afterwards.
	Shutdown()
	ShouldClose() bool
	// EndFrame presents the default framebuffer and pumps events.
	EndFrame()
	// Time is in seconds on a clock that only moves forward.
	Time() float64
	// GetMouseInput returns the current mouse state: x, y, clickX, clickY
	GetMouseInput() [4]float32
}
