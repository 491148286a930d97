//go:build !linux

// Package headless provides an offscreen OpenGL context backed by an EGL
// pbuffer. It is only available on linux.
package headless

import (
	"fmt"

	"github.com/richinsley/gogfx/graphics"
)

func NewHeadless(width, height int) (graphics.Context, error) {
	return nil, fmt.Errorf("egl headless rendering is not supported on this platform")
}
