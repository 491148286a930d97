// Package glfwcontext implements graphics.Context with a GLFW window.
package glfwcontext

import (
	"runtime"

	"github.com/charmbracelet/log"
	glfw "github.com/go-gl/glfw/v3.3/glfw"
)

// Config describes the window to open.
type Config struct {
	Width  int
	Height int
	Title  string
	// Hidden windows still own a default framebuffer of the requested size.
	Hidden bool
}

// mouse is the pointer state maintained from GLFW callbacks, in window
// coordinates.
type mouse struct {
	x, y           float64
	clickX, clickY float64
	down           bool
}

// Context is a GLFW window with an OpenGL 4.1 core context.
type Context struct {
	window *glfw.Window
	mouse  mouse
	keys   map[glfw.Key]func()
	resize func(width, height int)
}

// New opens a window and its context. The context is not made current.
func New(cfg Config) (*Context, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.Resizable, boolHint(!cfg.Hidden))
	glfw.WindowHint(glfw.Visible, boolHint(!cfg.Hidden))

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	c := &Context{window: win, keys: make(map[glfw.Key]func())}

	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		if key == glfw.KeyEscape {
			w.SetShouldClose(true)
		}
		if f, ok := c.keys[key]; ok {
			f()
		}
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		c.mouse.x, c.mouse.y = x, y
	})
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		c.mouse.down = action == glfw.Press
		if c.mouse.down {
			c.mouse.clickX, c.mouse.clickY = c.mouse.x, c.mouse.y
		}
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if c.resize != nil {
			c.resize(width, height)
		}
	})

	fw, fh := win.GetFramebufferSize()
	log.Debug("window created", "title", cfg.Title, "framebuffer", [2]int{fw, fh}, "hidden", cfg.Hidden)
	return c, nil
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// OnKey runs f whenever key is pressed. Escape always closes the window.
func (c *Context) OnKey(key glfw.Key, f func()) {
	c.keys[key] = f
}

// OnResize runs f with the new framebuffer size.
func (c *Context) OnResize(f func(width, height int)) {
	c.resize = f
}

// GetMouseInput reports the cursor and the last click in framebuffer pixels
// with the origin at the bottom left. The click is negated while the left
// button is up.
func (c *Context) GetMouseInput() [4]float32 {
	fw, fh := c.window.GetFramebufferSize()
	ww, wh := c.window.GetSize()
	sx, sy := 1.0, 1.0
	if ww > 0 && wh > 0 {
		sx, sy = float64(fw)/float64(ww), float64(fh)/float64(wh)
	}
	flip := func(x, y float64) (float32, float32) {
		return float32(x * sx), float32(fh) - float32(y*sy)
	}
	mx, my := flip(c.mouse.x, c.mouse.y)
	cx, cy := flip(c.mouse.clickX, c.mouse.clickY)
	if !c.mouse.down {
		cx, cy = -cx, -cy
	}
	return [4]float32{mx, my, cx, cy}
}

func (c *Context) MakeCurrent() { c.window.MakeContextCurrent() }

func (c *Context) Shutdown() { c.window.Destroy() }

func (c *Context) ShouldClose() bool { return c.window.ShouldClose() }

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) { return c.window.GetFramebufferSize() }

func (c *Context) Time() float64 { return glfw.GetTime() }

// Init initializes GLFW on the calling thread, which must stay the main
// thread for the life of the program.
func Init() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Debug("GLFW initialized", "version", glfw.GetVersionString())
	return nil
}

// Terminate destroys remaining windows and shuts GLFW down.
func Terminate() {
	glfw.Terminate()
	log.Debug("GLFW terminated")
}
