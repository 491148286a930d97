//go:build linux

// Package headless provides an offscreen OpenGL 4.1 core context backed by
// an EGL pbuffer, for rendering without a display server.
package headless

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/richinsley/gogfx/graphics"
)

/*
#cgo LDFLAGS: -lEGL
#include <EGL/egl.h>
#include <EGL/eglext.h>

// Device enumeration is an extension and resolved at runtime.
static PFNEGLQUERYDEVICESEXTPROC query_devices_fn;
static PFNEGLGETPLATFORMDISPLAYEXTPROC platform_display_fn;

static int load_device_ext(void) {
    query_devices_fn = (PFNEGLQUERYDEVICESEXTPROC)eglGetProcAddress("eglQueryDevicesEXT");
    platform_display_fn = (PFNEGLGETPLATFORMDISPLAYEXTPROC)eglGetProcAddress("eglGetPlatformDisplayEXT");
    return query_devices_fn != NULL && platform_display_fn != NULL;
}

static EGLint device_count(void) {
    EGLint n = 0;
    if (!query_devices_fn(0, NULL, &n)) {
        return 0;
    }
    return n;
}

static EGLDisplay device_display(EGLint index) {
    EGLDeviceEXT devices[16];
    EGLint n = 0;
    if (index >= 16 || !query_devices_fn(16, devices, &n) || index >= n) {
        return EGL_NO_DISPLAY;
    }
    return platform_display_fn(EGL_PLATFORM_DEVICE_EXT, devices[index], NULL);
}
*/
import "C"

// Headless is a graphics.Context whose default framebuffer is an EGL
// pbuffer of fixed size.
type Headless struct {
	display C.EGLDisplay
	context C.EGLContext
	surface C.EGLSurface
	width   int
	height  int
	start   time.Time
}

var _ graphics.Context = (*Headless)(nil)

// eglError describes the last EGL error of the calling thread.
func eglError(op string) error {
	return fmt.Errorf("%s failed: EGL error 0x%04x", op, int(C.eglGetError()))
}

func attribs(kv ...C.EGLint) []C.EGLint {
	return append(kv, C.EGL_NONE)
}

// openDisplay prefers a display from an enumerated device, which is what
// works inside GPU containers, and falls back to the default display.
func openDisplay() (C.EGLDisplay, error) {
	noDisplay := C.EGLDisplay(C.EGL_NO_DISPLAY)
	if C.load_device_ext() != 0 {
		n := int(C.device_count())
		log.Debug("enumerated EGL devices", "count", n)
		for i := 0; i < n; i++ {
			if d := C.device_display(C.EGLint(i)); d != noDisplay {
				log.Debug("using EGL device", "index", i)
				return d, nil
			}
		}
	}
	log.Warn("no EGL device display available, using EGL_DEFAULT_DISPLAY")
	d := C.eglGetDisplay(C.EGLNativeDisplayType(C.EGL_DEFAULT_DISPLAY))
	if d == noDisplay {
		return noDisplay, eglError("eglGetDisplay")
	}
	return d, nil
}

// NewHeadless creates a width x height pbuffer with a current OpenGL 4.1
// core context.
func NewHeadless(width, height int) (*Headless, error) {
	h := &Headless{
		display: C.EGLDisplay(C.EGL_NO_DISPLAY),
		context: C.EGLContext(C.EGL_NO_CONTEXT),
		surface: C.EGLSurface(C.EGL_NO_SURFACE),
		width:   width,
		height:  height,
	}
	if err := h.init(); err != nil {
		h.Shutdown()
		return nil, err
	}
	h.MakeCurrent()
	h.start = time.Now()
	return h, nil
}

func (h *Headless) init() error {
	display, err := openDisplay()
	if err != nil {
		return err
	}
	var major, minor C.EGLint
	if C.eglInitialize(display, &major, &minor) == C.EGL_FALSE {
		return eglError("eglInitialize")
	}
	h.display = display
	log.Debug("EGL initialized", "version", fmt.Sprintf("%d.%d", major, minor))

	if C.eglBindAPI(C.EGL_OPENGL_API) == C.EGL_FALSE {
		return eglError("eglBindAPI(EGL_OPENGL_API)")
	}

	configAttribs := attribs(
		C.EGL_SURFACE_TYPE, C.EGL_PBUFFER_BIT,
		C.EGL_RENDERABLE_TYPE, C.EGL_OPENGL_BIT,
		C.EGL_RED_SIZE, 8,
		C.EGL_GREEN_SIZE, 8,
		C.EGL_BLUE_SIZE, 8,
		C.EGL_ALPHA_SIZE, 8,
		C.EGL_DEPTH_SIZE, 24,
	)
	var config C.EGLConfig
	var n C.EGLint
	if C.eglChooseConfig(h.display, &configAttribs[0], &config, 1, &n) == C.EGL_FALSE {
		return eglError("eglChooseConfig")
	}
	if n == 0 {
		return fmt.Errorf("no EGL config supports an RGBA8 pbuffer with OpenGL")
	}

	surfaceAttribs := attribs(
		C.EGL_WIDTH, C.EGLint(h.width),
		C.EGL_HEIGHT, C.EGLint(h.height),
	)
	h.surface = C.eglCreatePbufferSurface(h.display, config, &surfaceAttribs[0])
	if h.surface == C.EGLSurface(C.EGL_NO_SURFACE) {
		return eglError("eglCreatePbufferSurface")
	}

	contextAttribs := attribs(
		C.EGL_CONTEXT_MAJOR_VERSION, 4,
		C.EGL_CONTEXT_MINOR_VERSION, 1,
		C.EGL_CONTEXT_OPENGL_PROFILE_MASK, C.EGL_CONTEXT_OPENGL_CORE_PROFILE_BIT,
	)
	h.context = C.eglCreateContext(h.display, config, C.EGLContext(C.EGL_NO_CONTEXT), &contextAttribs[0])
	if h.context == C.EGLContext(C.EGL_NO_CONTEXT) {
		return eglError("eglCreateContext")
	}
	return nil
}

func (h *Headless) MakeCurrent() {
	C.eglMakeCurrent(h.display, h.surface, h.surface, h.context)
}

// Shutdown releases the context, surface and display. It is safe to call
// on a partially initialized Headless and more than once.
func (h *Headless) Shutdown() {
	if h.display == C.EGLDisplay(C.EGL_NO_DISPLAY) {
		return
	}
	C.eglMakeCurrent(h.display, C.EGLSurface(C.EGL_NO_SURFACE), C.EGLSurface(C.EGL_NO_SURFACE), C.EGLContext(C.EGL_NO_CONTEXT))
	if h.context != C.EGLContext(C.EGL_NO_CONTEXT) {
		C.eglDestroyContext(h.display, h.context)
		h.context = C.EGLContext(C.EGL_NO_CONTEXT)
	}
	if h.surface != C.EGLSurface(C.EGL_NO_SURFACE) {
		C.eglDestroySurface(h.display, h.surface)
		h.surface = C.EGLSurface(C.EGL_NO_SURFACE)
	}
	C.eglTerminate(h.display)
	h.display = C.EGLDisplay(C.EGL_NO_DISPLAY)
}

// ShouldClose is always false; headless runs are bounded by frame count.
func (h *Headless) ShouldClose() bool { return false }

func (h *Headless) EndFrame() { C.eglSwapBuffers(h.display, h.surface) }

func (h *Headless) GetFramebufferSize() (int, int) { return h.width, h.height }

func (h *Headless) Time() float64 { return time.Since(h.start).Seconds() }

// GetMouseInput reports no pointer.
func (h *Headless) GetMouseInput() [4]float32 { return [4]float32{} }
