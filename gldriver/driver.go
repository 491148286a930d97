// Package gldriver implements gfx.Driver with OpenGL 4.1 core.
package gldriver

import (
	"fmt"
	"strings"
	"sync"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/richinsley/gogfx/gfx"
)

var (
	glInitOnce sync.Once
	glInitErr  error
)

// Driver issues gl calls directly. A graphics context must be current on
// the calling thread.
type Driver struct{}

// New loads the OpenGL entry points for the current context.
func New() (*Driver, error) {
	glInitOnce.Do(func() {
		glInitErr = gl.Init()
	})
	if glInitErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", glInitErr)
	}
	return &Driver{}, nil
}

// Version returns the GL_VERSION string of the current context.
func (d *Driver) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (d *Driver) CurrentFramebuffer() uint32 {
	var fb int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &fb)
	return uint32(fb)
}

func (d *Driver) CreateVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (d *Driver) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (d *Driver) CreateBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (d *Driver) BindBuffer(typ gfx.BufferType, buf uint32) {
	gl.BindBuffer(bufferTarget(typ), buf)
}

func (d *Driver) BufferData(typ gfx.BufferType, size int, data []byte, usage gfx.Usage) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(bufferTarget(typ), size, ptr, bufferUsage(usage))
}

func (d *Driver) BufferSubData(typ gfx.BufferType, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	gl.BufferSubData(bufferTarget(typ), offset, len(data), gl.Ptr(data))
}

func (d *Driver) CreateTexture() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	return tex
}

func (d *Driver) ActiveTexture(unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
}

func (d *Driver) BindTexture(tex uint32) {
	gl.BindTexture(gl.TEXTURE_2D, tex)
}

func (d *Driver) TexImage2D(width, height int, format gfx.TextureFormat, pixels []byte) {
	internal, pixelFormat, pixelType := textureFormat(format)
	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = gl.Ptr(pixels)
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(width), int32(height), 0, pixelFormat, pixelType, ptr)
}

func (d *Driver) TexWrap(wrap gfx.TextureWrap) {
	w := textureWrap(wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, w)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, w)
}

func (d *Driver) TexFilter(filter gfx.FilterMode) {
	f := int32(gl.LINEAR)
	if filter == gfx.FilterNearest {
		f = gl.NEAREST
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, f)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, f)
}

func (d *Driver) CreateFramebuffer() uint32 {
	var fb uint32
	gl.GenFramebuffers(1, &fb)
	return fb
}

func (d *Driver) DeleteFramebuffer(fb uint32) {
	gl.DeleteFramebuffers(1, &fb)
}

func (d *Driver) BindFramebuffer(fb uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb)
}

func (d *Driver) FramebufferTexture(attachment gfx.Attachment, tex uint32) {
	a := uint32(gl.COLOR_ATTACHMENT0)
	if attachment == gfx.AttachDepth {
		a = gl.DEPTH_ATTACHMENT
	}
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, a, gl.TEXTURE_2D, tex, 0)
}

func (d *Driver) FramebufferComplete() bool {
	return gl.CheckFramebufferStatus(gl.FRAMEBUFFER) == gl.FRAMEBUFFER_COMPLETE
}

func (d *Driver) ReadPixels(x, y, width, height int, pixels []byte) {
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(int32(x), int32(y), int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
}

func (d *Driver) CreateShader(stage gfx.ShaderStage) uint32 {
	switch stage {
	case gfx.StageVertex:
		return gl.CreateShader(gl.VERTEX_SHADER)
	case gfx.StageFragment:
		return gl.CreateShader(gl.FRAGMENT_SHADER)
	default:
		panic("unknown shader stage")
	}
}

func (d *Driver) CompileShader(shader uint32, source string) (string, bool) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		return strings.TrimRight(logText, "\x00"), false
	}
	return "", true
}

func (d *Driver) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *Driver) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *Driver) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *Driver) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (d *Driver) LinkProgram(program uint32) (string, bool) {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		return strings.TrimRight(logText, "\x00"), false
	}
	return "", true
}

func (d *Driver) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *Driver) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (d *Driver) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Driver) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (d *Driver) Uniformf(location int32, typ gfx.UniformType, data []float32) {
	switch typ {
	case gfx.UniformFloat1:
		gl.Uniform1fv(location, 1, &data[0])
	case gfx.UniformFloat2:
		gl.Uniform2fv(location, 1, &data[0])
	case gfx.UniformFloat3:
		gl.Uniform3fv(location, 1, &data[0])
	case gfx.UniformFloat4:
		gl.Uniform4fv(location, 1, &data[0])
	case gfx.UniformMat4:
		gl.UniformMatrix4fv(location, 1, false, &data[0])
	default:
		panic("unknown uniform type")
	}
}

func (d *Driver) Enable(c gfx.Capability) {
	gl.Enable(capability(c))
}

func (d *Driver) Disable(c gfx.Capability) {
	gl.Disable(capability(c))
}

func (d *Driver) DepthFunc(f gfx.Comparison) {
	gl.DepthFunc(comparison(f))
}

func (d *Driver) DepthMask(write bool) {
	gl.DepthMask(write)
}

func (d *Driver) BlendFunc(src, dst gfx.BlendFactor) {
	gl.BlendFunc(blendFactor(src), blendFactor(dst))
}

func (d *Driver) BlendEquationSeparate(rgb, alpha gfx.Equation) {
	gl.BlendEquationSeparate(equation(rgb), equation(alpha))
}

func (d *Driver) CullFace(face gfx.CullFace) {
	switch face {
	case gfx.CullFront:
		gl.CullFace(gl.FRONT)
	case gfx.CullBack:
		gl.CullFace(gl.BACK)
	}
}

func (d *Driver) FrontFace(order gfx.FrontFaceOrder) {
	if order == gfx.FrontFaceClockwise {
		gl.FrontFace(gl.CW)
	} else {
		gl.FrontFace(gl.CCW)
	}
}

func (d *Driver) PolygonOffset(factor, units float32) {
	gl.PolygonOffset(factor, units)
}

func (d *Driver) ColorMask(r, g, b, a bool) {
	gl.ColorMask(r, g, b, a)
}

func (d *Driver) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (d *Driver) Scissor(x, y, width, height int) {
	gl.Scissor(int32(x), int32(y), int32(width), int32(height))
}

func (d *Driver) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *Driver) ClearDepth(v float32) {
	gl.ClearDepthf(v)
}

func (d *Driver) ClearStencil(s int32) {
	gl.ClearStencil(s)
}

func (d *Driver) Clear(mask gfx.ClearMask) {
	var bits uint32
	if mask&gfx.ClearColorBit != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&gfx.ClearDepthBit != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	if mask&gfx.ClearStencilBit != 0 {
		bits |= gl.STENCIL_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (d *Driver) VertexAttribPointer(location uint32, size int, typ gfx.ScalarType, normalized bool, stride, offset int) {
	t := uint32(gl.FLOAT)
	if typ == gfx.ScalarUnsignedByte {
		t = gl.UNSIGNED_BYTE
	}
	gl.VertexAttribPointer(location, int32(size), t, normalized, int32(stride), gl.PtrOffset(offset))
}

func (d *Driver) VertexAttribDivisor(location uint32, divisor int) {
	gl.VertexAttribDivisor(location, uint32(divisor))
}

func (d *Driver) EnableVertexAttribArray(location uint32) {
	gl.EnableVertexAttribArray(location)
}

func (d *Driver) DisableVertexAttribArray(location uint32) {
	gl.DisableVertexAttribArray(location)
}

func (d *Driver) DrawElementsInstanced(count, byteOffset, instances int) {
	gl.DrawElementsInstanced(gl.TRIANGLES, int32(count), gl.UNSIGNED_SHORT, gl.PtrOffset(byteOffset), int32(instances))
}

var _ gfx.Driver = (*Driver)(nil)
