// Package gfxtest provides a gfx.Driver that records calls instead of
// talking to a GPU.
package gfxtest

import (
	"fmt"
	"slices"

	"github.com/richinsley/gogfx/gfx"
)

// Call is one recorded driver call.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Recorder implements gfx.Driver. Attribute and uniform lookups are answered
// from Attribs and Uniforms, so tests declare the names a fake program
// exposes. Setting CompileLog or LinkLog makes the matching step fail with
// that log.
type Recorder struct {
	Calls []Call

	Framebuffer uint32
	Attribs     map[string]int32
	Uniforms    map[string]int32

	CompileLog      map[gfx.ShaderStage]string
	LinkLog         string
	IncompleteFBO   bool
	ShaderStages    map[uint32]gfx.ShaderStage
	CompiledSources map[gfx.ShaderStage]string

	next uint32
}

func NewRecorder() *Recorder {
	return &Recorder{
		Attribs:         make(map[string]int32),
		Uniforms:        make(map[string]int32),
		CompileLog:      make(map[gfx.ShaderStage]string),
		ShaderStages:    make(map[uint32]gfx.ShaderStage),
		CompiledSources: make(map[gfx.ShaderStage]string),
		next:            100,
	}
}

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) alloc(name string) uint32 {
	r.next++
	r.record(name, r.next)
	return r.next
}

// Reset forgets recorded calls.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

// Count returns how many calls named name were recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Find returns the recorded calls named name in order.
func (r *Recorder) Find(name string) []Call {
	var calls []Call
	for _, c := range r.Calls {
		if c.Name == name {
			calls = append(calls, c)
		}
	}
	return calls
}

// Names returns the name of every recorded call in order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		names[i] = c.Name
	}
	return names
}

func (r *Recorder) CurrentFramebuffer() uint32 {
	r.record("CurrentFramebuffer")
	return r.Framebuffer
}

func (r *Recorder) CreateVertexArray() uint32 { return r.alloc("CreateVertexArray") }
func (r *Recorder) BindVertexArray(vao uint32) { r.record("BindVertexArray", vao) }
func (r *Recorder) CreateBuffer() uint32 { return r.alloc("CreateBuffer") }

func (r *Recorder) BindBuffer(typ gfx.BufferType, buf uint32) { r.record("BindBuffer", typ, buf) }

func (r *Recorder) BufferData(typ gfx.BufferType, size int, data []byte, usage gfx.Usage) {
	r.record("BufferData", typ, size, data != nil, usage)
}

func (r *Recorder) BufferSubData(typ gfx.BufferType, offset int, data []byte) {
	r.record("BufferSubData", typ, offset, len(data))
}

func (r *Recorder) CreateTexture() uint32 { return r.alloc("CreateTexture") }
func (r *Recorder) ActiveTexture(unit int) { r.record("ActiveTexture", unit) }
func (r *Recorder) BindTexture(tex uint32) { r.record("BindTexture", tex) }
func (r *Recorder) TexWrap(w gfx.TextureWrap) { r.record("TexWrap", w) }
func (r *Recorder) TexFilter(f gfx.FilterMode) { r.record("TexFilter", f) }

func (r *Recorder) TexImage2D(width, height int, format gfx.TextureFormat, pixels []byte) {
	r.record("TexImage2D", width, height, format, len(pixels))
}

func (r *Recorder) CreateFramebuffer() uint32 { return r.alloc("CreateFramebuffer") }
func (r *Recorder) DeleteFramebuffer(fb uint32) { r.record("DeleteFramebuffer", fb) }
func (r *Recorder) BindFramebuffer(fb uint32) { r.record("BindFramebuffer", fb) }

func (r *Recorder) FramebufferTexture(a gfx.Attachment, tex uint32) {
	r.record("FramebufferTexture", a, tex)
}

func (r *Recorder) FramebufferComplete() bool {
	r.record("FramebufferComplete")
	return !r.IncompleteFBO
}

// ReadPixels fills pixels with 0xff.
func (r *Recorder) ReadPixels(x, y, width, height int, pixels []byte) {
	r.record("ReadPixels", x, y, width, height)
	for i := range pixels[:width*height*4] {
		pixels[i] = 0xff
	}
}

func (r *Recorder) CreateShader(stage gfx.ShaderStage) uint32 {
	id := r.alloc("CreateShader")
	r.ShaderStages[id] = stage
	return id
}

func (r *Recorder) CompileShader(shader uint32, source string) (string, bool) {
	stage := r.ShaderStages[shader]
	r.record("CompileShader", shader, stage)
	r.CompiledSources[stage] = source
	if l, ok := r.CompileLog[stage]; ok {
		return l, false
	}
	return "", true
}

func (r *Recorder) DeleteShader(shader uint32) { r.record("DeleteShader", shader) }
func (r *Recorder) CreateProgram() uint32 { return r.alloc("CreateProgram") }
func (r *Recorder) DeleteProgram(program uint32) { r.record("DeleteProgram", program) }
func (r *Recorder) AttachShader(program, shader uint32) { r.record("AttachShader", program, shader) }

func (r *Recorder) LinkProgram(program uint32) (string, bool) {
	r.record("LinkProgram", program)
	if r.LinkLog != "" {
		return r.LinkLog, false
	}
	return "", true
}

func (r *Recorder) UseProgram(program uint32) { r.record("UseProgram", program) }

func (r *Recorder) AttribLocation(program uint32, name string) int32 {
	r.record("AttribLocation", program, name)
	if loc, ok := r.Attribs[name]; ok {
		return loc
	}
	return -1
}

func (r *Recorder) UniformLocation(program uint32, name string) int32 {
	r.record("UniformLocation", program, name)
	if loc, ok := r.Uniforms[name]; ok {
		return loc
	}
	return -1
}

func (r *Recorder) Uniform1i(location int32, v int32) { r.record("Uniform1i", location, v) }

// Uniformf records a copy of data.
func (r *Recorder) Uniformf(location int32, typ gfx.UniformType, data []float32) {
	r.record("Uniformf", location, typ, slices.Clone(data))
}

func (r *Recorder) Enable(c gfx.Capability) { r.record("Enable", c) }
func (r *Recorder) Disable(c gfx.Capability) { r.record("Disable", c) }
func (r *Recorder) DepthFunc(f gfx.Comparison) { r.record("DepthFunc", f) }
func (r *Recorder) DepthMask(write bool) { r.record("DepthMask", write) }
func (r *Recorder) CullFace(f gfx.CullFace) { r.record("CullFace", f) }
func (r *Recorder) FrontFace(o gfx.FrontFaceOrder) { r.record("FrontFace", o) }
func (r *Recorder) ClearDepth(d float32) { r.record("ClearDepth", d) }
func (r *Recorder) ClearStencil(s int32) { r.record("ClearStencil", s) }
func (r *Recorder) Clear(mask gfx.ClearMask) { r.record("Clear", mask) }

func (r *Recorder) BlendFunc(src, dst gfx.BlendFactor) { r.record("BlendFunc", src, dst) }

func (r *Recorder) BlendEquationSeparate(rgb, alpha gfx.Equation) {
	r.record("BlendEquationSeparate", rgb, alpha)
}

func (r *Recorder) PolygonOffset(factor, units float32) { r.record("PolygonOffset", factor, units) }
func (r *Recorder) ColorMask(cr, cg, cb, ca bool) { r.record("ColorMask", cr, cg, cb, ca) }
func (r *Recorder) Viewport(x, y, width, height int) { r.record("Viewport", x, y, width, height) }
func (r *Recorder) Scissor(x, y, width, height int) { r.record("Scissor", x, y, width, height) }
func (r *Recorder) ClearColor(cr, cg, cb, ca float32) { r.record("ClearColor", cr, cg, cb, ca) }

func (r *Recorder) VertexAttribPointer(location uint32, size int, typ gfx.ScalarType, normalized bool, stride, offset int) {
	r.record("VertexAttribPointer", location, size, typ, normalized, stride, offset)
}

func (r *Recorder) VertexAttribDivisor(location uint32, divisor int) {
	r.record("VertexAttribDivisor", location, divisor)
}

func (r *Recorder) EnableVertexAttribArray(location uint32) {
	r.record("EnableVertexAttribArray", location)
}

func (r *Recorder) DisableVertexAttribArray(location uint32) {
	r.record("DisableVertexAttribArray", location)
}

func (r *Recorder) DrawElementsInstanced(count, byteOffset, instances int) {
	r.record("DrawElementsInstanced", count, byteOffset, instances)
}

// Surface is a fixed-size gfx.Surface.
type Surface struct {
	Width, Height int
}

func (s Surface) GetFramebufferSize() (int, int) {
	return s.Width, s.Height
}

var _ gfx.Driver = (*Recorder)(nil)
