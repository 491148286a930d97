package gfx

// Driver is the raw GPU call surface a Context renders through. Methods map
// one to one to OpenGL entry points and must be called on the thread that
// owns the graphics context. Object handles are opaque non-zero values; zero
// means "none".
type Driver interface {
	// CurrentFramebuffer returns the framebuffer bound when the Context is
	// created, the default surface for windowed contexts.
	CurrentFramebuffer() uint32
	CreateVertexArray() uint32
	BindVertexArray(vao uint32)

	CreateBuffer() uint32
	BindBuffer(typ BufferType, buf uint32)
	// BufferData allocates size bytes for the buffer bound to typ. A nil
	// data leaves the storage uninitialized.
	BufferData(typ BufferType, size int, data []byte, usage Usage)
	BufferSubData(typ BufferType, offset int, data []byte)

	CreateTexture() uint32
	ActiveTexture(unit int)
	BindTexture(tex uint32)
	// TexImage2D uploads pixels to the bound texture. A nil pixels
	// allocates empty storage.
	TexImage2D(width, height int, format TextureFormat, pixels []byte)
	TexWrap(wrap TextureWrap)
	TexFilter(filter FilterMode)

	CreateFramebuffer() uint32
	DeleteFramebuffer(fb uint32)
	BindFramebuffer(fb uint32)
	FramebufferTexture(attachment Attachment, tex uint32)
	FramebufferComplete() bool
	// ReadPixels reads RGBA8 pixels from the bound framebuffer.
	ReadPixels(x, y, width, height int, pixels []byte)

	CreateShader(stage ShaderStage) uint32
	// CompileShader compiles source into shader and reports the info log
	// on failure.
	CompileShader(shader uint32, source string) (log string, ok bool)
	DeleteShader(shader uint32)
	CreateProgram() uint32
	DeleteProgram(program uint32)
	AttachShader(program, shader uint32)
	LinkProgram(program uint32) (log string, ok bool)
	UseProgram(program uint32)
	// AttribLocation and UniformLocation return -1 for unknown names.
	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	// Uniformf uploads data, len(data) == typ.Size()/4, to a float uniform
	// of the current program.
	Uniformf(location int32, typ UniformType, data []float32)

	Enable(c Capability)
	Disable(c Capability)
	DepthFunc(f Comparison)
	DepthMask(write bool)
	BlendFunc(src, dst BlendFactor)
	BlendEquationSeparate(rgb, alpha Equation)
	CullFace(face CullFace)
	FrontFace(order FrontFaceOrder)
	PolygonOffset(factor, units float32)
	ColorMask(r, g, b, a bool)
	Viewport(x, y, width, height int)
	Scissor(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	ClearDepth(d float32)
	ClearStencil(s int32)
	Clear(mask ClearMask)

	VertexAttribPointer(location uint32, size int, typ ScalarType, normalized bool, stride, offset int)
	VertexAttribDivisor(location uint32, divisor int)
	EnableVertexAttribArray(location uint32)
	DisableVertexAttribArray(location uint32)

	// DrawElementsInstanced draws indexed triangles with 16-bit indices
	// starting at byteOffset into the bound index buffer.
	DrawElementsInstanced(count, byteOffset, instances int)
}

// Surface reports the size of the default framebuffer.
type Surface interface {
	GetFramebufferSize() (int, int)
}
