package gfx

// stateCache records the last value submitted for each piece of driver
// state so that redundant calls can be skipped. Its initial values are the
// OpenGL defaults of a freshly created context.
type stateCache struct {
	d Driver

	vertexBuffer uint32
	indexBuffer  uint32

	// pipeline is the current pipeline, or noPipeline.
	pipeline Pipeline
	program  uint32

	caps          [capCount]bool
	depthFunc     Comparison
	depthMask     bool
	cullFace      CullFace
	frontFace     FrontFaceOrder
	colorMask     [4]bool
	polygonOffset DepthBias

	blendOn bool
	blend   BlendState

	attributes [MaxVertexAttributes]*cachedAttribute
}

type cachedAttribute struct {
	layout AttributeLayout
	vbuf   uint32
}

func newStateCache(d Driver) stateCache {
	return stateCache{
		d:         d,
		pipeline:  noPipeline,
		depthFunc: CompareLess,
		depthMask: true,
		cullFace:  CullNothing,
		frontFace: FrontFaceCounterClockwise,
		colorMask: [4]bool{true, true, true, true},
	}
}

func (c *stateCache) boundBuffer(typ BufferType) uint32 {
	switch typ {
	case VertexBuffer:
		return c.vertexBuffer
	case IndexBuffer:
		return c.indexBuffer
	default:
		panic("unknown buffer type")
	}
}

func (c *stateCache) bindBuffer(typ BufferType, buf uint32) {
	switch typ {
	case VertexBuffer:
		if c.vertexBuffer == buf {
			return
		}
		c.vertexBuffer = buf
	case IndexBuffer:
		if c.indexBuffer == buf {
			return
		}
		c.indexBuffer = buf
	default:
		panic("unknown buffer type")
	}
	c.d.BindBuffer(typ, buf)
}

// saveBuffer remembers the buffer bound to typ. The returned function
// rebinds it and is meant to be deferred.
func (c *stateCache) saveBuffer(typ BufferType) (restore func()) {
	saved := c.boundBuffer(typ)
	return func() {
		c.bindBuffer(typ, saved)
	}
}

func (c *stateCache) useProgram(p uint32) {
	if c.program == p {
		return
	}
	c.program = p
	c.d.UseProgram(p)
}

func (c *stateCache) set(f Capability, enable bool) {
	if c.caps[f] == enable {
		return
	}
	c.caps[f] = enable
	if enable {
		c.d.Enable(f)
	} else {
		c.d.Disable(f)
	}
}

func (c *stateCache) setDepthFunc(f Comparison) {
	if c.depthFunc == f {
		return
	}
	c.depthFunc = f
	c.d.DepthFunc(f)
}

func (c *stateCache) setDepthMask(write bool) {
	if c.depthMask == write {
		return
	}
	c.depthMask = write
	c.d.DepthMask(write)
}

func (c *stateCache) setCullFace(f CullFace) {
	if f == CullNothing {
		c.set(CapCullFace, false)
		return
	}
	c.set(CapCullFace, true)
	if c.cullFace == f {
		return
	}
	c.cullFace = f
	c.d.CullFace(f)
}

func (c *stateCache) setFrontFace(o FrontFaceOrder) {
	if c.frontFace == o {
		return
	}
	c.frontFace = o
	c.d.FrontFace(o)
}

func (c *stateCache) setColorMask(m [4]bool) {
	if c.colorMask == m {
		return
	}
	c.colorMask = m
	c.d.ColorMask(m[0], m[1], m[2], m[3])
}

func (c *stateCache) setPolygonOffset(bias *DepthBias) {
	if bias == nil {
		c.set(CapPolygonOffsetFill, false)
		return
	}
	c.set(CapPolygonOffsetFill, true)
	if c.polygonOffset == *bias {
		return
	}
	c.polygonOffset = *bias
	c.d.PolygonOffset(bias.Factor, bias.Units)
}

// setBlend toggles the blend capability only on transitions between
// blending and not blending.
func (c *stateCache) setBlend(b *BlendState) {
	if b == nil {
		if c.blendOn {
			c.blendOn = false
			c.caps[CapBlend] = false
			c.d.Disable(CapBlend)
		}
		return
	}
	if c.blendOn && c.blend == *b {
		return
	}
	if !c.blendOn {
		c.blendOn = true
		c.caps[CapBlend] = true
		c.d.Enable(CapBlend)
	}
	c.blend = *b
	c.d.BlendFunc(b.Src, b.Dst)
	c.d.BlendEquationSeparate(b.Equation, b.Equation)
}

// bindAttributes points every attribute location used by layouts at its
// vertex buffer and disables locations the layouts no longer use. Slots
// whose layout and buffer are unchanged are left alone.
func (c *stateCache) bindAttributes(layouts []AttributeLayout, vbufs []Buffer) {
	for i := 0; i < MaxVertexAttributes; i++ {
		cached := c.attributes[i]
		if i >= len(layouts) {
			if cached != nil {
				c.d.DisableVertexAttribArray(uint32(i))
				c.attributes[i] = nil
			}
			continue
		}
		l := layouts[i]
		vb := vbufs[l.BufferIndex].handle
		if cached != nil && cached.layout == l && cached.vbuf == vb {
			continue
		}
		c.bindBuffer(VertexBuffer, vb)
		c.d.VertexAttribPointer(uint32(l.Location), l.Components, l.Type, false, l.Stride, l.Offset)
		c.d.VertexAttribDivisor(uint32(l.Location), l.Divisor)
		c.d.EnableVertexAttribArray(uint32(l.Location))
		c.attributes[i] = &cachedAttribute{layout: l, vbuf: vb}
	}
}

// resetBuffers forgets the bound buffers, binding "none" through the cache.
func (c *stateCache) resetBuffers() {
	c.bindBuffer(VertexBuffer, 0)
	c.bindBuffer(IndexBuffer, 0)
}
