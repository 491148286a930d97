package gfx

import "fmt"

// Pipeline is a handle to a compiled vertex layout and fixed-function state
// bound to a Shader.
type Pipeline int

const noPipeline Pipeline = -1

type pipelineEntry struct {
	layout []AttributeLayout
	shader Shader
	params PipelineParams
}

// NewPipeline creates a pipeline with DefaultPipelineParams.
func (c *Context) NewPipeline(buffers []BufferLayout, attrs []VertexAttribute, shader Shader) (Pipeline, error) {
	return c.NewPipelineWithParams(buffers, attrs, shader, DefaultPipelineParams())
}

func (c *Context) NewPipelineWithParams(buffers []BufferLayout, attrs []VertexAttribute, shader Shader, params PipelineParams) (Pipeline, error) {
	s := c.shader(shader)
	layout, err := compileLayout(buffers, attrs, func(name string) int32 {
		return c.d.AttribLocation(s.program, s.mapped(name))
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create pipeline: %w", err)
	}
	c.pipelines = append(c.pipelines, pipelineEntry{
		layout: layout,
		shader: shader,
		params: params,
	})
	id := Pipeline(len(c.pipelines) - 1)
	c.logger.Debug("created pipeline", "pipeline", id, "shader", shader, "attributes", len(layout))
	return id, nil
}

// Layout returns a copy of the pipeline's attribute table.
func (c *Context) Layout(p Pipeline) []AttributeLayout {
	return append([]AttributeLayout(nil), c.pipeline(p).layout...)
}

func (c *Context) pipeline(p Pipeline) *pipelineEntry {
	if p < 0 || int(p) >= len(c.pipelines) {
		panic(fmt.Sprintf("gfx: invalid pipeline handle %d", p))
	}
	return &c.pipelines[p]
}

// ApplyPipeline makes p current and applies its fixed-function state.
func (c *Context) ApplyPipeline(p Pipeline) {
	e := c.pipeline(p)
	c.cache.pipeline = p
	c.cache.useProgram(c.shader(e.shader).program)
	c.cache.set(CapScissorTest, true)

	params := &e.params
	depth := params.DepthWrite || params.DepthTest != CompareAlways
	c.cache.set(CapDepthTest, depth)
	if depth {
		c.cache.setDepthFunc(params.DepthTest)
	}
	c.cache.setDepthMask(params.DepthWrite)
	c.cache.setPolygonOffset(params.DepthWriteOffset)
	c.cache.setCullFace(params.CullFace)
	c.cache.setFrontFace(params.FrontFaceOrder)
	c.cache.setColorMask(params.ColorWrite)
	c.cache.setBlend(params.ColorBlend)
}

func (c *Context) currentPipeline(op string) *pipelineEntry {
	if c.cache.pipeline == noPipeline {
		panic("gfx: " + op + " called before ApplyPipeline")
	}
	return c.pipeline(c.cache.pipeline)
}

// ApplyBindings binds the images, index buffer and vertex buffers of b for
// the current pipeline.
func (c *Context) ApplyBindings(b Bindings) error {
	p := c.currentPipeline("ApplyBindings")
	s := c.shader(p.shader)
	if len(b.Images) < len(s.images) {
		return fmt.Errorf("%w: shader samples %d, bindings have %d", ErrImageCountMismatch, len(s.images), len(b.Images))
	}
	for _, l := range p.layout {
		if l.BufferIndex >= len(b.VertexBuffers) {
			return fmt.Errorf("%w: %d", ErrMissingVertexBuffer, l.BufferIndex)
		}
	}

	for n, img := range s.images {
		c.d.ActiveTexture(n)
		c.d.BindTexture(b.Images[n].handle)
		c.d.Uniform1i(img.location, int32(n))
	}
	c.cache.bindBuffer(IndexBuffer, b.IndexBuffer.handle)
	c.cache.bindAttributes(p.layout, b.VertexBuffers)
	return nil
}

// ApplyUniforms uploads a uniform block laid out in the order the current
// shader declared its uniforms. Values are read in host byte order.
func (c *Context) ApplyUniforms(data []byte) error {
	p := c.currentPipeline("ApplyUniforms")
	s := c.shader(p.shader)
	for _, u := range s.uniforms {
		if end := u.offset + u.typ.Size(); end > len(data) {
			return fmt.Errorf("%w: %q needs bytes [%d, %d), block has %d", ErrUniformBlockTooSmall, u.name, u.offset, end, len(data))
		}
	}
	for _, u := range s.uniforms {
		v := c.floats(data[u.offset : u.offset+u.typ.Size()])
		c.d.Uniformf(u.location, u.typ, v)
	}
	return nil
}
