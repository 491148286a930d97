package gfx

import "fmt"

// RenderPass is a handle to an offscreen framebuffer.
type RenderPass int

type passEntry struct {
	framebuffer uint32
	color       Texture
}

// NewRenderPass creates a framebuffer rendering to color, and to depth when
// it is not nil. The framebuffer bound before the call is bound again on
// return.
func (c *Context) NewRenderPass(color Texture, depth *Texture) (RenderPass, error) {
	if color.Format != TextureFormatRGBA8 {
		return 0, fmt.Errorf("%w: color attachment must be RGBA8", ErrInvalidAttachment)
	}
	if depth != nil && depth.Format != TextureFormatDepth {
		return 0, fmt.Errorf("%w: depth attachment must use the depth format", ErrInvalidAttachment)
	}

	prev := c.framebuffer
	defer c.bindFramebuffer(prev)

	fb := c.d.CreateFramebuffer()
	c.bindFramebuffer(fb)
	c.d.FramebufferTexture(AttachColor, color.handle)
	if depth != nil {
		c.d.FramebufferTexture(AttachDepth, depth.handle)
	}
	if !c.d.FramebufferComplete() {
		c.d.DeleteFramebuffer(fb)
		return 0, fmt.Errorf("%w: %dx%d", ErrIncompleteFramebuffer, color.Width, color.Height)
	}

	c.passes = append(c.passes, passEntry{framebuffer: fb, color: color})
	id := RenderPass(len(c.passes) - 1)
	c.logger.Debug("created render pass", "pass", id, "width", color.Width, "height", color.Height, "depth", depth != nil)
	return id, nil
}

// Texture returns the color attachment of pass.
func (c *Context) Texture(pass RenderPass) Texture {
	return c.pass(pass).color
}

func (c *Context) pass(p RenderPass) *passEntry {
	if p < 0 || int(p) >= len(c.passes) {
		panic(fmt.Sprintf("gfx: invalid render pass handle %d", p))
	}
	return &c.passes[p]
}

func (c *Context) bindFramebuffer(fb uint32) {
	c.framebuffer = fb
	c.d.BindFramebuffer(fb)
}

// BeginDefaultPass starts rendering to the surface.
func (c *Context) BeginDefaultPass(action PassAction) {
	w, h := c.surface.GetFramebufferSize()
	c.beginPass(c.defaultFramebuffer, w, h, action)
}

// BeginPass starts rendering to an offscreen pass.
func (c *Context) BeginPass(pass RenderPass, action PassAction) {
	e := c.pass(pass)
	c.beginPass(e.framebuffer, e.color.Width, e.color.Height, action)
}

func (c *Context) beginPass(fb uint32, w, h int, action PassAction) {
	c.bindFramebuffer(fb)
	c.d.Viewport(0, 0, w, h)
	c.d.Scissor(0, 0, w, h)
	c.clear(action)
}

// clear writes through the color and depth masks, so both are opened for
// the attachments being cleared.
func (c *Context) clear(action PassAction) {
	var mask ClearMask
	if action.ClearColor {
		c.cache.setColorMask([4]bool{true, true, true, true})
		col := action.Color
		c.d.ClearColor(col[0], col[1], col[2], col[3])
		mask |= ClearColorBit
	}
	if action.ClearDepth {
		c.cache.setDepthMask(true)
		c.d.ClearDepth(action.Depth)
		mask |= ClearDepthBit
	}
	if action.ClearStencil {
		c.d.ClearStencil(action.Stencil)
		mask |= ClearStencilBit
	}
	if mask != 0 {
		c.d.Clear(mask)
	}
}

// EndRenderPass binds the default framebuffer and unbinds vertex and index
// buffers.
func (c *Context) EndRenderPass() {
	c.bindFramebuffer(c.defaultFramebuffer)
	c.cache.resetBuffers()
}

// ApplyScissorRect restricts rendering in the current pass to a rectangle
// with its origin at the bottom left.
func (c *Context) ApplyScissorRect(x, y, width, height int) {
	c.d.Scissor(x, y, width, height)
}

// ApplyViewport sets the viewport of the current pass.
func (c *Context) ApplyViewport(x, y, width, height int) {
	c.d.Viewport(x, y, width, height)
}

// Draw issues an instanced draw of indexCount indices starting at
// firstIndex of the bound index buffer.
func (c *Context) Draw(firstIndex, indexCount, instanceCount int) {
	c.d.DrawElementsInstanced(indexCount, 2*firstIndex, instanceCount)
}

// ReadPixels copies the RGBA8 contents of pass into pixels, which must hold
// Width*Height*4 bytes. Rows are bottom to top.
func (c *Context) ReadPixels(pass RenderPass, pixels []byte) error {
	e := c.pass(pass)
	if want := e.color.Width * e.color.Height * 4; len(pixels) < want {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrTextureSize, len(pixels), want)
	}
	prev := c.framebuffer
	defer c.bindFramebuffer(prev)
	c.bindFramebuffer(e.framebuffer)
	c.d.ReadPixels(0, 0, e.color.Width, e.color.Height, pixels)
	return nil
}
