package gfx

import (
	"fmt"
	"image"
	"image/draw"
)

type Texture struct {
	handle uint32
	Width  int
	Height int
	Format TextureFormat
}

// RenderTextureParams describes empty texture storage. The zero value of
// Format, Wrap and Filter is RGBA8, clamped and linearly filtered.
type RenderTextureParams struct {
	Width  int
	Height int
	Format TextureFormat
	Wrap   TextureWrap
	Filter FilterMode
}

// NewTexture uploads RGBA8 pixels, four bytes per texel in row order.
func (c *Context) NewTexture(width, height int, pixels []byte) (Texture, error) {
	return c.newTexture(RenderTextureParams{Width: width, Height: height}, pixels)
}

// NewRenderTexture allocates storage suitable as a render pass attachment.
func (c *Context) NewRenderTexture(params RenderTextureParams) (Texture, error) {
	return c.newTexture(params, nil)
}

// NewTextureFromImage converts img to RGBA and uploads it.
func (c *Context) NewTextureFromImage(img image.Image) (Texture, error) {
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != 4*rgba.Rect.Dx() || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	}
	// Pix of a sub-image runs to the end of its parent.
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	return c.NewTexture(w, h, rgba.Pix[:4*w*h])
}

func (c *Context) newTexture(params RenderTextureParams, pixels []byte) (Texture, error) {
	if params.Width <= 0 || params.Height <= 0 {
		return Texture{}, fmt.Errorf("%w: %dx%d", ErrTextureSize, params.Width, params.Height)
	}
	if pixels != nil {
		if want := params.Width * params.Height * params.Format.BytesPerTexel(); len(pixels) != want {
			return Texture{}, fmt.Errorf("%w: got %d bytes, want %d", ErrTextureSize, len(pixels), want)
		}
	}
	t := Texture{
		handle: c.d.CreateTexture(),
		Width:  params.Width,
		Height: params.Height,
		Format: params.Format,
	}
	c.d.ActiveTexture(0)
	c.d.BindTexture(t.handle)
	c.d.TexImage2D(t.Width, t.Height, t.Format, pixels)
	c.d.TexWrap(params.Wrap)
	c.d.TexFilter(params.Filter)
	c.logger.Debug("created texture", "width", t.Width, "height", t.Height, "format", t.Format)
	return t, nil
}

// SetTextureFilter changes the minification and magnification filter of t.
func (c *Context) SetTextureFilter(t Texture, filter FilterMode) {
	c.d.ActiveTexture(0)
	c.d.BindTexture(t.handle)
	c.d.TexFilter(filter)
}
