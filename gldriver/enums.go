package gldriver

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/richinsley/gogfx/gfx"
)

func bufferTarget(typ gfx.BufferType) uint32 {
	switch typ {
	case gfx.VertexBuffer:
		return gl.ARRAY_BUFFER
	case gfx.IndexBuffer:
		return gl.ELEMENT_ARRAY_BUFFER
	default:
		panic("unknown buffer type")
	}
}

func bufferUsage(u gfx.Usage) uint32 {
	switch u {
	case gfx.UsageImmutable:
		return gl.STATIC_DRAW
	case gfx.UsageDynamic:
		return gl.DYNAMIC_DRAW
	case gfx.UsageStream:
		return gl.STREAM_DRAW
	default:
		panic("unknown buffer usage")
	}
}

// textureFormat returns the internal format, pixel format and pixel type
// used to allocate and upload a texture.
func textureFormat(f gfx.TextureFormat) (int32, uint32, uint32) {
	switch f {
	case gfx.TextureFormatRGBA8:
		return gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE
	case gfx.TextureFormatDepth:
		return gl.DEPTH_COMPONENT16, gl.DEPTH_COMPONENT, gl.UNSIGNED_SHORT
	default:
		panic("unknown texture format")
	}
}

// GL_MIRROR_CLAMP_TO_EDGE is core in 4.4 and exported by drivers through
// ARB_texture_mirror_clamp_to_edge; the 4.1 bindings do not define it.
const mirrorClampToEdge = 0x8743

func textureWrap(w gfx.TextureWrap) int32 {
	switch w {
	case gfx.WrapClamp:
		return gl.CLAMP_TO_EDGE
	case gfx.WrapRepeat:
		return gl.REPEAT
	case gfx.WrapMirror:
		return gl.MIRRORED_REPEAT
	case gfx.WrapMirrorClamp:
		return mirrorClampToEdge
	default:
		panic("unknown texture wrap")
	}
}

func capability(c gfx.Capability) uint32 {
	switch c {
	case gfx.CapBlend:
		return gl.BLEND
	case gfx.CapDepthTest:
		return gl.DEPTH_TEST
	case gfx.CapScissorTest:
		return gl.SCISSOR_TEST
	case gfx.CapCullFace:
		return gl.CULL_FACE
	case gfx.CapPolygonOffsetFill:
		return gl.POLYGON_OFFSET_FILL
	default:
		panic("unknown capability")
	}
}

func comparison(c gfx.Comparison) uint32 {
	switch c {
	case gfx.CompareNever:
		return gl.NEVER
	case gfx.CompareLess:
		return gl.LESS
	case gfx.CompareLessOrEqual:
		return gl.LEQUAL
	case gfx.CompareGreater:
		return gl.GREATER
	case gfx.CompareGreaterOrEqual:
		return gl.GEQUAL
	case gfx.CompareEqual:
		return gl.EQUAL
	case gfx.CompareNotEqual:
		return gl.NOTEQUAL
	case gfx.CompareAlways:
		return gl.ALWAYS
	default:
		panic("unknown comparison")
	}
}

func equation(e gfx.Equation) uint32 {
	switch e {
	case gfx.EquationAdd:
		return gl.FUNC_ADD
	case gfx.EquationSubtract:
		return gl.FUNC_SUBTRACT
	case gfx.EquationReverseSubtract:
		return gl.FUNC_REVERSE_SUBTRACT
	default:
		panic("unknown blend equation")
	}
}

func blendFactor(f gfx.BlendFactor) uint32 {
	switch f {
	case gfx.BlendFactorZero:
		return gl.ZERO
	case gfx.BlendFactorOne:
		return gl.ONE
	case gfx.BlendFactorSrcColor:
		return gl.SRC_COLOR
	case gfx.BlendFactorSrcAlpha:
		return gl.SRC_ALPHA
	case gfx.BlendFactorDstColor:
		return gl.DST_COLOR
	case gfx.BlendFactorDstAlpha:
		return gl.DST_ALPHA
	case gfx.BlendFactorOneMinusSrcColor:
		return gl.ONE_MINUS_SRC_COLOR
	case gfx.BlendFactorOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case gfx.BlendFactorOneMinusDstColor:
		return gl.ONE_MINUS_DST_COLOR
	case gfx.BlendFactorOneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	default:
		panic("unknown blend factor")
	}
}
