package gfx

// MaxVertexAttributes is the number of vertex attribute locations tracked
// by a Context. Pipelines may not resolve attributes at or above it.
const MaxVertexAttributes = 16

type BufferType uint8

const (
	VertexBuffer BufferType = iota
	IndexBuffer
)

func (t BufferType) String() string {
	switch t {
	case VertexBuffer:
		return "vertex"
	case IndexBuffer:
		return "index"
	default:
		return "unknown"
	}
}

// Usage describes how often a buffer's contents are expected to change.
type Usage uint8

const (
	// UsageImmutable buffers are filled once at creation.
	UsageImmutable Usage = iota
	UsageDynamic
	// UsageStream buffers are pre-sized and refilled every frame.
	UsageStream
)

func (u Usage) String() string {
	switch u {
	case UsageImmutable:
		return "immutable"
	case UsageDynamic:
		return "dynamic"
	case UsageStream:
		return "stream"
	default:
		return "unknown"
	}
}

type TextureFormat uint8

const (
	// TextureFormatRGBA8 stores four unsigned bytes per texel.
	TextureFormatRGBA8 TextureFormat = iota
	// TextureFormatDepth stores one unsigned 16-bit value per texel.
	TextureFormatDepth
)

func (f TextureFormat) String() string {
	switch f {
	case TextureFormatRGBA8:
		return "rgba8"
	case TextureFormatDepth:
		return "depth"
	default:
		return "unknown"
	}
}

// BytesPerTexel reports the upload size of a single texel.
func (f TextureFormat) BytesPerTexel() int {
	switch f {
	case TextureFormatRGBA8:
		return 4
	case TextureFormatDepth:
		return 2
	default:
		panic("unknown texture format")
	}
}

type TextureWrap uint8

const (
	WrapClamp TextureWrap = iota
	WrapRepeat
	WrapMirror
	WrapMirrorClamp
)

type FilterMode uint8

const (
	FilterLinear FilterMode = iota
	FilterNearest
)

// ScalarType is the component type of a vertex attribute as seen by the
// driver.
type ScalarType uint8

const (
	ScalarFloat ScalarType = iota
	ScalarUnsignedByte
)

type VertexFormat uint8

const (
	Float1 VertexFormat = iota
	Float2
	Float3
	Float4
	Byte1
	Byte2
	Byte3
	Byte4
	Mat4
)

// Components returns the number of scalar components in the format. Mat4
// reports 16; it is split into four Float4 slots when a pipeline is built.
func (f VertexFormat) Components() int {
	switch f {
	case Float1, Byte1:
		return 1
	case Float2, Byte2:
		return 2
	case Float3, Byte3:
		return 3
	case Float4, Byte4:
		return 4
	case Mat4:
		return 16
	default:
		panic("unknown vertex format")
	}
}

// ByteLen returns the number of bytes one value of the format occupies in a
// vertex buffer.
func (f VertexFormat) ByteLen() int {
	switch f {
	case Float1, Float2, Float3, Float4, Mat4:
		return 4 * f.Components()
	case Byte1, Byte2, Byte3, Byte4:
		return f.Components()
	default:
		panic("unknown vertex format")
	}
}

func (f VertexFormat) scalarType() ScalarType {
	switch f {
	case Byte1, Byte2, Byte3, Byte4:
		return ScalarUnsignedByte
	default:
		return ScalarFloat
	}
}

type VertexStep uint8

const (
	StepPerVertex VertexStep = iota
	StepPerInstance
)

// BufferLayout describes one vertex buffer slot of a pipeline. A zero Stride
// is computed from the attributes assigned to the slot. A zero StepRate is
// treated as 1.
type BufferLayout struct {
	Stride   int
	Step     VertexStep
	StepRate int
}

type VertexAttribute struct {
	Name        string
	Format      VertexFormat
	BufferIndex int
}

type UniformType uint8

const (
	UniformFloat1 UniformType = iota
	UniformFloat2
	UniformFloat3
	UniformFloat4
	UniformMat4
)

// Size returns the byte size of the uniform inside a uniform block.
func (t UniformType) Size() int {
	switch t {
	case UniformFloat1:
		return 4
	case UniformFloat2:
		return 8
	case UniformFloat3:
		return 12
	case UniformFloat4:
		return 16
	case UniformMat4:
		return 64
	default:
		panic("unknown uniform type")
	}
}

func (t UniformType) String() string {
	switch t {
	case UniformFloat1:
		return "float1"
	case UniformFloat2:
		return "float2"
	case UniformFloat3:
		return "float3"
	case UniformFloat4:
		return "float4"
	case UniformMat4:
		return "mat4"
	default:
		return "unknown"
	}
}

type UniformDesc struct {
	Name string
	Type UniformType
}

// UniformBlockLayout lists the uniforms of a shader in block order.
type UniformBlockLayout struct {
	Uniforms []UniformDesc
}

// ShaderMeta declares the sampler and uniform names a shader program is
// expected to expose.
type ShaderMeta struct {
	Images   []string
	Uniforms UniformBlockLayout
}

type ShaderStage uint8

const (
	StageVertex ShaderStage = iota
	StageFragment
	// StageProgram identifies link-time failures.
	StageProgram
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageProgram:
		return "program"
	default:
		return "unknown"
	}
}

type CullFace uint8

const (
	CullNothing CullFace = iota
	CullFront
	CullBack
)

type FrontFaceOrder uint8

const (
	FrontFaceCounterClockwise FrontFaceOrder = iota
	FrontFaceClockwise
)

type Comparison uint8

const (
	CompareNever Comparison = iota
	CompareLess
	CompareLessOrEqual
	CompareGreater
	CompareGreaterOrEqual
	CompareEqual
	CompareNotEqual
	CompareAlways
)

type Equation uint8

const (
	EquationAdd Equation = iota
	EquationSubtract
	EquationReverseSubtract
)

type BlendFactor uint8

const (
	BlendFactorZero BlendFactor = iota
	BlendFactorOne
	BlendFactorSrcColor
	BlendFactorSrcAlpha
	BlendFactorDstColor
	BlendFactorDstAlpha
	BlendFactorOneMinusSrcColor
	BlendFactorOneMinusSrcAlpha
	BlendFactorOneMinusDstColor
	BlendFactorOneMinusDstAlpha
)

// BlendState is applied with the same equation for color and alpha.
type BlendState struct {
	Equation Equation
	Src      BlendFactor
	Dst      BlendFactor
}

// DepthBias configures polygon offset for depth writes.
type DepthBias struct {
	Factor float32
	Units  float32
}

type PipelineParams struct {
	CullFace         CullFace
	FrontFaceOrder   FrontFaceOrder
	DepthTest        Comparison
	DepthWrite       bool
	DepthWriteOffset *DepthBias
	// ColorBlend disables blending when nil.
	ColorBlend *BlendState
	ColorWrite [4]bool
}

// DefaultPipelineParams returns parameters with culling, depth writes and
// blending disabled, the depth test always passing and all color channels
// writable.
func DefaultPipelineParams() PipelineParams {
	return PipelineParams{
		CullFace:       CullNothing,
		FrontFaceOrder: FrontFaceCounterClockwise,
		DepthTest:      CompareAlways,
		ColorWrite:     [4]bool{true, true, true, true},
	}
}

// PassAction selects which attachments are cleared when a pass begins.
// The zero value clears nothing.
type PassAction struct {
	ClearColor   bool
	Color        [4]float32
	ClearDepth   bool
	Depth        float32
	ClearStencil bool
	Stencil      int32
}

// PassNothing leaves every attachment untouched.
var PassNothing = PassAction{}

// ClearColor clears color to (r, g, b, a) and depth to 1.
func ClearColor(r, g, b, a float32) PassAction {
	return PassAction{
		ClearColor: true,
		Color:      [4]float32{r, g, b, a},
		ClearDepth: true,
		Depth:      1,
	}
}

// DefaultPassAction clears color to transparent black and depth to 1.
func DefaultPassAction() PassAction {
	return ClearColor(0, 0, 0, 0)
}

type Capability uint8

const (
	CapBlend Capability = iota
	CapDepthTest
	CapScissorTest
	CapCullFace
	CapPolygonOffsetFill

	capCount
)

type ClearMask uint8

const (
	ClearColorBit ClearMask = 1 << iota
	ClearDepthBit
	ClearStencilBit
)

type Attachment uint8

const (
	AttachColor Attachment = iota
	AttachDepth
)

// Bindings are the resources consumed by a draw. VertexBuffers is indexed by
// BufferLayout slot, Images by sampler declaration order.
type Bindings struct {
	VertexBuffers []Buffer
	IndexBuffer   Buffer
	Images        []Texture
}
