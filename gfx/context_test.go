package gfx_test

import (
	"errors"
	"image"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/gogfx/gfx"
	"github.com/richinsley/gogfx/gfx/gfxtest"
)

const (
	defaultFB = 7
	mvpLoc    = 3
	texLoc    = 4
)

func newTestContext(t *testing.T, opts ...gfx.Option) (*gfx.Context, *gfxtest.Recorder) {
	t.Helper()
	r := gfxtest.NewRecorder()
	r.Framebuffer = defaultFB
	r.Attribs["in_pos"] = 0
	r.Attribs["in_uv"] = 1
	r.Attribs["in_model"] = 2
	r.Uniforms["mvp"] = mvpLoc
	r.Uniforms["tex"] = texLoc
	opts = append([]gfx.Option{gfx.WithLogger(log.New(io.Discard))}, opts...)
	ctx := gfx.NewContext(r, gfxtest.Surface{Width: 640, Height: 480}, opts...)
	return ctx, r
}

var quadMeta = gfx.ShaderMeta{
	Uniforms: gfx.UniformBlockLayout{Uniforms: []gfx.UniformDesc{
		{Name: "mvp", Type: gfx.UniformMat4},
	}},
}

type quad struct {
	shader   gfx.Shader
	pipeline gfx.Pipeline
	bindings gfx.Bindings
}

func newQuad(t *testing.T, ctx *gfx.Context, params gfx.PipelineParams) quad {
	t.Helper()
	vertices := []float32{
		-1, -1, 0, 0,
		1, -1, 1, 0,
		1, 1, 1, 1,
		-1, 1, 0, 1,
	}
	indices := []uint16{0, 1, 2, 0, 2, 3}

	shader, err := ctx.NewShader("vs", "fs", quadMeta)
	require.NoError(t, err)
	pipeline, err := ctx.NewPipelineWithParams(
		[]gfx.BufferLayout{{Stride: 16}},
		[]gfx.VertexAttribute{
			{Name: "in_pos", Format: gfx.Float2},
			{Name: "in_uv", Format: gfx.Float2},
		},
		shader, params)
	require.NoError(t, err)

	return quad{
		shader:   shader,
		pipeline: pipeline,
		bindings: gfx.Bindings{
			VertexBuffers: []gfx.Buffer{ctx.NewImmutableBuffer(gfx.VertexBuffer, gfx.SliceBytes(vertices))},
			IndexBuffer:   ctx.NewImmutableBuffer(gfx.IndexBuffer, gfx.SliceBytes(indices)),
		},
	}
}

func TestEndToEndQuad(t *testing.T) {
	ctx, r := newTestContext(t)
	q := newQuad(t, ctx, gfx.DefaultPipelineParams())

	ident := mgl32.Ident4()
	ctx.BeginDefaultPass(gfx.ClearColor(0, 0, 0, 1))
	ctx.ApplyPipeline(q.pipeline)
	require.NoError(t, ctx.ApplyBindings(q.bindings))
	require.NoError(t, ctx.ApplyUniforms(gfx.SliceBytes(ident[:])))
	ctx.Draw(0, 6, 1)
	ctx.EndRenderPass()

	draws := r.Find("DrawElementsInstanced")
	require.Len(t, draws, 1)
	assert.Equal(t, []any{6, 0, 1}, draws[0].Args)

	uniforms := r.Find("Uniformf")
	require.Len(t, uniforms, 1)
	assert.Equal(t, []any{int32(mvpLoc), gfx.UniformMat4, ident[:]}, uniforms[0].Args)

	ptrs := r.Find("VertexAttribPointer")
	require.Len(t, ptrs, 2)
	assert.Equal(t, []any{uint32(0), 2, gfx.ScalarFloat, false, 16, 0}, ptrs[0].Args)
	assert.Equal(t, []any{uint32(1), 2, gfx.ScalarFloat, false, 16, 8}, ptrs[1].Args)
}

func TestDrawIndexOffset(t *testing.T) {
	ctx, r := newTestContext(t)
	ctx.Draw(3, 3, 4)
	assert.Equal(t, []any{3, 6, 4}, r.Find("DrawElementsInstanced")[0].Args)
}

func TestRepeatedApplyIsCached(t *testing.T) {
	ctx, r := newTestContext(t)
	q := newQuad(t, ctx, gfx.DefaultPipelineParams())

	ctx.ApplyPipeline(q.pipeline)
	require.NoError(t, ctx.ApplyBindings(q.bindings))

	r.Reset()
	ctx.ApplyPipeline(q.pipeline)
	require.NoError(t, ctx.ApplyBindings(q.bindings))
	for _, name := range []string{
		"BindBuffer", "VertexAttribPointer", "VertexAttribDivisor",
		"EnableVertexAttribArray", "DisableVertexAttribArray",
		"UseProgram", "Enable", "Disable",
	} {
		assert.Zero(t, r.Count(name), name)
	}
}

func TestChangedVertexBufferRebinds(t *testing.T) {
	ctx, r := newTestContext(t)
	q := newQuad(t, ctx, gfx.DefaultPipelineParams())
	ctx.ApplyPipeline(q.pipeline)
	require.NoError(t, ctx.ApplyBindings(q.bindings))

	other := ctx.NewImmutableBuffer(gfx.VertexBuffer, make([]byte, 64))
	r.Reset()
	b := q.bindings
	b.VertexBuffers = []gfx.Buffer{other}
	require.NoError(t, ctx.ApplyBindings(b))

	assert.Equal(t, 1, r.Count("BindBuffer"))
	assert.Equal(t, 2, r.Count("VertexAttribPointer"))
	assert.Equal(t, 2, r.Count("EnableVertexAttribArray"))
}

func TestUnusedAttributesAreDisabled(t *testing.T) {
	ctx, r := newTestContext(t)
	q := newQuad(t, ctx, gfx.DefaultPipelineParams())
	ctx.ApplyPipeline(q.pipeline)
	require.NoError(t, ctx.ApplyBindings(q.bindings))

	posOnly, err := ctx.NewPipeline(
		[]gfx.BufferLayout{{Stride: 16}},
		[]gfx.VertexAttribute{{Name: "in_pos", Format: gfx.Float2}},
		q.shader)
	require.NoError(t, err)

	r.Reset()
	ctx.ApplyPipeline(posOnly)
	require.NoError(t, ctx.ApplyBindings(q.bindings))
	assert.Zero(t, r.Count("VertexAttribPointer"))
	disabled := r.Find("DisableVertexAttribArray")
	require.Len(t, disabled, 1)
	assert.Equal(t, []any{uint32(1)}, disabled[0].Args)
}

func TestInstancedMat4Attributes(t *testing.T) {
	ctx, r := newTestContext(t)
	r.Attribs["in_model"] = 1
	shader, err := ctx.NewShader("vs", "fs", quadMeta)
	require.NoError(t, err)
	pipeline, err := ctx.NewPipeline(
		[]gfx.BufferLayout{{}, {Step: gfx.StepPerInstance}},
		[]gfx.VertexAttribute{
			{Name: "in_pos", Format: gfx.Float2, BufferIndex: 0},
			{Name: "in_model", Format: gfx.Mat4, BufferIndex: 1},
		},
		shader)
	require.NoError(t, err)
	require.Len(t, ctx.Layout(pipeline), 5)

	vb := ctx.NewImmutableBuffer(gfx.VertexBuffer, make([]byte, 32))
	instances := ctx.NewStreamBuffer(gfx.VertexBuffer, 64*8)
	ib := ctx.NewImmutableBuffer(gfx.IndexBuffer, make([]byte, 12))

	r.Reset()
	ctx.ApplyPipeline(pipeline)
	require.NoError(t, ctx.ApplyBindings(gfx.Bindings{
		VertexBuffers: []gfx.Buffer{vb, instances},
		IndexBuffer:   ib,
	}))

	ptrs := r.Find("VertexAttribPointer")
	require.Len(t, ptrs, 5)
	assert.Equal(t, []any{uint32(0), 2, gfx.ScalarFloat, false, 8, 0}, ptrs[0].Args)
	for col := 0; col < 4; col++ {
		assert.Equal(t, []any{uint32(1 + col), 4, gfx.ScalarFloat, false, 64, 16 * col}, ptrs[1+col].Args)
	}
	divisors := r.Find("VertexAttribDivisor")
	assert.Equal(t, []any{uint32(0), 0}, divisors[0].Args)
	for _, d := range divisors[1:] {
		assert.Equal(t, 1, d.Args[1])
	}
	// index buffer, then the two vertex buffers
	assert.Equal(t, 3, r.Count("BindBuffer"))
}

func TestBlendToggles(t *testing.T) {
	ctx, r := newTestContext(t)
	opaque := newQuad(t, ctx, gfx.DefaultPipelineParams())
	params := gfx.DefaultPipelineParams()
	params.ColorBlend = &gfx.BlendState{
		Equation: gfx.EquationAdd,
		Src:      gfx.BlendFactorSrcAlpha,
		Dst:      gfx.BlendFactorOneMinusSrcAlpha,
	}
	blended := newQuad(t, ctx, params)

	countCap := func(name string, c gfx.Capability) int {
		n := 0
		for _, call := range r.Find(name) {
			if call.Args[0] == c {
				n++
			}
		}
		return n
	}

	callIndex := func(name string, args ...any) int {
		for i, call := range r.Calls {
			if call.Name == name && (len(args) == 0 || assert.ObjectsAreEqual(args, call.Args)) {
				return i
			}
		}
		return -1
	}

	r.Reset()
	ctx.ApplyPipeline(blended.pipeline)
	assert.Equal(t, 1, countCap("Enable", gfx.CapBlend))
	assert.Equal(t, []any{gfx.BlendFactorSrcAlpha, gfx.BlendFactorOneMinusSrcAlpha}, r.Find("BlendFunc")[0].Args)
	assert.Equal(t, []any{gfx.EquationAdd, gfx.EquationAdd}, r.Find("BlendEquationSeparate")[0].Args)
	enable := callIndex("Enable", gfx.CapBlend)
	require.GreaterOrEqual(t, enable, 0)
	assert.Less(t, enable, callIndex("BlendFunc"))
	assert.Less(t, enable, callIndex("BlendEquationSeparate"))

	r.Reset()
	ctx.ApplyPipeline(blended.pipeline)
	assert.Zero(t, countCap("Enable", gfx.CapBlend))
	assert.Zero(t, r.Count("BlendFunc"))

	// Switching to different factors while blending keeps the capability.
	params.ColorBlend = &gfx.BlendState{
		Equation: gfx.EquationSubtract,
		Src:      gfx.BlendFactorOne,
		Dst:      gfx.BlendFactorOne,
	}
	additive := newQuad(t, ctx, params)
	r.Reset()
	ctx.ApplyPipeline(additive.pipeline)
	assert.Zero(t, countCap("Enable", gfx.CapBlend))
	assert.Zero(t, countCap("Disable", gfx.CapBlend))
	assert.Equal(t, []gfxtest.Call{{Name: "BlendFunc", Args: []any{gfx.BlendFactorOne, gfx.BlendFactorOne}}}, r.Find("BlendFunc"))
	assert.Equal(t, []any{gfx.EquationSubtract, gfx.EquationSubtract}, r.Find("BlendEquationSeparate")[0].Args)

	r.Reset()
	ctx.ApplyPipeline(opaque.pipeline)
	assert.Equal(t, 1, countCap("Disable", gfx.CapBlend))

	r.Reset()
	ctx.ApplyPipeline(opaque.pipeline)
	assert.Zero(t, countCap("Disable", gfx.CapBlend))
}

func TestApplyPipelineDepthState(t *testing.T) {
	ctx, r := newTestContext(t)
	params := gfx.DefaultPipelineParams()
	params.DepthTest = gfx.CompareLessOrEqual
	params.DepthWrite = true
	params.CullFace = gfx.CullBack
	q := newQuad(t, ctx, params)

	r.Reset()
	ctx.ApplyPipeline(q.pipeline)
	assert.Contains(t, r.Calls, gfxtest.Call{Name: "Enable", Args: []any{gfx.CapDepthTest}})
	assert.Contains(t, r.Calls, gfxtest.Call{Name: "DepthFunc", Args: []any{gfx.CompareLessOrEqual}})
	assert.Contains(t, r.Calls, gfxtest.Call{Name: "Enable", Args: []any{gfx.CapCullFace}})
	assert.Contains(t, r.Calls, gfxtest.Call{Name: "CullFace", Args: []any{gfx.CullBack}})
	assert.Zero(t, r.Count("DepthMask"))
}

func TestBufferCapacity(t *testing.T) {
	ctx, _ := newTestContext(t)
	b := ctx.NewStreamBuffer(gfx.VertexBuffer, 32)

	assert.NoError(t, ctx.UpdateBuffer(b, make([]byte, 32)))
	assert.NoError(t, ctx.UpdateBuffer(b, make([]byte, 8)))
	err := ctx.UpdateBuffer(b, make([]byte, 33))
	assert.ErrorIs(t, err, gfx.ErrBufferOverflow)

	imm := ctx.NewImmutableBuffer(gfx.IndexBuffer, make([]byte, 12))
	assert.NoError(t, ctx.UpdateBuffer(imm, make([]byte, 12)))
	assert.ErrorIs(t, ctx.UpdateBuffer(imm, make([]byte, 13)), gfx.ErrBufferOverflow)
}

func TestBufferUploadRestoresBinding(t *testing.T) {
	ctx, r := newTestContext(t)
	q := newQuad(t, ctx, gfx.DefaultPipelineParams())
	ctx.ApplyPipeline(q.pipeline)
	require.NoError(t, ctx.ApplyBindings(q.bindings))
	vbuf := r.Find("CreateBuffer")[0].Args[0]

	r.Reset()
	stream := ctx.NewStreamBuffer(gfx.VertexBuffer, 64)
	require.NoError(t, ctx.UpdateBuffer(stream, make([]byte, 64)))

	binds := r.Find("BindBuffer")
	require.NotEmpty(t, binds)
	assert.Equal(t, []any{gfx.VertexBuffer, vbuf}, binds[len(binds)-1].Args)

	r.Reset()
	assert.Error(t, ctx.UpdateBuffer(stream, make([]byte, 65)))
	assert.Zero(t, r.Count("BindBuffer"))
}

func TestShaderOffsetsAndImages(t *testing.T) {
	ctx, r := newTestContext(t)
	r.Uniforms["time"] = 5
	r.Uniforms["tint"] = 6
	meta := gfx.ShaderMeta{
		Images: []string{"tex"},
		Uniforms: gfx.UniformBlockLayout{Uniforms: []gfx.UniformDesc{
			{Name: "mvp", Type: gfx.UniformMat4},
			{Name: "time", Type: gfx.UniformFloat1},
			{Name: "tint", Type: gfx.UniformFloat4},
		}},
	}
	shader, err := ctx.NewShader("vs", "fs", meta)
	require.NoError(t, err)
	pipeline, err := ctx.NewPipeline(
		[]gfx.BufferLayout{{}},
		[]gfx.VertexAttribute{{Name: "in_pos", Format: gfx.Float2}},
		shader)
	require.NoError(t, err)

	tex, err := ctx.NewTexture(1, 1, []byte{1, 2, 3, 4})
	require.NoError(t, err)
	vb := ctx.NewImmutableBuffer(gfx.VertexBuffer, make([]byte, 32))
	ib := ctx.NewImmutableBuffer(gfx.IndexBuffer, make([]byte, 12))

	ctx.ApplyPipeline(pipeline)
	err = ctx.ApplyBindings(gfx.Bindings{VertexBuffers: []gfx.Buffer{vb}, IndexBuffer: ib})
	assert.ErrorIs(t, err, gfx.ErrImageCountMismatch)

	r.Reset()
	require.NoError(t, ctx.ApplyBindings(gfx.Bindings{VertexBuffers: []gfx.Buffer{vb}, IndexBuffer: ib, Images: []gfx.Texture{tex}}))
	assert.Equal(t, []any{int32(texLoc), int32(0)}, r.Find("Uniform1i")[0].Args)

	block := gfx.NewUniformBlock(meta.Uniforms)
	require.NoError(t, block.SetFloat("time", 2.5))
	require.NoError(t, block.SetVec4("tint", mgl32.Vec4{1, 0.5, 0.25, 1}))
	assert.Len(t, block.Bytes(), 64+4+16)

	r.Reset()
	require.NoError(t, ctx.ApplyUniforms(block.Bytes()))
	calls := r.Find("Uniformf")
	require.Len(t, calls, 3)
	assert.Equal(t, []any{int32(5), gfx.UniformFloat1, []float32{2.5}}, calls[1].Args)
	assert.Equal(t, []any{int32(6), gfx.UniformFloat4, []float32{1, 0.5, 0.25, 1}}, calls[2].Args)

	err = ctx.ApplyUniforms(block.Bytes()[:70])
	assert.ErrorIs(t, err, gfx.ErrUniformBlockTooSmall)
}

func TestShaderErrors(t *testing.T) {
	t.Run("compile", func(t *testing.T) {
		ctx, r := newTestContext(t)
		r.CompileLog[gfx.StageFragment] = "0:3: syntax error"
		_, err := ctx.NewShader("vs", "fs", quadMeta)

		var serr *gfx.ShaderError
		require.True(t, errors.As(err, &serr))
		assert.Equal(t, gfx.StageFragment, serr.Stage)
		assert.Equal(t, "0:3: syntax error", serr.Log)
		assert.ErrorIs(t, err, gfx.ErrShaderCompile)
		assert.Zero(t, r.Count("CreateProgram"))
		assert.Equal(t, 2, r.Count("DeleteShader"))
	})
	t.Run("link", func(t *testing.T) {
		ctx, r := newTestContext(t)
		r.LinkLog = "undefined varying"
		_, err := ctx.NewShader("vs", "fs", quadMeta)
		assert.ErrorIs(t, err, gfx.ErrShaderLink)
		assert.Contains(t, err.Error(), "undefined varying")
		prog := r.Find("CreateProgram")[0].Args[0]
		assert.Equal(t, []gfxtest.Call{{Name: "DeleteProgram", Args: []any{prog}}}, r.Find("DeleteProgram"))
	})
	t.Run("unknown uniform", func(t *testing.T) {
		ctx, r := newTestContext(t)
		meta := gfx.ShaderMeta{Uniforms: gfx.UniformBlockLayout{Uniforms: []gfx.UniformDesc{{Name: "nope", Type: gfx.UniformFloat1}}}}
		_, err := ctx.NewShader("vs", "fs", meta)
		assert.ErrorIs(t, err, gfx.ErrUnknownUniform)
		prog := r.Find("CreateProgram")[0].Args[0]
		assert.Equal(t, []gfxtest.Call{{Name: "DeleteProgram", Args: []any{prog}}}, r.Find("DeleteProgram"))
		assert.Zero(t, r.Count("UseProgram"))
	})
	t.Run("unknown image", func(t *testing.T) {
		ctx, r := newTestContext(t)
		_, err := ctx.NewShader("vs", "fs", gfx.ShaderMeta{Images: []string{"nope"}})
		assert.ErrorIs(t, err, gfx.ErrUnknownImage)
		assert.Equal(t, 1, r.Count("DeleteProgram"))
		assert.Zero(t, r.Count("UseProgram"))
	})
	t.Run("unknown attribute", func(t *testing.T) {
		ctx, _ := newTestContext(t)
		shader, err := ctx.NewShader("vs", "fs", quadMeta)
		require.NoError(t, err)
		_, err = ctx.NewPipeline([]gfx.BufferLayout{{}}, []gfx.VertexAttribute{{Name: "in_normal", Format: gfx.Float3}}, shader)
		assert.ErrorIs(t, err, gfx.ErrUnknownAttribute)
	})
}

type renamer struct{}

func (renamer) Translate(stage gfx.ShaderStage, source string) (gfx.TranslatedShader, error) {
	return gfx.TranslatedShader{
		Source: "translated " + stage.String(),
		Names:  map[string]string{"model_view": "mvp", "position": "in_pos"},
	}, nil
}

func TestShaderTranslatorNames(t *testing.T) {
	ctx, r := newTestContext(t, gfx.WithTranslator(renamer{}))
	shader, err := ctx.NewShader("vs", "fs", gfx.ShaderMeta{
		Uniforms: gfx.UniformBlockLayout{Uniforms: []gfx.UniformDesc{{Name: "model_view", Type: gfx.UniformMat4}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "translated vertex", r.CompiledSources[gfx.StageVertex])
	assert.Equal(t, "translated fragment", r.CompiledSources[gfx.StageFragment])

	_, err = ctx.NewPipeline([]gfx.BufferLayout{{}}, []gfx.VertexAttribute{{Name: "position", Format: gfx.Float2}}, shader)
	assert.NoError(t, err)
}

func TestApplyBeforePipelinePanics(t *testing.T) {
	ctx, _ := newTestContext(t)
	assert.Panics(t, func() { _ = ctx.ApplyBindings(gfx.Bindings{}) })
	assert.Panics(t, func() { _ = ctx.ApplyUniforms(nil) })
}

func TestMissingVertexBuffer(t *testing.T) {
	ctx, r := newTestContext(t)
	q := newQuad(t, ctx, gfx.DefaultPipelineParams())
	ctx.ApplyPipeline(q.pipeline)

	r.Reset()
	err := ctx.ApplyBindings(gfx.Bindings{IndexBuffer: q.bindings.IndexBuffer})
	assert.ErrorIs(t, err, gfx.ErrMissingVertexBuffer)
	assert.Empty(t, r.Calls)
}

func TestPassClearGating(t *testing.T) {
	ctx, r := newTestContext(t)

	ctx.BeginDefaultPass(gfx.PassNothing)
	assert.Zero(t, r.Count("Clear"))
	assert.Equal(t, []any{0, 0, 640, 480}, r.Find("Viewport")[0].Args)
	assert.Equal(t, []any{0, 0, 640, 480}, r.Find("Scissor")[0].Args)
	assert.Equal(t, []any{uint32(defaultFB)}, r.Find("BindFramebuffer")[0].Args)

	r.Reset()
	ctx.BeginDefaultPass(gfx.PassAction{ClearStencil: true, Stencil: 2})
	assert.Equal(t, []any{gfx.ClearStencilBit}, r.Find("Clear")[0].Args)
	assert.Zero(t, r.Count("ClearColor"))

	r.Reset()
	ctx.BeginDefaultPass(gfx.DefaultPassAction())
	assert.Equal(t, []any{gfx.ClearColorBit | gfx.ClearDepthBit}, r.Find("Clear")[0].Args)
	assert.Equal(t, []any{float32(0), float32(0), float32(0), float32(0)}, r.Find("ClearColor")[0].Args)
	assert.Equal(t, []any{float32(1)}, r.Find("ClearDepth")[0].Args)
}

func TestClearOpensDepthMask(t *testing.T) {
	ctx, r := newTestContext(t)
	params := gfx.DefaultPipelineParams()
	params.DepthTest = gfx.CompareLess
	q := newQuad(t, ctx, params)
	ctx.ApplyPipeline(q.pipeline)

	r.Reset()
	ctx.BeginDefaultPass(gfx.ClearColor(0, 0, 0, 1))
	assert.Equal(t, []any{true}, r.Find("DepthMask")[0].Args)
}

func TestRenderPass(t *testing.T) {
	ctx, r := newTestContext(t)
	color, err := ctx.NewRenderTexture(gfx.RenderTextureParams{Width: 256, Height: 128})
	require.NoError(t, err)
	depth, err := ctx.NewRenderTexture(gfx.RenderTextureParams{Width: 256, Height: 128, Format: gfx.TextureFormatDepth})
	require.NoError(t, err)

	r.Reset()
	pass, err := ctx.NewRenderPass(color, &depth)
	require.NoError(t, err)
	fb := r.Find("CreateFramebuffer")[0].Args[0]
	binds := r.Find("BindFramebuffer")
	require.Len(t, binds, 2)
	assert.Equal(t, []any{fb}, binds[0].Args)
	assert.Equal(t, []any{uint32(defaultFB)}, binds[1].Args)
	assert.Equal(t, 2, r.Count("FramebufferTexture"))

	r.Reset()
	ctx.BeginPass(pass, gfx.PassNothing)
	assert.Equal(t, []any{fb}, r.Find("BindFramebuffer")[0].Args)
	assert.Equal(t, []any{0, 0, 256, 128}, r.Find("Viewport")[0].Args)

	r.Reset()
	ctx.EndRenderPass()
	assert.Equal(t, []any{uint32(defaultFB)}, r.Find("BindFramebuffer")[0].Args)

	pixels := make([]byte, 256*128*4)
	require.NoError(t, ctx.ReadPixels(pass, pixels))
	assert.Equal(t, byte(0xff), pixels[len(pixels)-1])
	assert.ErrorIs(t, ctx.ReadPixels(pass, pixels[:10]), gfx.ErrTextureSize)
}

func TestRenderPassErrors(t *testing.T) {
	ctx, r := newTestContext(t)
	color, err := ctx.NewRenderTexture(gfx.RenderTextureParams{Width: 4, Height: 4})
	require.NoError(t, err)

	_, err = ctx.NewRenderPass(color, &color)
	assert.ErrorIs(t, err, gfx.ErrInvalidAttachment)

	r.IncompleteFBO = true
	r.Reset()
	_, err = ctx.NewRenderPass(color, nil)
	assert.ErrorIs(t, err, gfx.ErrIncompleteFramebuffer)
	fb := r.Find("CreateFramebuffer")[0].Args[0]
	assert.Equal(t, []gfxtest.Call{{Name: "DeleteFramebuffer", Args: []any{fb}}}, r.Find("DeleteFramebuffer"))
	binds := r.Find("BindFramebuffer")
	assert.Equal(t, []any{uint32(defaultFB)}, binds[len(binds)-1].Args)
}

func TestEndRenderPassResetsBuffers(t *testing.T) {
	ctx, r := newTestContext(t)
	q := newQuad(t, ctx, gfx.DefaultPipelineParams())
	ctx.ApplyPipeline(q.pipeline)
	require.NoError(t, ctx.ApplyBindings(q.bindings))

	r.Reset()
	ctx.EndRenderPass()
	assert.Equal(t, []gfxtest.Call{
		{Name: "BindFramebuffer", Args: []any{uint32(defaultFB)}},
		{Name: "BindBuffer", Args: []any{gfx.VertexBuffer, uint32(0)}},
		{Name: "BindBuffer", Args: []any{gfx.IndexBuffer, uint32(0)}},
	}, r.Calls)

	r.Reset()
	require.NoError(t, ctx.ApplyBindings(q.bindings))
	assert.Equal(t, 1, r.Count("BindBuffer"))
}

func TestTextures(t *testing.T) {
	ctx, r := newTestContext(t)
	_, err := ctx.NewTexture(2, 2, make([]byte, 15))
	assert.ErrorIs(t, err, gfx.ErrTextureSize)

	r.Reset()
	depth, err := ctx.NewRenderTexture(gfx.RenderTextureParams{Width: 8, Height: 8, Format: gfx.TextureFormatDepth, Filter: gfx.FilterNearest})
	require.NoError(t, err)
	assert.Equal(t, []any{8, 8, gfx.TextureFormatDepth, 0}, r.Find("TexImage2D")[0].Args)
	assert.Equal(t, []any{gfx.WrapClamp}, r.Find("TexWrap")[0].Args)
	assert.Equal(t, []any{gfx.FilterNearest}, r.Find("TexFilter")[0].Args)

	r.Reset()
	ctx.SetTextureFilter(depth, gfx.FilterLinear)
	assert.Equal(t, []any{gfx.FilterLinear}, r.Find("TexFilter")[0].Args)

	// The top rows of a larger image share its Pix.
	full := image.NewRGBA(image.Rect(0, 0, 4, 4))
	r.Reset()
	top, err := ctx.NewTextureFromImage(full.SubImage(image.Rect(0, 0, 4, 2)))
	require.NoError(t, err)
	assert.Equal(t, 4, top.Width)
	assert.Equal(t, 2, top.Height)
	assert.Equal(t, []any{4, 2, gfx.TextureFormatRGBA8, 32}, r.Find("TexImage2D")[0].Args)

	r.Reset()
	inner, err := ctx.NewTextureFromImage(full.SubImage(image.Rect(1, 1, 3, 4)))
	require.NoError(t, err)
	assert.Equal(t, []any{2, 3, gfx.TextureFormatRGBA8, 24}, r.Find("TexImage2D")[0].Args)
	assert.Equal(t, 2, inner.Width)
}

func TestCurrentPipelineSurvivesGrowth(t *testing.T) {
	ctx, r := newTestContext(t)
	q := newQuad(t, ctx, gfx.DefaultPipelineParams())
	ctx.ApplyPipeline(q.pipeline)
	for i := 0; i < 16; i++ {
		newQuad(t, ctx, gfx.DefaultPipelineParams())
	}

	r.Reset()
	require.NoError(t, ctx.ApplyBindings(q.bindings))
	assert.Len(t, r.Find("VertexAttribPointer"), 2)
	require.NoError(t, ctx.ApplyUniforms(make([]byte, 64)))
	assert.Equal(t, int32(mvpLoc), r.Find("Uniformf")[0].Args[0])
}
