package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/richinsley/gogfx/gfx"
	"github.com/richinsley/gogfx/shader"
)

// SceneConfig sizes the offscreen target and the instance count.
type SceneConfig struct {
	Width     int
	Height    int
	Instances int
	Filter    gfx.FilterMode
	// WebGL selects the GLES sources, which are what the shader translator
	// accepts as input.
	WebGL bool
}

// instance is the per-instance vertex data. Its layout matches the
// in_tint and in_model attributes of the instance buffer slot.
type instance struct {
	Tint  mgl32.Vec4
	Model mgl32.Mat4
}

var quadVertices = []float32{
	// pos       uv
	-0.5, -0.5, 0, 0,
	0.5, -0.5, 1, 0,
	0.5, 0.5, 1, 1,
	-0.5, 0.5, 0, 1,
}

var blitVertices = []float32{
	-1, -1, 0, 0,
	1, -1, 1, 0,
	1, 1, 1, 1,
	-1, 1, 0, 1,
}

var quadIndices = []uint16{0, 1, 2, 0, 2, 3}

var palette = []mgl32.Vec4{
	{0.95, 0.35, 0.30, 1},
	{0.30, 0.75, 0.45, 1},
	{0.30, 0.50, 0.95, 1},
	{0.95, 0.80, 0.25, 1},
	{0.75, 0.40, 0.90, 0.8},
}

// Scene draws a grid of spinning textured quads into an offscreen pass and
// blits the result to the default framebuffer.
type Scene struct {
	ctx *gfx.Context
	cfg SceneConfig

	pass      gfx.RenderPass
	quads     gfx.Pipeline
	blit      gfx.Pipeline
	quadBind  gfx.Bindings
	blitBind  gfx.Bindings
	instances gfx.Buffer
	uniforms  *gfx.UniformBlock
	data      []instance
	pan       mgl32.Vec2
}

var sceneUniforms = gfx.UniformBlockLayout{Uniforms: []gfx.UniformDesc{
	{Name: "u_viewproj", Type: gfx.UniformMat4},
	{Name: "u_time", Type: gfx.UniformFloat1},
}}

func NewScene(ctx *gfx.Context, cfg SceneConfig) (*Scene, error) {
	if cfg.Instances <= 0 {
		return nil, fmt.Errorf("scene needs at least one instance, got %d", cfg.Instances)
	}
	s := &Scene{
		ctx:      ctx,
		cfg:      cfg,
		uniforms: gfx.NewUniformBlock(sceneUniforms),
		data:     make([]instance, cfg.Instances),
	}

	target, err := ctx.NewRenderTexture(gfx.RenderTextureParams{
		Width:  cfg.Width,
		Height: cfg.Height,
		Filter: cfg.Filter,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create color target: %w", err)
	}
	depth, err := ctx.NewRenderTexture(gfx.RenderTextureParams{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: gfx.TextureFormatDepth,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create depth target: %w", err)
	}
	if s.pass, err = ctx.NewRenderPass(target, &depth); err != nil {
		return nil, err
	}

	checker, err := ctx.NewTextureFromImage(checkerboard(64, 8))
	if err != nil {
		return nil, fmt.Errorf("failed to create checker texture: %w", err)
	}
	ctx.SetTextureFilter(checker, cfg.Filter)

	quadShader, err := ctx.NewShader(
		shader.SceneVertexShader(cfg.WebGL),
		shader.SceneFragmentShader(cfg.WebGL),
		gfx.ShaderMeta{Images: []string{"u_texture"}, Uniforms: sceneUniforms},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create quad shader: %w", err)
	}
	blitShader, err := ctx.NewShader(
		shader.BlitVertexShader(cfg.WebGL),
		shader.BlitFragmentShader(cfg.WebGL),
		gfx.ShaderMeta{Images: []string{"u_texture"}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create blit shader: %w", err)
	}

	params := gfx.DefaultPipelineParams()
	params.DepthTest = gfx.CompareLessOrEqual
	params.DepthWrite = true
	params.ColorBlend = &gfx.BlendState{
		Equation: gfx.EquationAdd,
		Src:      gfx.BlendFactorSrcAlpha,
		Dst:      gfx.BlendFactorOneMinusSrcAlpha,
	}
	s.quads, err = ctx.NewPipelineWithParams(
		[]gfx.BufferLayout{{}, {Step: gfx.StepPerInstance}},
		[]gfx.VertexAttribute{
			{Name: "in_pos", Format: gfx.Float2},
			{Name: "in_uv", Format: gfx.Float2},
			{Name: "in_tint", Format: gfx.Float4, BufferIndex: 1},
			{Name: "in_model", Format: gfx.Mat4, BufferIndex: 1},
		},
		quadShader, params,
	)
	if err != nil {
		return nil, err
	}
	s.blit, err = ctx.NewPipeline(
		[]gfx.BufferLayout{{}},
		[]gfx.VertexAttribute{
			{Name: "in_pos", Format: gfx.Float2},
			{Name: "in_uv", Format: gfx.Float2},
		},
		blitShader,
	)
	if err != nil {
		return nil, err
	}

	indices := ctx.NewImmutableBuffer(gfx.IndexBuffer, gfx.SliceBytes(quadIndices))
	s.instances = ctx.NewStreamBuffer(gfx.VertexBuffer, len(s.data)*len(gfx.StructBytes(&instance{})))
	s.quadBind = gfx.Bindings{
		VertexBuffers: []gfx.Buffer{
			ctx.NewImmutableBuffer(gfx.VertexBuffer, gfx.SliceBytes(quadVertices)),
			s.instances,
		},
		IndexBuffer: indices,
		Images:      []gfx.Texture{checker},
	}
	s.blitBind = gfx.Bindings{
		VertexBuffers: []gfx.Buffer{ctx.NewImmutableBuffer(gfx.VertexBuffer, gfx.SliceBytes(blitVertices))},
		IndexBuffer:   indices,
		Images:        []gfx.Texture{ctx.Texture(s.pass)},
	}
	return s, nil
}

// Output is the offscreen pass the scene renders into.
func (s *Scene) Output() gfx.RenderPass {
	return s.pass
}

// SetPan offsets the view in normalized device units.
func (s *Scene) SetPan(x, y float32) {
	s.pan = mgl32.Vec2{x, y}
}

// layoutInstances places the instances on a square grid spanning the unit
// square, each spinning at its own phase.
func (s *Scene) layoutInstances(t float64) {
	n := len(s.data)
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	cell := 2 / float32(cols)
	for i := range s.data {
		x := -1 + cell*(float32(i%cols)+0.5)
		y := 1 - cell*(float32(i/cols)+0.5)
		angle := float32(t) + float32(i)*0.4
		s.data[i] = instance{
			Tint: palette[i%len(palette)],
			Model: mgl32.Translate3D(x, y, 0).
				Mul4(mgl32.HomogRotate3DZ(angle)).
				Mul4(mgl32.Scale3D(cell*0.8, cell*0.8, 1)),
		}
	}
}

// Draw renders the quads at time t into the offscreen pass.
func (s *Scene) Draw(t float64) error {
	s.layoutInstances(t)
	if err := s.ctx.UpdateBuffer(s.instances, gfx.SliceBytes(s.data)); err != nil {
		return err
	}

	aspect := float32(s.cfg.Width) / float32(s.cfg.Height)
	viewproj := mgl32.Ortho2D(-aspect, aspect, -1, 1).
		Mul4(mgl32.Translate3D(s.pan.X(), s.pan.Y(), 0))
	if err := s.uniforms.SetMat4("u_viewproj", viewproj); err != nil {
		return err
	}
	if err := s.uniforms.SetFloat("u_time", float32(t)); err != nil {
		return err
	}

	s.ctx.BeginPass(s.pass, gfx.ClearColor(0.08, 0.08, 0.1, 1))
	s.ctx.ApplyPipeline(s.quads)
	if err := s.ctx.ApplyBindings(s.quadBind); err != nil {
		return err
	}
	if err := s.ctx.ApplyUniforms(s.uniforms.Bytes()); err != nil {
		return err
	}
	s.ctx.Draw(0, len(quadIndices), len(s.data))
	s.ctx.EndRenderPass()
	return nil
}

// Present copies the offscreen pass to the default framebuffer.
func (s *Scene) Present() error {
	s.ctx.BeginDefaultPass(gfx.ClearColor(0, 0, 0, 1))
	s.ctx.ApplyPipeline(s.blit)
	if err := s.ctx.ApplyBindings(s.blitBind); err != nil {
		return err
	}
	s.ctx.Draw(0, len(quadIndices), 1)
	s.ctx.EndRenderPass()
	return nil
}

func checkerboard(size, squares int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	step := size / squares
	light := color.RGBA{R: 235, G: 235, B: 235, A: 255}
	dark := color.RGBA{R: 90, G: 90, B: 90, A: 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/step+y/step)%2 == 0 {
				img.SetRGBA(x, y, light)
			} else {
				img.SetRGBA(x, y, dark)
			}
		}
	}
	return img
}
