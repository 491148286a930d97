package gfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func locations(m map[string]int32) func(string) int32 {
	return func(name string) int32 {
		if loc, ok := m[name]; ok {
			return loc
		}
		return -1
	}
}

func TestCompileLayoutAutoStride(t *testing.T) {
	layout, err := compileLayout(
		[]BufferLayout{{}},
		[]VertexAttribute{
			{Name: "pos", Format: Float3},
			{Name: "uv", Format: Float2},
			{Name: "color", Format: Byte4},
		},
		locations(map[string]int32{"pos": 0, "uv": 1, "color": 2}),
	)
	require.NoError(t, err)
	require.Len(t, layout, 3)

	assert.Equal(t, []AttributeLayout{
		{Location: 0, Components: 3, Type: ScalarFloat, Offset: 0, Stride: 24},
		{Location: 1, Components: 2, Type: ScalarFloat, Offset: 12, Stride: 24},
		{Location: 2, Components: 4, Type: ScalarUnsignedByte, Offset: 20, Stride: 24},
	}, layout)
}

func TestCompileLayoutExplicitStrideWins(t *testing.T) {
	layout, err := compileLayout(
		[]BufferLayout{{Stride: 64}},
		[]VertexAttribute{{Name: "pos", Format: Float2}},
		locations(map[string]int32{"pos": 0}),
	)
	require.NoError(t, err)
	assert.Equal(t, 64, layout[0].Stride)
}

func TestCompileLayoutMat4(t *testing.T) {
	buffers := []BufferLayout{
		{},
		{Step: StepPerInstance, StepRate: 2},
	}
	attrs := []VertexAttribute{
		{Name: "pos", Format: Float2, BufferIndex: 0},
		{Name: "tint", Format: Float4, BufferIndex: 1},
		{Name: "model", Format: Mat4, BufferIndex: 1},
	}
	layout, err := compileLayout(buffers, attrs, locations(map[string]int32{"pos": 0, "tint": 1, "model": 2}))
	require.NoError(t, err)
	require.Len(t, layout, 6)

	const stride = 16 + 64
	for col := 0; col < 4; col++ {
		l := layout[2+col]
		assert.Equal(t, 2+col, l.Location)
		assert.Equal(t, 4, l.Components)
		assert.Equal(t, 16+16*col, l.Offset)
		assert.Equal(t, stride, l.Stride)
		assert.Equal(t, 1, l.BufferIndex)
		assert.Equal(t, 2, l.Divisor)
	}
	assert.Equal(t, 0, layout[0].Divisor)
	assert.Equal(t, 8, layout[0].Stride)
}

func TestCompileLayoutDefaultStepRate(t *testing.T) {
	layout, err := compileLayout(
		[]BufferLayout{{Step: StepPerInstance}},
		[]VertexAttribute{{Name: "offset", Format: Float2}},
		locations(map[string]int32{"offset": 0}),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, layout[0].Divisor)
}

func TestCompileLayoutErrors(t *testing.T) {
	tests := []struct {
		name  string
		attrs []VertexAttribute
		locs  map[string]int32
		want  error
	}{
		{
			name:  "unknown attribute",
			attrs: []VertexAttribute{{Name: "missing", Format: Float2}},
			locs:  map[string]int32{},
			want:  ErrUnknownAttribute,
		},
		{
			name:  "location overflow",
			attrs: []VertexAttribute{{Name: "far", Format: Float4}},
			locs:  map[string]int32{"far": MaxVertexAttributes},
			want:  ErrAttributeLocationOverflow,
		},
		{
			name:  "mat4 spills past the last location",
			attrs: []VertexAttribute{{Name: "model", Format: Mat4}},
			locs:  map[string]int32{"model": MaxVertexAttributes - 2},
			want:  ErrAttributeLocationOverflow,
		},
		{
			name:  "gap below highest location",
			attrs: []VertexAttribute{{Name: "pos", Format: Float2}, {Name: "uv", Format: Float2}},
			locs:  map[string]int32{"pos": 0, "uv": 2},
			want:  ErrIncompleteAttributeLayout,
		},
		{
			name:  "undeclared buffer slot",
			attrs: []VertexAttribute{{Name: "pos", Format: Float2, BufferIndex: 3}},
			locs:  map[string]int32{"pos": 0},
			want:  ErrInvalidBufferIndex,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compileLayout([]BufferLayout{{}}, tt.attrs, locations(tt.locs))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUniformOffsets(t *testing.T) {
	layout := UniformBlockLayout{Uniforms: []UniformDesc{
		{Name: "mvp", Type: UniformMat4},
		{Name: "time", Type: UniformFloat1},
		{Name: "offset", Type: UniformFloat2},
		{Name: "light", Type: UniformFloat3},
		{Name: "color", Type: UniformFloat4},
	}}
	assert.Equal(t, []int{0, 64, 68, 76, 88}, uniformOffsets(layout))
	assert.Equal(t, 104, layout.Size())
}

func TestVertexFormatSizes(t *testing.T) {
	assert.Equal(t, 12, Float3.ByteLen())
	assert.Equal(t, 3, Byte3.ByteLen())
	assert.Equal(t, 64, Mat4.ByteLen())
	assert.Equal(t, 16, Mat4.Components())
}
