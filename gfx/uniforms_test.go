package gfx

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformBlock(t *testing.T) {
	b := NewUniformBlock(UniformBlockLayout{Uniforms: []UniformDesc{
		{Name: "mvp", Type: UniformMat4},
		{Name: "offset", Type: UniformFloat2},
		{Name: "light", Type: UniformFloat3},
	}})
	require.Len(t, b.Bytes(), 64+8+12)

	m := mgl32.Translate3D(1, 2, 3)
	require.NoError(t, b.SetMat4("mvp", m))
	require.NoError(t, b.SetVec2("offset", mgl32.Vec2{0.5, -0.5}))
	require.NoError(t, b.SetVec3("light", mgl32.Vec3{7, 8, 9}))

	at := func(off int) float32 {
		return math.Float32frombits(binary.NativeEndian.Uint32(b.Bytes()[off:]))
	}
	assert.Equal(t, float32(1), at(12*4))
	assert.Equal(t, float32(3), at(14*4))
	assert.Equal(t, float32(-0.5), at(68))
	assert.Equal(t, float32(9), at(72+8))

	assert.ErrorIs(t, b.SetFloat("missing", 1), ErrUnknownUniform)
	assert.ErrorIs(t, b.SetFloat("offset", 1), ErrUniformTypeMismatch)
}

func TestSliceBytes(t *testing.T) {
	assert.Len(t, SliceBytes([]uint16{0, 1, 2, 0, 2, 3}), 12)
	assert.Nil(t, SliceBytes([]float32(nil)))

	v := struct{ A, B float32 }{1, 2}
	raw := StructBytes(&v)
	require.Len(t, raw, 8)
	assert.Equal(t, float32(2), math.Float32frombits(binary.NativeEndian.Uint32(raw[4:])))
}
