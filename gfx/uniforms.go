package gfx

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// UniformBlock builds a uniform data block for a layout by name, checking
// every value against the declared type. Its Bytes can be passed to
// ApplyUniforms for any shader created with the same layout.
type UniformBlock struct {
	slots map[string]uniformSlot
	data  []byte
}

type uniformSlot struct {
	offset int
	typ    UniformType
}

func NewUniformBlock(layout UniformBlockLayout) *UniformBlock {
	b := &UniformBlock{
		slots: make(map[string]uniformSlot, len(layout.Uniforms)),
		data:  make([]byte, layout.Size()),
	}
	offsets := uniformOffsets(layout)
	for i, u := range layout.Uniforms {
		b.slots[u.Name] = uniformSlot{offset: offsets[i], typ: u.Type}
	}
	return b
}

func (b *UniformBlock) put(name string, typ UniformType, v []float32) error {
	s, ok := b.slots[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownUniform, name)
	}
	if s.typ != typ {
		return fmt.Errorf("%w: %q is %s, not %s", ErrUniformTypeMismatch, name, s.typ, typ)
	}
	for i, f := range v {
		binary.NativeEndian.PutUint32(b.data[s.offset+4*i:], math.Float32bits(f))
	}
	return nil
}

func (b *UniformBlock) SetFloat(name string, v float32) error {
	return b.put(name, UniformFloat1, []float32{v})
}

func (b *UniformBlock) SetVec2(name string, v mgl32.Vec2) error {
	return b.put(name, UniformFloat2, v[:])
}

func (b *UniformBlock) SetVec3(name string, v mgl32.Vec3) error {
	return b.put(name, UniformFloat3, v[:])
}

func (b *UniformBlock) SetVec4(name string, v mgl32.Vec4) error {
	return b.put(name, UniformFloat4, v[:])
}

// SetMat4 stores m in column-major order.
func (b *UniformBlock) SetMat4(name string, m mgl32.Mat4) error {
	return b.put(name, UniformMat4, m[:])
}

// Bytes returns the block contents. The slice aliases the block.
func (b *UniformBlock) Bytes() []byte {
	return b.data
}

// SliceBytes returns the memory of s as bytes, for uploading vertex, index
// or uniform data held in typed slices.
func SliceBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}

// StructBytes returns the memory of *v as bytes. T must not contain
// pointers.
func StructBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}
