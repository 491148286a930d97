package gfx

import "fmt"

// AttributeLayout describes how one attribute location reads from its
// vertex buffer. Offset and Stride are in bytes.
type AttributeLayout struct {
	Location    int
	Components  int
	Type        ScalarType
	Offset      int
	Stride      int
	BufferIndex int
	Divisor     int
}

// mat4 attributes are bound as four consecutive vec4 columns.
const (
	mat4Columns     = 4
	mat4ColumnBytes = 4 * 4
)

// compileLayout resolves attrs against their buffer slots and returns a
// table indexed by attribute location. resolve maps an attribute name to
// its location in the shader program, or -1.
func compileLayout(buffers []BufferLayout, attrs []VertexAttribute, resolve func(name string) int32) ([]AttributeLayout, error) {
	strides := make([]int, len(buffers))
	for i, b := range buffers {
		strides[i] = b.Stride
	}
	for _, a := range attrs {
		if a.BufferIndex < 0 || a.BufferIndex >= len(buffers) {
			return nil, fmt.Errorf("%w: attribute %q uses slot %d of %d", ErrInvalidBufferIndex, a.Name, a.BufferIndex, len(buffers))
		}
		if buffers[a.BufferIndex].Stride == 0 {
			strides[a.BufferIndex] += a.Format.ByteLen()
		}
	}

	var table [MaxVertexAttributes]AttributeLayout
	used := 0
	place := func(l AttributeLayout, name string) error {
		if l.Location >= MaxVertexAttributes {
			return fmt.Errorf("%w: attribute %q at location %d, max %d", ErrAttributeLocationOverflow, name, l.Location, MaxVertexAttributes-1)
		}
		table[l.Location] = l
		if l.Location+1 > used {
			used = l.Location + 1
		}
		return nil
	}

	offsets := make([]int, len(buffers))
	for _, a := range attrs {
		loc := resolve(a.Name)
		if loc < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAttribute, a.Name)
		}
		b := buffers[a.BufferIndex]
		divisor := 0
		if b.Step == StepPerInstance {
			divisor = b.StepRate
			if divisor == 0 {
				divisor = 1
			}
		}
		l := AttributeLayout{
			Location:    int(loc),
			Components:  a.Format.Components(),
			Type:        a.Format.scalarType(),
			Offset:      offsets[a.BufferIndex],
			Stride:      strides[a.BufferIndex],
			BufferIndex: a.BufferIndex,
			Divisor:     divisor,
		}
		if a.Format != Mat4 {
			if err := place(l, a.Name); err != nil {
				return nil, err
			}
			offsets[a.BufferIndex] += a.Format.ByteLen()
			continue
		}
		l.Components = 4
		for col := 0; col < mat4Columns; col++ {
			l.Location = int(loc) + col
			l.Offset = offsets[a.BufferIndex]
			if err := place(l, a.Name); err != nil {
				return nil, err
			}
			offsets[a.BufferIndex] += mat4ColumnBytes
		}
	}

	for i := 0; i < used; i++ {
		if table[i].Components == 0 {
			return nil, fmt.Errorf("%w: no attribute at location %d", ErrIncompleteAttributeLayout, i)
		}
	}
	return append([]AttributeLayout(nil), table[:used]...), nil
}
