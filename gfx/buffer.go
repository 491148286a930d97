package gfx

import "fmt"

// Buffer is a vertex or index buffer. Size is its byte capacity.
type Buffer struct {
	handle uint32
	Type   BufferType
	Usage  Usage
	Size   int
}

// NewImmutableBuffer creates a buffer sized and filled with data.
func (c *Context) NewImmutableBuffer(typ BufferType, data []byte) Buffer {
	restore := c.cache.saveBuffer(typ)
	defer restore()

	b := Buffer{handle: c.d.CreateBuffer(), Type: typ, Usage: UsageImmutable, Size: len(data)}
	c.cache.bindBuffer(typ, b.handle)
	c.d.BufferData(typ, len(data), nil, UsageImmutable)
	c.d.BufferSubData(typ, 0, data)
	c.logger.Debug("created buffer", "type", typ, "usage", UsageImmutable, "size", b.Size)
	return b
}

// NewBuffer creates an uninitialized buffer of size bytes, meant to be
// filled with UpdateBuffer.
func (c *Context) NewBuffer(typ BufferType, usage Usage, size int) Buffer {
	restore := c.cache.saveBuffer(typ)
	defer restore()

	b := Buffer{handle: c.d.CreateBuffer(), Type: typ, Usage: usage, Size: size}
	c.cache.bindBuffer(typ, b.handle)
	c.d.BufferData(typ, size, nil, usage)
	c.logger.Debug("created buffer", "type", typ, "usage", usage, "size", size)
	return b
}

func (c *Context) NewStreamBuffer(typ BufferType, size int) Buffer {
	return c.NewBuffer(typ, UsageStream, size)
}

// UpdateBuffer replaces the start of b with data. data may not be larger
// than the buffer.
func (c *Context) UpdateBuffer(b Buffer, data []byte) error {
	if len(data) > b.Size {
		return fmt.Errorf("%w: %d bytes into %s buffer of %d", ErrBufferOverflow, len(data), b.Type, b.Size)
	}
	restore := c.cache.saveBuffer(b.Type)
	defer restore()

	c.cache.bindBuffer(b.Type, b.handle)
	c.d.BufferSubData(b.Type, 0, data)
	return nil
}
