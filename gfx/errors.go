package gfx

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownAttribute          = errors.New("unknown vertex attribute")
	ErrAttributeLocationOverflow = errors.New("vertex attribute location out of range")
	ErrIncompleteAttributeLayout = errors.New("incomplete vertex attribute layout")
	ErrInvalidBufferIndex        = errors.New("vertex attribute references undeclared buffer slot")
	ErrUnknownUniform            = errors.New("unknown uniform")
	ErrUnknownImage              = errors.New("unknown image")
	ErrUniformTypeMismatch       = errors.New("uniform type mismatch")
	ErrUniformBlockTooSmall      = errors.New("uniform block too small")
	ErrShaderCompile             = errors.New("failed to compile shader")
	ErrShaderLink                = errors.New("failed to link program")
	ErrBufferOverflow            = errors.New("buffer size overflow")
	ErrTextureSize               = errors.New("pixel data does not match texture size")
	ErrInvalidAttachment         = errors.New("invalid render pass attachment")
	ErrIncompleteFramebuffer     = errors.New("framebuffer is not complete")
	ErrImageCountMismatch        = errors.New("image count in bindings and shader did not match")
	ErrMissingVertexBuffer       = errors.New("no vertex buffer bound for slot")
)

// ShaderError carries the driver's diagnostic for a failed compile or link.
type ShaderError struct {
	Stage ShaderStage
	Log   string
}

func (e *ShaderError) Error() string {
	if e.Stage == StageProgram {
		return fmt.Sprintf("%v: %s", ErrShaderLink, e.Log)
	}
	return fmt.Sprintf("%v (%s): %s", ErrShaderCompile, e.Stage, e.Log)
}

func (e *ShaderError) Unwrap() error {
	if e.Stage == StageProgram {
		return ErrShaderLink
	}
	return ErrShaderCompile
}
