package gfx

import "fmt"

// Shader is a handle to a linked program in a Context.
type Shader int

// ShaderTranslator rewrites shader source before it is compiled. Names maps
// identifiers declared in the input source to the identifiers used in
// the translated source; names missing from it are used unchanged.
type ShaderTranslator interface {
	Translate(stage ShaderStage, source string) (TranslatedShader, error)
}

type TranslatedShader struct {
	Source string
	Names  map[string]string
}

type shaderEntry struct {
	program  uint32
	names    map[string]string
	images   []shaderImage
	uniforms []shaderUniform
}

type shaderImage struct {
	name     string
	location int32
}

type shaderUniform struct {
	name     string
	location int32
	offset   int
	typ      UniformType
}

func (s *shaderEntry) mapped(name string) string {
	if n, ok := s.names[name]; ok {
		return n
	}
	return name
}

// uniformOffsets returns the byte offset of each uniform in a tightly
// packed block.
func uniformOffsets(layout UniformBlockLayout) []int {
	offsets := make([]int, len(layout.Uniforms))
	off := 0
	for i, u := range layout.Uniforms {
		offsets[i] = off
		off += u.Type.Size()
	}
	return offsets
}

// Size returns the number of bytes a uniform block with the layout takes.
func (l UniformBlockLayout) Size() int {
	n := 0
	for _, u := range l.Uniforms {
		n += u.Type.Size()
	}
	return n
}

// NewShader compiles and links a program and resolves every image and
// uniform named in meta.
func (c *Context) NewShader(vertexSrc, fragmentSrc string, meta ShaderMeta) (Shader, error) {
	entry := shaderEntry{names: make(map[string]string)}

	vs, err := c.compileShader(StageVertex, vertexSrc, entry.names)
	if err != nil {
		return 0, err
	}
	fs, err := c.compileShader(StageFragment, fragmentSrc, entry.names)
	if err != nil {
		c.d.DeleteShader(vs)
		return 0, err
	}

	prog := c.d.CreateProgram()
	c.d.AttachShader(prog, vs)
	c.d.AttachShader(prog, fs)
	infoLog, ok := c.d.LinkProgram(prog)
	c.d.DeleteShader(vs)
	c.d.DeleteShader(fs)
	if !ok {
		c.d.DeleteProgram(prog)
		c.logger.Error("program link failed", "log", infoLog)
		return 0, &ShaderError{Stage: StageProgram, Log: infoLog}
	}
	entry.program = prog

	for _, name := range meta.Images {
		loc := c.d.UniformLocation(prog, entry.mapped(name))
		if loc < 0 {
			c.d.DeleteProgram(prog)
			return 0, fmt.Errorf("%w: %q", ErrUnknownImage, name)
		}
		entry.images = append(entry.images, shaderImage{name: name, location: loc})
	}

	offsets := uniformOffsets(meta.Uniforms)
	for i, u := range meta.Uniforms.Uniforms {
		loc := c.d.UniformLocation(prog, entry.mapped(u.Name))
		if loc < 0 {
			c.d.DeleteProgram(prog)
			return 0, fmt.Errorf("%w: %q", ErrUnknownUniform, u.Name)
		}
		entry.uniforms = append(entry.uniforms, shaderUniform{
			name:     u.Name,
			location: loc,
			offset:   offsets[i],
			typ:      u.Type,
		})
	}

	c.shaders = append(c.shaders, entry)
	id := Shader(len(c.shaders) - 1)
	c.logger.Debug("created shader", "shader", id, "program", prog, "images", len(entry.images), "uniforms", len(entry.uniforms))
	return id, nil
}

func (c *Context) compileShader(stage ShaderStage, source string, names map[string]string) (uint32, error) {
	if c.translator != nil {
		t, err := c.translator.Translate(stage, source)
		if err != nil {
			return 0, fmt.Errorf("%s shader translation failed: %w", stage, err)
		}
		source = t.Source
		for k, v := range t.Names {
			names[k] = v
		}
	}
	sh := c.d.CreateShader(stage)
	infoLog, ok := c.d.CompileShader(sh, source)
	if !ok {
		c.d.DeleteShader(sh)
		c.logger.Error("shader compile failed", "stage", stage, "log", infoLog)
		return 0, &ShaderError{Stage: stage, Log: infoLog}
	}
	return sh, nil
}

func (c *Context) shader(s Shader) *shaderEntry {
	if s < 0 || int(s) >= len(c.shaders) {
		panic(fmt.Sprintf("gfx: invalid shader handle %d", s))
	}
	return &c.shaders[s]
}
