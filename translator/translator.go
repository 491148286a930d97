// Package translator adapts goshadertranslator to gfx.ShaderTranslator so
// that WebGL2 GLSL sources can be compiled on desktop GL 4.1 or GLES 3.0.
package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"

	"github.com/richinsley/gogfx/gfx"
)

var (
	shared     *gst.ShaderTranslator
	sharedErr  error
	sharedOnce sync.Once
)

// GetTranslator returns the process-wide translator, creating it on first
// use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	sharedOnce.Do(func() {
		shared, sharedErr = gst.NewShaderTranslator(context.Background())
	})
	if sharedErr != nil {
		return nil, fmt.Errorf("failed to create shader translator: %w", sharedErr)
	}
	return shared, nil
}

// Translator translates WebGL2 shaders into one output dialect.
type Translator struct {
	t    *gst.ShaderTranslator
	gles bool
}

// New returns a Translator producing GLSL 410, or ESSL when gles is set.
func New(gles bool) (*Translator, error) {
	t, err := GetTranslator()
	if err != nil {
		return nil, err
	}
	return &Translator{t: t, gles: gles}, nil
}

func (tr *Translator) Translate(stage gfx.ShaderStage, source string) (gfx.TranslatedShader, error) {
	var kind string
	switch stage {
	case gfx.StageVertex:
		kind = "vertex"
	case gfx.StageFragment:
		kind = "fragment"
	default:
		return gfx.TranslatedShader{}, fmt.Errorf("cannot translate %s stage", stage)
	}
	output := gst.OutputFormatGLSL410
	if tr.gles {
		output = gst.OutputFormatESSL
	}
	res, err := tr.t.TranslateShader(source, kind, gst.ShaderSpecWebGL2, output)
	if err != nil {
		return gfx.TranslatedShader{}, fmt.Errorf("%s shader translation failed: %w", kind, err)
	}
	names := make(map[string]string, len(res.Variables))
	for name, v := range res.Variables {
		names[name] = v.MappedName
	}
	return gfx.TranslatedShader{Source: res.Code, Names: names}, nil
}

var _ gfx.ShaderTranslator = (*Translator)(nil)
