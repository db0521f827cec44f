package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator *gst.ShaderTranslator
	initErr    error
	once       sync.Once
)

// GetTranslator returns the process-wide shader translator, creating it on
// first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	once.Do(func() {
		translator, initErr = gst.NewShaderTranslator(context.Background())
		if initErr != nil {
			initErr = fmt.Errorf("failed to create shader translator: %w", initErr)
		}
	})
	return translator, initErr
}

// Fragment is a translated fragment stage and the mapping from source uniform
// names to the names the translator emitted.
type Fragment struct {
	Code     string
	Uniforms map[string]string
}

// TranslateFragment converts a WebGL2 fragment shader to GLSL 4.10.
func TranslateFragment(source string) (*Fragment, error) {
	t, err := GetTranslator()
	if err != nil {
		return nil, err
	}
	out, err := t.TranslateShader(source, "fragment", gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return nil, fmt.Errorf("fragment shader translation failed: %w", err)
	}
	f := &Fragment{
		Code:     out.Code,
		Uniforms: make(map[string]string, len(out.Variables)),
	}
	for name, v := range out.Variables {
		f.Uniforms[name] = v.MappedName
	}
	return f, nil
}

// MappedName returns the emitted name of a source uniform, or the source name
// when the translator left it untouched.
func (f *Fragment) MappedName(name string) string {
	if m, ok := f.Uniforms[name]; ok && m != "" {
		return m
	}
	return name
}
