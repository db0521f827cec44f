package shader

import (
	"reflect"
	"strings"
	"testing"

	"github.com/richinsley/gogradient/gradient"
)

func TestGradientShaderDeclaresUniforms(t *testing.T) {
	if err := CheckUniforms(GetGradientFragmentShader(), gradient.UniformNames()); err != nil {
		t.Fatal(err)
	}
}

func TestGradientShaderIsWebGL2(t *testing.T) {
	src := GetGradientFragmentShader()
	if !strings.HasPrefix(src, "#version 300 es\n") {
		t.Errorf("gradient source must start with the WebGL2 version line")
	}
	if strings.Contains(src, "gl_FragColor") || strings.Contains(src, "texture2D") {
		t.Errorf("gradient source uses WebGL1 built-ins")
	}
}

func TestDeclaredUniforms(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"single", "uniform float uTime;", []string{"uTime"}},
		{"list", "uniform vec3 uA, uB,uC;", []string{"uA", "uB", "uC"}},
		{"list without spaces", "uniform float uTime,uSpeed,uIntensity;", []string{"uTime", "uSpeed", "uIntensity"}},
		{"indented", "   uniform  sampler2D  uTex ;", []string{"uTex"}},
		{"ignores others", "out vec4 c;\nfloat uniformish;\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeclaredUniforms(tt.src)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DeclaredUniforms = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckUniformsReportsMissing(t *testing.T) {
	err := CheckUniforms("uniform float uTime;", []string{"uTime", "uSpeed"})
	if err == nil || !strings.Contains(err.Error(), "uSpeed") {
		t.Errorf("CheckUniforms error = %v, want mention of uSpeed", err)
	}
}

func TestCheckUniformsAcceptsCommaList(t *testing.T) {
	if err := CheckUniforms("uniform vec3 uA,uB;", []string{"uA", "uB"}); err != nil {
		t.Errorf("CheckUniforms = %v", err)
	}
}

func TestOverlayShaders(t *testing.T) {
	vs, fs := GetOverlayShaders()
	if err := CheckUniforms(fs, []string{"uViewport", "uRing", "uDot", "uScale", "uColor"}); err != nil {
		t.Error(err)
	}
	if !strings.Contains(vs, "in_vert") {
		t.Error("overlay vertex stage must read in_vert at location 0")
	}
	if err := CheckUniforms(GetPlaneVertexShader(), []string{"uMVP"}); err != nil {
		t.Error(err)
	}
}
