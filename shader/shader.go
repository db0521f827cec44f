package shader

import (
	"fmt"
	"strings"
	"unicode"
)

// ─────────────────────────────────── WebGL2 ─────────────────────────────────────

// The gradient pass is written once in the WebGL2 dialect and translated to the
// desktop profile at startup. Every uniform is declared on its own line so the
// translator reports each one in its variable map.
const gradientFragmentPreamble = `#version 300 es
precision highp float;
precision highp int;

uniform float uTime;
uniform float uSpeed;
uniform float uIntensity;
uniform float uGrainIntensity;
uniform float uGradientSize;
uniform float uGradientCount;
uniform float uColor1Weight;
uniform float uColor2Weight;
uniform vec2 uResolution;
uniform vec2 uViewport;
uniform vec3 uColor1;
uniform vec3 uColor2;
uniform vec3 uColor3;
uniform vec3 uColor4;
uniform vec3 uColor5;
uniform vec3 uColor6;
uniform vec3 uDarkNavy;
uniform sampler2D uTouchTexture;

out vec4 fragColor;
`

const gradientFragmentBody = `
float grain(vec2 uv, float t) {
    return fract(sin(dot(uv * uResolution * 0.5 + t, vec2(12.9898, 78.233))) * 43758.5453) * 2.0 - 1.0;
}

vec3 getGradientColor(vec2 uv, float time) {
    float s = time * uSpeed;
    vec2 c1 = vec2(0.5 + sin(s * 0.4) * 0.4, 0.5 + cos(s * 0.5) * 0.4);
    vec2 c2 = vec2(0.5 + cos(s * 0.6) * 0.5, 0.5 + sin(s * 0.45) * 0.5);
    vec2 c3 = vec2(0.5 + sin(s * 0.35) * 0.45, 0.5 + cos(s * 0.55) * 0.45);
    vec2 c4 = vec2(0.5 + cos(s * 0.5) * 0.4, 0.5 + sin(s * 0.4) * 0.4);
    vec2 c5 = vec2(0.5 + sin(s * 0.7) * 0.35, 0.5 + cos(s * 0.6) * 0.35);
    vec2 c6 = vec2(0.5 + cos(s * 0.45) * 0.5, 0.5 + sin(s * 0.65) * 0.5);

    float i1 = 1.0 - smoothstep(0.0, uGradientSize, length(uv - c1));
    float i2 = 1.0 - smoothstep(0.0, uGradientSize, length(uv - c2));
    float i3 = 1.0 - smoothstep(0.0, uGradientSize, length(uv - c3));
    float i4 = 1.0 - smoothstep(0.0, uGradientSize, length(uv - c4));
    float i5 = 1.0 - smoothstep(0.0, uGradientSize, length(uv - c5));
    float i6 = 1.0 - smoothstep(0.0, uGradientSize, length(uv - c6));

    vec3 color = vec3(0.0);
    color += uColor1 * i1 * (0.55 + 0.45 * sin(s)) * uColor1Weight;
    color += uColor2 * i2 * (0.55 + 0.45 * cos(s * 1.2)) * uColor2Weight;
    color += uColor3 * i3 * (0.55 + 0.45 * sin(s * 0.8)) * uColor1Weight;
    color += uColor4 * i4 * (0.55 + 0.45 * cos(s * 1.3)) * uColor2Weight;
    color += uColor5 * i5 * (0.55 + 0.45 * sin(s * 1.1)) * uColor1Weight;
    color += uColor6 * i6 * (0.55 + 0.45 * cos(s * 0.9)) * uColor2Weight;

    color = clamp(color, vec3(0.0), vec3(1.0)) * uIntensity;
    float lum = dot(color, vec3(0.299, 0.587, 0.114));
    color = mix(vec3(lum), color, 1.35);
    color = pow(max(color, vec3(0.0)), vec3(0.92));
    float brightness = length(color);
    return mix(uDarkNavy, color, max(brightness * 1.2, 0.15));
}

void main() {
    // The plane covers the whole view, so window position is the plane UV.
    vec2 uv = gl_FragCoord.xy / uViewport;
    vec4 touchTex = texture(uTouchTexture, uv);
    uv.x -= (touchTex.r * 2.0 - 1.0) * 0.8 * touchTex.b;
    uv.y -= (touchTex.g * 2.0 - 1.0) * 0.8 * touchTex.b;
    float dist = length(uv - vec2(0.5));
    float ripple = sin(dist * 20.0 - uTime * 3.0) * 0.04 * touchTex.b;
    uv += vec2(ripple);
    vec3 color = getGradientColor(uv, uTime);
    color += grain(uv, uTime) * uGrainIntensity;
    fragColor = vec4(clamp(color, vec3(0.0), vec3(1.0)), 1.0);
}
`

// ────────────────────────────────── Desktop GL ──────────────────────────────────

const planeVertexShaderSourceGL = `#version 410 core
layout (location = 0) in vec3 position;
uniform mat4 uMVP;
void main() {
    gl_Position = uMVP * vec4(position, 1.0);
}
`

const overlayVertexShaderSourceGL = `#version 410 core
layout (location = 0) in vec2 in_vert;
void main() {
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

// Ring and dot positions arrive in framebuffer pixels with a top-left origin.
const overlayFragmentShaderSourceGL = `#version 410 core
out vec4 fragColor;
uniform vec2  uViewport;
uniform vec2  uRing;
uniform vec2  uDot;
uniform float uScale;
uniform vec3  uColor;
void main() {
    vec2 p = vec2(gl_FragCoord.x, uViewport.y - gl_FragCoord.y);
    float ringRadius = 20.0 * uScale;
    float ringWidth = 1.5 * uScale;
    float d = abs(distance(p, uRing) - ringRadius);
    float ring = 1.0 - smoothstep(ringWidth * 0.5, ringWidth * 0.5 + uScale, d);
    float dotA = 1.0 - smoothstep(3.0 * uScale, 4.0 * uScale, distance(p, uDot));
    float a = max(ring * 0.6, dotA);
    if (a <= 0.0) {
        discard;
    }
    fragColor = vec4(uColor, a);
}
`

// GetGradientFragmentShader returns the WebGL2 source of the gradient pass.
func GetGradientFragmentShader() string {
	return gradientFragmentPreamble + gradientFragmentBody
}

// GetPlaneVertexShader returns the vertex stage for the background plane.
func GetPlaneVertexShader() string {
	return planeVertexShaderSourceGL
}

// GetOverlayShaders returns the vertex and fragment stages of the cursor overlay.
func GetOverlayShaders() (string, string) {
	return overlayVertexShaderSourceGL, overlayFragmentShaderSourceGL
}

// DeclaredUniforms lists the uniform names declared in a GLSL source, in order.
func DeclaredUniforms(source string) []string {
	var names []string
	for _, line := range strings.Split(source, "\n") {
		fields := strings.FieldsFunc(strings.TrimSuffix(strings.TrimSpace(line), ";"), func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
		if len(fields) < 3 || fields[0] != "uniform" {
			continue
		}
		names = append(names, fields[2:]...)
	}
	return names
}

// CheckUniforms reports the first name in want that source does not declare.
func CheckUniforms(source string, want []string) error {
	declared := make(map[string]bool)
	for _, n := range DeclaredUniforms(source) {
		declared[n] = true
	}
	for _, n := range want {
		if !declared[n] {
			return fmt.Errorf("shader does not declare uniform %q", n)
		}
	}
	return nil
}
