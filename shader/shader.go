// Package shader holds the GLSL sources of the demo scene. Each program has
// a desktop GL 4.1 variant and a GLES 3.0 variant; the GLES sources are also
// valid WebGL2 input for the shader translator.
package shader

// ────────────────────────────────── Desktop GL ──────────────────────────────────

const sceneVertexShaderSourceGL = `#version 410 core
layout (location = 0) in vec2 in_pos;
layout (location = 1) in vec2 in_uv;
layout (location = 2) in vec4 in_tint;
layout (location = 3) in mat4 in_model;

uniform mat4 u_viewproj;

out vec2 v_uv;
out vec4 v_tint;

void main() {
    v_uv = in_uv;
    v_tint = in_tint;
    gl_Position = u_viewproj * in_model * vec4(in_pos, 0.0, 1.0);
}
`

const sceneFragmentShaderSourceGL = `#version 410 core
in vec2 v_uv;
in vec4 v_tint;

uniform sampler2D u_texture;
uniform float     u_time;

out vec4 fragColor;

void main() {
    float pulse = 0.75 + 0.25 * sin(u_time * 3.0);
    fragColor = texture(u_texture, v_uv) * vec4(v_tint.rgb * pulse, v_tint.a);
}
`

const blitVertexShaderSourceGL = `#version 410 core
layout (location = 0) in vec2 in_pos;
layout (location = 1) in vec2 in_uv;
out vec2 v_uv;
void main() {
    v_uv = in_uv;
    gl_Position = vec4(in_pos, 0.0, 1.0);
}
`

const blitFragmentShaderSourceGL = `#version 410 core
in vec2 v_uv;
uniform sampler2D u_texture;
out vec4 fragColor;
void main() {
    fragColor = texture(u_texture, v_uv);
}
`

// ─────────────────────────────────── GLES 3.0 ───────────────────────────────────

const sceneVertexShaderSourceGLES = `#version 300 es
precision highp float;
layout (location = 0) in vec2 in_pos;
layout (location = 1) in vec2 in_uv;
layout (location = 2) in vec4 in_tint;
layout (location = 3) in mat4 in_model;

uniform mat4 u_viewproj;

out vec2 v_uv;
out vec4 v_tint;

void main() {
    v_uv = in_uv;
    v_tint = in_tint;
    gl_Position = u_viewproj * in_model * vec4(in_pos, 0.0, 1.0);
}
`

const sceneFragmentShaderSourceGLES = `#version 300 es
precision highp float;
in vec2 v_uv;
in vec4 v_tint;

uniform sampler2D u_texture;
uniform float     u_time;

out vec4 fragColor;

void main() {
    float pulse = 0.75 + 0.25 * sin(u_time * 3.0);
    fragColor = texture(u_texture, v_uv) * vec4(v_tint.rgb * pulse, v_tint.a);
}
`

const blitVertexShaderSourceGLES = `#version 300 es
precision highp float;
layout (location = 0) in vec2 in_pos;
layout (location = 1) in vec2 in_uv;
out vec2 v_uv;
void main() {
    v_uv = in_uv;
    gl_Position = vec4(in_pos, 0.0, 1.0);
}
`

const blitFragmentShaderSourceGLES = `#version 300 es
precision mediump float;
in vec2 v_uv;
uniform sampler2D u_texture;
out vec4 fragColor;
void main() {
    fragColor = texture(u_texture, v_uv);
}
`

// ────────────────────────────────── Public API ─────────────────────────────────

func SceneVertexShader(isGLES bool) string {
	if isGLES {
		return sceneVertexShaderSourceGLES
	}
	return sceneVertexShaderSourceGL
}

func SceneFragmentShader(isGLES bool) string {
	if isGLES {
		return sceneFragmentShaderSourceGLES
	}
	return sceneFragmentShaderSourceGL
}

func BlitVertexShader(isGLES bool) string {
	if isGLES {
		return blitVertexShaderSourceGLES
	}
	return blitVertexShaderSourceGL
}

func BlitFragmentShader(isGLES bool) string {
	if isGLES {
		return blitFragmentShaderSourceGLES
	}
	return blitFragmentShaderSourceGL
}
