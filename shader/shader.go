package shader

// All sources are GLSL ES 3.00. Desktop contexts run them through the
// translator package first.

// ───────────────────────────── Rotating colored cube ─────────────────────────────

const colorCubeVertexSource = `#version 300 es
in vec4 aVertexPosition;
in vec4 aVertexColor;

uniform mat4 uModelViewMatrix;
uniform mat4 uProjectionMatrix;

out vec4 vColor;

void main() {
  gl_Position = uProjectionMatrix * uModelViewMatrix * aVertexPosition;
  vColor = aVertexColor;
}
`

const colorCubeFragmentSource = `#version 300 es
precision mediump float;

in vec4 vColor;
out vec4 fragColor;

void main() {
  fragColor = vColor;
}
`

// ───────────────────────────── Textured cube ─────────────────────────────────────

const textureCubeVertexSource = `#version 300 es
in vec4 a_position;
in vec2 a_texcoord;
in vec4 a_color;

uniform mat4 u_projection_matrix;
uniform mat4 u_model_view_matrix;

out vec2 v_texcoord;
out vec4 v_color;

void main() {
  gl_Position = u_projection_matrix * u_model_view_matrix * a_position;
  v_texcoord = a_texcoord;
  v_color = a_color;
}
`

// The sampled texel is tinted by the face color.
const textureCubeFragmentSource = `#version 300 es
precision highp float;

in vec2 v_texcoord;
in vec4 v_color;

uniform sampler2D u_texture;

out vec4 fragColor;

void main() {
  fragColor = texture(u_texture, v_texcoord) * v_color;
}
`

// ───────────────────────────── Texture board ─────────────────────────────────────

// Positions are in pixels with the origin at the top left.
const textureBoardVertexSource = `#version 300 es
in vec2 a_position;
in vec2 a_texcoord;

uniform vec2 u_resolution;

out vec2 v_texcoord;

void main() {
  vec2 zero_one_space = a_position / u_resolution;
  vec2 zero_two_space = zero_one_space * 2.0;
  vec2 clipspace = zero_two_space - 1.0;

  gl_Position = vec4(clipspace * vec2(1, -1), 0.0, 1.0);
  v_texcoord = a_texcoord;
}
`

const textureBoardFragmentSource = `#version 300 es
precision highp float;

uniform sampler2D u_image;

in vec2 v_texcoord;
out vec4 fragColor;

void main() {
  fragColor = texture(u_image, v_texcoord);
}
`

// ───────────────────────────── Fragment canvas ───────────────────────────────────

const canvasVertexSource = `#version 300 es
in vec2 position;

void main() {
  gl_Position = vec4(position, 0.0, 1.0);
}
`

// The default canvas shader pulses red over time, shades green/blue by
// position and draws a soft spot under the pointer.
const canvasFragmentSource = `#version 300 es
precision highp float;

out vec4 fragColor;

uniform float u_time;
uniform vec2 u_resolution;
uniform vec2 u_mouse;

void main() {
  vec2 pos = gl_FragCoord.xy / u_resolution.xy;
  float spot = 1.0 - smoothstep(0.0, 40.0, distance(gl_FragCoord.xy, u_mouse));

  fragColor = vec4(abs(sin(u_time)), pos + spot * 0.25, 1.0);
}
`

// ────────────────────────────────── Public API ─────────────────────────────────

// Source is a vertex/fragment pair.
type Source struct {
	Vertex   string
	Fragment string
}

func ColorCube() Source {
	return Source{Vertex: colorCubeVertexSource, Fragment: colorCubeFragmentSource}
}

func TextureCube() Source {
	return Source{Vertex: textureCubeVertexSource, Fragment: textureCubeFragmentSource}
}

func TextureBoard() Source {
	return Source{Vertex: textureBoardVertexSource, Fragment: textureBoardFragmentSource}
}

// Canvas returns the canvas pair. A non-empty fragment replaces the default
// fragment shader; it may declare u_time, u_resolution and u_mouse.
func Canvas(fragment string) Source {
	if fragment == "" {
		fragment = canvasFragmentSource
	}
	return Source{Vertex: canvasVertexSource, Fragment: fragment}
}
