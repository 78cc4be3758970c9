package renderer

import "render-kernel/scene"

// GLSL 4.10 core sources for the passes the renderer runs itself. Vertex
// inputs use the scene attribute names.

const passVertexShader = `
#version 410 core

in vec3 position;
in vec2 uv;

out vec2 vUV;

void main() {
    vUV = uv;
    gl_Position = vec4(position, 1.0);
}
`

// equirectangularFragmentShader maps the pass uv of one cube face to a
// direction and samples the latitude/longitude image along it.
const equirectangularFragmentShader = `
#version 410 core

uniform sampler2D equirectangularMap;
uniform int faceIndex;

in vec2 vUV;
out vec4 fragColor;

const float PI = 3.14159265359;

vec3 faceDirection(int face, vec2 uv) {
    vec2 p = uv * 2.0 - 1.0;
    if (face == 0) return vec3( 1.0, -p.y, -p.x);
    if (face == 1) return vec3(-1.0, -p.y,  p.x);
    if (face == 2) return vec3( p.x,  1.0,  p.y);
    if (face == 3) return vec3( p.x, -1.0, -p.y);
    if (face == 4) return vec3( p.x, -p.y,  1.0);
    return vec3(-p.x, -p.y, -1.0);
}

void main() {
    vec3 dir = normalize(faceDirection(faceIndex, vUV));
    vec2 st = vec2(
        atan(dir.z, dir.x) / (2.0 * PI) + 0.5,
        asin(clamp(dir.y, -1.0, 1.0)) / PI + 0.5);
    fragColor = texture(equirectangularMap, st);
}
`

// EquirectangularMaterial projects a latitude/longitude image onto one cube
// face per draw. Uniforms: equirectangularMap (sampler2D), faceIndex (int).
func EquirectangularMaterial() *scene.ShaderMaterial {
	return scene.NewShaderMaterial("equirectangular", passVertexShader, equirectangularFragmentShader)
}
