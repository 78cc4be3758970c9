package main

const patternVertexShader = `
#version 410 core
in vec3 position;
in vec2 uv;
out vec2 vUV;
void main() {
    vUV = uv;
    gl_Position = vec4(position, 1.0);
}
`

// Diagonal stripes in two shades of color, so face orientation is visible
// on the sphere.
const patternFragmentShader = `
#version 410 core
uniform vec3 color;
in vec2 vUV;
out vec4 fragColor;
void main() {
    float stripe = step(0.5, fract((vUV.x + vUV.y) * 4.0));
    fragColor = vec4(color * (0.6 + 0.4 * stripe), 1.0);
}
`

const sphereVertexShader = `
#version 410 core
in vec3 position;
in vec3 normal;
uniform mat4 localToWorld;
uniform mat4 worldToView;
uniform mat4 viewToScreen;
out vec3 vNormal;
void main() {
    vNormal = mat3(localToWorld) * normal;
    gl_Position = viewToScreen * worldToView * localToWorld * vec4(position, 1.0);
}
`

const sphereFragmentShader = `
#version 410 core
uniform samplerCube cubeMap;
in vec3 vNormal;
out vec4 fragColor;
void main() {
    fragColor = texture(cubeMap, normalize(vNormal));
}
`
