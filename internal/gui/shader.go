package gui

// metaballFS fuses the particle discs into one soft organism: a gaussian
// blur over the offscreen pass followed by a hard alpha threshold. Without
// this pass the output is a cluster of plain circles.
const metaballFS = `
#version 330

in vec2 fragTexCoord;
in vec4 fragColor;

uniform sampler2D texture0;
uniform vec2 resolution;

out vec4 finalColor;

void main() {
    vec2 texel = 1.0 / resolution;

    vec4 acc = vec4(0.0);
    float total = 0.0;
    for (int x = -4; x <= 4; x++) {
        for (int y = -4; y <= 4; y++) {
            float w = exp(-float(x*x + y*y) / 12.0);
            acc += texture(texture0, fragTexCoord + vec2(float(x), float(y)) * texel * 2.0) * w;
            total += w;
        }
    }
    acc /= total;

    float mask = smoothstep(0.40, 0.60, acc.a);
    vec3 col = acc.rgb / max(acc.a, 1e-4);
    finalColor = vec4(col, mask) * fragColor;
}
`
