package shader

import (
	"fmt"
	"strings"
)

// WGSL generates the quad shader in WGSL for the given capabilities.
// Both entry points live in one module: vs_main transforms the position
// and decodes the packed color, fs_main samples the texture and
// multiplies by the interpolated color.
func WGSL(caps Caps) string {
	layout := BindingLayout(caps)
	uniform, _ := layout.Find(BindingUniform)
	texture, _ := layout.Find(BindingTexture)
	sampler, _ := layout.Find(BindingSampler)
	mask := caps.maskLiteral()

	var b strings.Builder

	b.WriteString("struct Transform {\n")
	b.WriteString("    matrix: mat4x4<f32>,\n")
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "@group(%d) @binding(%d) var<uniform> %s: Transform;\n",
		uniform.Group, uniform.Index, uniform.Name)
	fmt.Fprintf(&b, "@group(%d) @binding(%d) var %s: texture_2d<f32>;\n",
		texture.Group, texture.Index, texture.Name)
	fmt.Fprintf(&b, "@group(%d) @binding(%d) var %s: sampler;\n\n",
		sampler.Group, sampler.Index, sampler.Name)

	b.WriteString(`struct VertexInput {
    @location(0) position: vec2<f32>,
    @location(1) tex_coord: vec2<f32>,
    @location(2) color: u32,
}

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) tex_coord: vec2<f32>,
    @location(1) color: vec4<f32>,
}

`)

	fmt.Fprintf(&b, `@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.position = %s.matrix * vec4<f32>(in.position, 0.0, 1.0);
    out.tex_coord = in.tex_coord;
    out.color = vec4<f32>(
        f32((in.color >> 24u) & %s),
        f32((in.color >> 16u) & %s),
        f32((in.color >> 8u) & %s),
        f32(in.color & %s)
    ) / 255.0;
    return out;
}

`, uniform.Name, mask, mask, mask, mask)

	fmt.Fprintf(&b, `@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return in.color * textureSample(%s, %s, in.tex_coord);
}
`, texture.Name, sampler.Name)

	return b.String()
}
