package shader

import (
	"fmt"
	"strings"
)

// GLSL 450 generation for the legacy SPIR-V ingestion path. Vulkan-style
// GLSL keeps texture and sampler as separate descriptors; the fragment
// stage combines them at the sample site, so the binding layout stays
// structurally identical to the WGSL path.

// GLSLVertex generates the vertex stage in GLSL 450.
func GLSLVertex(caps Caps) string {
	layout := BindingLayout(caps)
	uniform, _ := layout.Find(BindingUniform)
	mask := caps.maskLiteral()

	var b strings.Builder

	b.WriteString("#version 450\n\n")

	fmt.Fprintf(&b, "layout(set = %d, binding = %d) uniform Transform {\n",
		uniform.Group, uniform.Index)
	b.WriteString("    mat4 matrix;\n")
	fmt.Fprintf(&b, "} %s;\n\n", uniform.Name)

	b.WriteString(`layout(location = 0) in vec2 a_position;
layout(location = 1) in vec2 a_tex_coord;
layout(location = 2) in uint a_color;

layout(location = 0) out vec2 v_tex_coord;
layout(location = 1) out vec4 v_color;

`)

	fmt.Fprintf(&b, `void main() {
    gl_Position = %s.matrix * vec4(a_position, 0.0, 1.0);
    v_tex_coord = a_tex_coord;
    v_color = vec4(
        float((a_color >> 24) & %s),
        float((a_color >> 16) & %s),
        float((a_color >> 8) & %s),
        float(a_color & %s)
    ) / 255.0;
}
`, uniform.Name, mask, mask, mask, mask)

	return b.String()
}

// GLSLFragment generates the fragment (composite) stage in GLSL 450.
func GLSLFragment(caps Caps) string {
	layout := BindingLayout(caps)
	texture, _ := layout.Find(BindingTexture)
	sampler, _ := layout.Find(BindingSampler)

	var b strings.Builder

	b.WriteString("#version 450\n\n")

	fmt.Fprintf(&b, "layout(set = %d, binding = %d) uniform texture2D %s;\n",
		texture.Group, texture.Index, texture.Name)
	fmt.Fprintf(&b, "layout(set = %d, binding = %d) uniform sampler %s;\n\n",
		sampler.Group, sampler.Index, sampler.Name)

	b.WriteString(`layout(location = 0) in vec2 v_tex_coord;
layout(location = 1) in vec4 v_color;

layout(location = 0) out vec4 o_color;

`)

	fmt.Fprintf(&b, `void main() {
    o_color = v_color * texture(sampler2D(%s, %s), v_tex_coord);
}
`, texture.Name, sampler.Name)

	return b.String()
}
