package shader

import (
	"fmt"
	"strings"
	"testing"
)

// profiles returns the two backend profiles under test.
func profiles() map[string]Caps {
	return map[string]Caps{
		"native": NativeCaps(),
		"legacy": LegacyCaps(),
	}
}

// TestBindingLayout verifies the split and unified binding assignments.
func TestBindingLayout(t *testing.T) {
	tests := []struct {
		name       string
		caps       Caps
		wantGroups []uint32
		want       map[BindingKind][2]uint32 // kind -> (group, index)
	}{
		{
			name:       "split",
			caps:       Caps{UnifiedBindings: false},
			wantGroups: []uint32{0, 1},
			want: map[BindingKind][2]uint32{
				BindingUniform: {0, 0},
				BindingTexture: {1, 0},
				BindingSampler: {1, 1},
			},
		},
		{
			name:       "unified",
			caps:       Caps{UnifiedBindings: true},
			wantGroups: []uint32{0},
			want: map[BindingKind][2]uint32{
				BindingUniform: {0, 0},
				BindingTexture: {0, 1},
				BindingSampler: {0, 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := BindingLayout(tt.caps)
			if len(layout.Bindings) != 3 {
				t.Fatalf("got %d bindings, want 3", len(layout.Bindings))
			}

			groups := layout.Groups()
			if len(groups) != len(tt.wantGroups) {
				t.Fatalf("groups: got %v, want %v", groups, tt.wantGroups)
			}
			for i := range groups {
				if groups[i] != tt.wantGroups[i] {
					t.Fatalf("groups: got %v, want %v", groups, tt.wantGroups)
				}
			}

			for kind, slot := range tt.want {
				b, ok := layout.Find(kind)
				if !ok {
					t.Fatalf("missing %v binding", kind)
				}
				if b.Group != slot[0] || b.Index != slot[1] {
					t.Errorf("%v: got group %d binding %d, want group %d binding %d",
						kind, b.Group, b.Index, slot[0], slot[1])
				}
			}
		})
	}
}

// TestWGSLStructure checks that generated WGSL declares both entry points
// and every binding slot the layout describes.
func TestWGSLStructure(t *testing.T) {
	for name, caps := range profiles() {
		t.Run(name, func(t *testing.T) {
			source := WGSL(caps)
			if source == "" {
				t.Fatal("generated WGSL is empty")
			}

			expectedStrings := []string{
				"Transform",
				"VertexInput",
				"VertexOutput",
				"quad_texture",
				"quad_sampler",
				"vs_main",
				"fs_main",
				"textureSample",
			}
			for _, expected := range expectedStrings {
				if !strings.Contains(source, expected) {
					t.Errorf("shader source missing expected string: %q", expected)
				}
			}

			if !strings.Contains(source, "@vertex") {
				t.Error("shader missing @vertex entry point")
			}
			if !strings.Contains(source, "@fragment") {
				t.Error("shader missing @fragment entry point")
			}

			for _, b := range BindingLayout(caps).Bindings {
				decl := fmt.Sprintf("@group(%d) @binding(%d)", b.Group, b.Index)
				if !strings.Contains(source, decl) {
					t.Errorf("shader missing %s for %v", decl, b.Kind)
				}
			}
		})
	}
}

// TestWGSLLiteralCapability checks that the mask literal follows the
// HexLiterals capability.
func TestWGSLLiteralCapability(t *testing.T) {
	noHex := WGSL(Caps{HexLiterals: false})
	if strings.Contains(noHex, "0x") {
		t.Error("HexLiterals=false source contains a hex literal")
	}
	if !strings.Contains(noHex, "& 255u") {
		t.Error("HexLiterals=false source missing decimal mask")
	}

	hex := WGSL(Caps{HexLiterals: true})
	if !strings.Contains(hex, "& 0xFFu") {
		t.Error("HexLiterals=true source missing hex mask")
	}
}

// TestWGSLDecodeOrder verifies the RGBA channel shift order in the
// generated decode expression.
func TestWGSLDecodeOrder(t *testing.T) {
	source := WGSL(NativeCaps())
	r := strings.Index(source, ">> 24u")
	g := strings.Index(source, ">> 16u")
	b := strings.Index(source, ">> 8u")
	a := strings.Index(source, "f32(in.color & ")
	if r < 0 || g < 0 || b < 0 || a < 0 {
		t.Fatal("decode expression missing channel shifts")
	}
	if !(r < g && g < b && b < a) {
		t.Error("decode channels are not in RGBA order")
	}
}

// TestGLSLStructure checks the legacy GLSL pair against the layout.
func TestGLSLStructure(t *testing.T) {
	for name, caps := range profiles() {
		t.Run(name, func(t *testing.T) {
			vert := GLSLVertex(caps)
			frag := GLSLFragment(caps)

			for _, src := range []string{vert, frag} {
				if !strings.HasPrefix(src, "#version 450") {
					t.Error("GLSL source missing #version 450 header")
				}
			}

			layout := BindingLayout(caps)
			uniform, _ := layout.Find(BindingUniform)
			texture, _ := layout.Find(BindingTexture)
			sampler, _ := layout.Find(BindingSampler)

			if !strings.Contains(vert, fmt.Sprintf("layout(set = %d, binding = %d) uniform Transform", uniform.Group, uniform.Index)) {
				t.Error("vertex stage missing transform uniform declaration")
			}
			if !strings.Contains(vert, "gl_Position") {
				t.Error("vertex stage missing gl_Position write")
			}
			if !strings.Contains(frag, fmt.Sprintf("layout(set = %d, binding = %d) uniform texture2D", texture.Group, texture.Index)) {
				t.Error("fragment stage missing texture declaration")
			}
			if !strings.Contains(frag, fmt.Sprintf("layout(set = %d, binding = %d) uniform sampler", sampler.Group, sampler.Index)) {
				t.Error("fragment stage missing sampler declaration")
			}
			if !strings.Contains(frag, "sampler2D(quad_texture, quad_sampler)") {
				t.Error("fragment stage missing combined sample site")
			}
			if !strings.Contains(frag, "v_color * texture(") {
				t.Error("fragment stage missing color modulation")
			}
		})
	}
}

// TestWGSLValidates lowers the generated WGSL through the naga frontend.
func TestWGSLValidates(t *testing.T) {
	for name, caps := range profiles() {
		t.Run(name, func(t *testing.T) {
			if err := ValidateWGSL(WGSL(caps)); err != nil {
				t.Fatalf("generated WGSL does not validate: %v", err)
			}
		})
	}
}

// TestCompileSPIRV compiles both profiles to SPIR-V and checks the module
// header.
func TestCompileSPIRV(t *testing.T) {
	for name, caps := range profiles() {
		t.Run(name, func(t *testing.T) {
			code, err := CompileSPIRV(caps)
			if err != nil {
				t.Fatalf("CompileSPIRV failed: %v", err)
			}
			if len(code) == 0 {
				t.Fatal("empty SPIR-V module")
			}
			if code[0] != spirvMagic {
				t.Errorf("bad magic: got 0x%08X, want 0x%08X", code[0], uint32(spirvMagic))
			}
		})
	}
}
