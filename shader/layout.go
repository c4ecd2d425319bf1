package shader

// BindingKind identifies the resource type occupying a binding slot.
type BindingKind uint8

const (
	// BindingUniform is the 4x4 transform matrix uniform buffer.
	BindingUniform BindingKind = iota

	// BindingTexture is the sampled 2D texture.
	BindingTexture

	// BindingSampler is the filtering/addressing sampler.
	BindingSampler
)

// String returns a human-readable name for the kind.
func (k BindingKind) String() string {
	switch k {
	case BindingUniform:
		return "uniform"
	case BindingTexture:
		return "texture"
	case BindingSampler:
		return "sampler"
	default:
		return "unknown"
	}
}

// Binding is one resource slot of the shading contract.
type Binding struct {
	// Group is the logical binding group (descriptor set).
	Group uint32

	// Index is the binding index within the group.
	Index uint32

	// Kind is the resource type.
	Kind BindingKind

	// Name is the identifier used in generated shader source.
	Name string
}

// Layout is the declarative resource layout of the quad shading pipeline.
// It is consumed both by the shader generators in this package and by the
// gpu package's bind-group-layout construction.
type Layout struct {
	Bindings []Binding
}

// Find returns the binding with the given kind.
// The quad layout has exactly one of each kind.
func (l Layout) Find(kind BindingKind) (Binding, bool) {
	for _, b := range l.Bindings {
		if b.Kind == kind {
			return b, true
		}
	}
	return Binding{}, false
}

// Groups returns the distinct group numbers in ascending order.
func (l Layout) Groups() []uint32 {
	var groups []uint32
	for _, b := range l.Bindings {
		seen := false
		for _, g := range groups {
			if g == b.Group {
				seen = true
				break
			}
		}
		if !seen {
			groups = append(groups, b.Group)
		}
	}
	for i := 1; i < len(groups); i++ {
		for j := i; j > 0 && groups[j-1] > groups[j]; j-- {
			groups[j-1], groups[j] = groups[j], groups[j-1]
		}
	}
	return groups
}

// Caps are generator capability flags. Each backend profile is a Caps
// value; divergence between backends lives here instead of in parallel
// hand-maintained shader files.
type Caps struct {
	// HexLiterals reports whether the target's literal syntax supports
	// hexadecimal integer constants. When false the generators emit
	// equivalent decimal mask constants.
	HexLiterals bool

	// UnifiedBindings places the texture and sampler in the uniform's
	// binding group (single binding space) instead of a second group.
	UnifiedBindings bool
}

// NativeCaps is the profile for the native WGSL path. Decimal masks keep
// the source compatible with pre-hex-literal WGSL parsers; the split
// binding layout matches WebGPU resource-grouping conventions.
func NativeCaps() Caps {
	return Caps{HexLiterals: false, UnifiedBindings: false}
}

// LegacyCaps is the profile for the legacy intermediate-representation
// (SPIR-V) path: hex literals are available, and texture and sampler
// share the uniform's binding space.
func LegacyCaps() Caps {
	return Caps{HexLiterals: true, UnifiedBindings: true}
}

// BindingLayout returns the resource layout for the given capabilities:
//
//	split:   group 0 binding 0 = transform uniform,
//	         group 1 binding 0 = texture, group 1 binding 1 = sampler.
//	unified: group 0 bindings 0, 1, 2 = uniform, texture, sampler.
func BindingLayout(caps Caps) Layout {
	if caps.UnifiedBindings {
		return Layout{Bindings: []Binding{
			{Group: 0, Index: 0, Kind: BindingUniform, Name: "transform"},
			{Group: 0, Index: 1, Kind: BindingTexture, Name: "quad_texture"},
			{Group: 0, Index: 2, Kind: BindingSampler, Name: "quad_sampler"},
		}}
	}
	return Layout{Bindings: []Binding{
		{Group: 0, Index: 0, Kind: BindingUniform, Name: "transform"},
		{Group: 1, Index: 0, Kind: BindingTexture, Name: "quad_texture"},
		{Group: 1, Index: 1, Kind: BindingSampler, Name: "quad_sampler"},
	}}
}

// maskLiteral returns the 0xFF channel mask in the target's literal
// syntax: hexadecimal when available, decimal otherwise.
func (c Caps) maskLiteral() string {
	if c.HexLiterals {
		return "0xFFu"
	}
	return "255u"
}
