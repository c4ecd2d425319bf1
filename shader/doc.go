// Package shader is the single source of truth for the quad shading
// contract. The vertex and fragment formulas and the resource binding
// layout are described once, declaratively, and generated into each
// backend's native representation:
//
//   - WGSL for the native WebGPU path (see WGSL).
//   - GLSL 450 for the legacy SPIR-V ingestion path (see GLSLVertex,
//     GLSLFragment), plus direct SPIR-V words via naga (see CompileSPIRV).
//
// Backend divergence is expressed as generator capabilities (Caps), not
// as parallel hand-written shader files:
//
//   - Caps.HexLiterals: targets without hexadecimal literal syntax get
//     equivalent decimal mask constants. The numeric result is identical;
//     the raster package's parity tests assert it.
//   - Caps.UnifiedBindings: targets that keep texture and sampler in the
//     same binding space as the uniform get a single group; otherwise the
//     uniform occupies group 0 and the texture/sampler pair group 1.
//
// The BindingLayout the generators consume is the same description the
// gpu package turns into bind group layouts, so shader text and pipeline
// resources cannot drift apart.
package shader
