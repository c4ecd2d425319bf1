// Package raster is a CPU reference implementation of the quad shading
// contract. It executes the same three stages the generated shaders do —
// transform, color decode, texture composite — in float32 arithmetic,
// and exists so that every generated backend representation can be
// checked against a single executable ground truth.
//
// The decode arithmetic is selected per backend profile (see DecoderFor),
// mirroring the exact expression each generator emits. Parity tests
// render identical input through each profile and require identical
// output, which is the cross-backend equivalence property the shading
// core must preserve.
//
// The rasterizer writes source color directly; blending is the calling
// renderer's concern, exactly as on the GPU path.
package raster
