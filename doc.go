// Package quad provides the shading core for 2D UI rendering: textured,
// tinted quads drawn under an orthographic transform.
//
// # Overview
//
// quad defines the data model shared by every backend representation of
// the quad shading pipeline:
//   - Vertex: 2D position, texture coordinate, and a packed 32-bit RGBA
//     color, 20 bytes per vertex.
//   - Mat4: the column-major 4x4 transform uniform, 64 bytes.
//   - RGBA: the normalized color produced by decoding a packed color.
//
// The shading contract itself lives in sub-packages:
//   - shader: the single source of truth for the vertex/fragment formulas
//     and the binding layout, generated into WGSL (native path) and
//     GLSL 450 / SPIR-V (legacy path).
//   - raster: a CPU reference implementation of the contract, used to
//     verify that every generated backend computes identical colors.
//   - gpu: wgpu/hal plumbing that builds the render pipeline, bind
//     groups, and texture registry from the same declarative layout.
//
// # Coordinate System
//
// All convention reconciliation happens once, in [Ortho]:
//   - Origin (0,0) at top-left, X right, Y down in pixel space.
//   - Clip space is WebGPU-style NDC; Y is flipped by the matrix, never
//     by generated shader code.
//   - Vertex positions carry z=0, so depth-range differences between
//     backends cannot affect output.
//
// # Contract
//
// The shading stages are total functions: well-formed inputs cannot fail
// at runtime. Blend state, synchronization, and mesh building belong to
// the calling renderer.
package quad

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
