package quad

import (
	"encoding/binary"
	"math"
)

// Vertex byte layout. Fixed across all backends:
//
//	location 0: position  (vec2<f32>) at offset 0
//	location 1: tex_coord (vec2<f32>) at offset 8
//	location 2: color     (u32)       at offset 16
//
// Total = 20 bytes per vertex.
const (
	VertexStride = 20

	PositionOffset = 0
	TexCoordOffset = 8
	ColorOffset    = 16
)

// Vertex is a single vertex of a UI quad mesh: 2D position, texture
// coordinate, and packed RGBA color. Matches the VertexInput struct of
// the generated shaders.
type Vertex struct {
	// Position in the caller's 2D space (typically pixels).
	X, Y float32

	// Texture coordinates in [0, 1].
	U, V float32

	// Packed RGBA color, red in the most significant byte.
	Color uint32
}

// Quad is an axis-aligned textured rectangle with a uniform tint.
// (X0, Y0) is the top-left corner, (X1, Y1) the bottom-right.
type Quad struct {
	X0, Y0, X1, Y1 float32

	// UV coordinates of the corresponding corners.
	U0, V0, U1, V1 float32

	// Packed RGBA tint applied to all four corners.
	Color uint32
}

// QuadsToVertices converts quads to a vertex array.
// Each quad becomes 4 vertices (for indexed rendering).
func QuadsToVertices(quads []Quad) []Vertex {
	vertices := make([]Vertex, len(quads)*4)

	for i, q := range quads {
		base := i * 4

		// Vertex 0: top-left
		vertices[base+0] = Vertex{X: q.X0, Y: q.Y0, U: q.U0, V: q.V0, Color: q.Color}
		// Vertex 1: top-right
		vertices[base+1] = Vertex{X: q.X1, Y: q.Y0, U: q.U1, V: q.V0, Color: q.Color}
		// Vertex 2: bottom-right
		vertices[base+2] = Vertex{X: q.X1, Y: q.Y1, U: q.U1, V: q.V1, Color: q.Color}
		// Vertex 3: bottom-left
		vertices[base+3] = Vertex{X: q.X0, Y: q.Y1, U: q.U0, V: q.V1, Color: q.Color}
	}

	return vertices
}

// QuadIndices generates index buffer data for a given number of quads.
// Uses the pattern: 0,1,2, 2,3,0 for each quad (two triangles).
func QuadIndices(numQuads int) []uint16 {
	indices := make([]uint16, numQuads*6)

	for i := 0; i < numQuads; i++ {
		base := i * 6
		vertex := uint16(i * 4) //nolint:gosec // quad counts are bounded by uint16 index space

		// First triangle: 0, 1, 2
		indices[base+0] = vertex + 0
		indices[base+1] = vertex + 1
		indices[base+2] = vertex + 2

		// Second triangle: 2, 3, 0
		indices[base+3] = vertex + 2
		indices[base+4] = vertex + 3
		indices[base+5] = vertex + 0
	}

	return indices
}

// BuildVertexData serializes vertices into raw bytes suitable for GPU
// upload. Little-endian, matching the vertex buffer layout above.
func BuildVertexData(vertices []Vertex) []byte {
	if len(vertices) == 0 {
		return nil
	}
	data := make([]byte, len(vertices)*VertexStride)
	off := 0
	for _, v := range vertices {
		writeVertex(data[off:], v)
		off += VertexStride
	}
	return data
}

// writeVertex writes a single vertex into buf.
func writeVertex(buf []byte, v Vertex) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.U))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v.V))
	binary.LittleEndian.PutUint32(buf[16:20], v.Color)
}

// BuildIndexData serializes indices into raw bytes for GPU upload.
func BuildIndexData(indices []uint16) []byte {
	if len(indices) == 0 {
		return nil
	}
	data := make([]byte, len(indices)*2)
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(data[i*2:], idx)
	}
	return data
}
