package quad

import (
	"encoding/binary"
	"math"
)

// TransformSize is the byte size of the transform uniform:
// one 4x4 float32 matrix = 64 bytes.
const TransformSize = 64

// Mat4 is a 4x4 float32 matrix in column-major order: element (row r,
// column c) is stored at index c*4+r. This matches the memory layout of
// mat4x4<f32> in WGSL and mat4 in GLSL, so Bytes can be uploaded to the
// transform uniform without reshuffling.
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Ortho returns the orthographic transform mapping pixel space
// (origin top-left, Y down, width x height) to clip space.
//
// This constructor is the single place where coordinate conventions are
// reconciled: the Y flip lives here, never in generated shader code, and
// z is left at 0 so backend depth-range differences cannot matter.
func Ortho(width, height float32) Mat4 {
	return Mat4{
		2 / width, 0, 0, 0,
		0, -2 / height, 0, 0,
		0, 0, 1, 0,
		-1, 1, 0, 1,
	}
}

// Mul returns m * o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for c := 0; c < 4; c++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * o[c*4+k]
			}
			r[c*4+row] = sum
		}
	}
	return r
}

// MulVec4 returns m * v for a column vector v.
func (m Mat4) MulVec4(v [4]float32) [4]float32 {
	var r [4]float32
	for row := 0; row < 4; row++ {
		r[row] = m[0*4+row]*v[0] + m[1*4+row]*v[1] + m[2*4+row]*v[2] + m[3*4+row]*v[3]
	}
	return r
}

// TransformPoint applies the vertex-stage transform to a 2D position:
// m * vec4(x, y, 0, 1).
func (m Mat4) TransformPoint(x, y float32) [4]float32 {
	return m.MulVec4([4]float32{x, y, 0, 1})
}

// Bytes serializes the matrix into the 64-byte little-endian form the
// transform uniform buffer expects.
func (m Mat4) Bytes() []byte {
	buf := make([]byte, TransformSize)
	for i, v := range m {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}
