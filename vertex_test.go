package quad

import (
	"encoding/binary"
	"math"
	"testing"
)

// TestQuadsToVertices tests quad to vertex conversion.
func TestQuadsToVertices(t *testing.T) {
	tests := []struct {
		name  string
		quads []Quad
		want  int // expected vertex count
	}{
		{
			name:  "empty",
			quads: nil,
			want:  0,
		},
		{
			name: "single quad",
			quads: []Quad{
				{X0: 0, Y0: 0, X1: 10, Y1: 10, U0: 0, V0: 0, U1: 1, V1: 1, Color: 0xFF0000FF},
			},
			want: 4,
		},
		{
			name: "multiple quads",
			quads: []Quad{
				{X0: 0, Y0: 0, X1: 10, Y1: 10, U1: 0.5, V1: 0.5, Color: 0xFFFFFFFF},
				{X0: 10, Y0: 0, X1: 20, Y1: 10, U0: 0.5, U1: 1, V1: 0.5, Color: 0x00FF00FF},
			},
			want: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vertices := QuadsToVertices(tt.quads)
			if len(vertices) != tt.want {
				t.Fatalf("QuadsToVertices() got %d vertices, want %d", len(vertices), tt.want)
			}

			if len(tt.quads) > 0 {
				q := tt.quads[0]
				v := vertices[0:4]

				// Vertex 0: top-left
				if v[0].X != q.X0 || v[0].Y != q.Y0 {
					t.Errorf("vertex 0 position: got (%f,%f), want (%f,%f)", v[0].X, v[0].Y, q.X0, q.Y0)
				}
				// Vertex 2: bottom-right
				if v[2].X != q.X1 || v[2].Y != q.Y1 {
					t.Errorf("vertex 2 position: got (%f,%f), want (%f,%f)", v[2].X, v[2].Y, q.X1, q.Y1)
				}
				for i := range v {
					if v[i].Color != q.Color {
						t.Errorf("vertex %d color: got %08X, want %08X", i, v[i].Color, q.Color)
					}
				}
			}
		})
	}
}

// TestQuadIndices verifies the two-triangle index pattern per quad.
func TestQuadIndices(t *testing.T) {
	indices := QuadIndices(2)
	want := []uint16{0, 1, 2, 2, 3, 0, 4, 5, 6, 6, 7, 4}
	if len(indices) != len(want) {
		t.Fatalf("got %d indices, want %d", len(indices), len(want))
	}
	for i := range want {
		if indices[i] != want[i] {
			t.Errorf("index %d: got %d, want %d", i, indices[i], want[i])
		}
	}
}

// TestBuildVertexData verifies the 20-byte little-endian vertex layout:
// position at offset 0, tex_coord at 8, packed color at 16.
func TestBuildVertexData(t *testing.T) {
	v := Vertex{X: 1, Y: 2, U: 0.25, V: 0.75, Color: 0xAABBCCDD}
	data := BuildVertexData([]Vertex{v})

	if len(data) != VertexStride {
		t.Fatalf("got %d bytes, want %d", len(data), VertexStride)
	}

	readF32 := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
	}
	if got := readF32(PositionOffset); got != v.X {
		t.Errorf("x: got %v, want %v", got, v.X)
	}
	if got := readF32(PositionOffset + 4); got != v.Y {
		t.Errorf("y: got %v, want %v", got, v.Y)
	}
	if got := readF32(TexCoordOffset); got != v.U {
		t.Errorf("u: got %v, want %v", got, v.U)
	}
	if got := readF32(TexCoordOffset + 4); got != v.V {
		t.Errorf("v: got %v, want %v", got, v.V)
	}
	if got := binary.LittleEndian.Uint32(data[ColorOffset:]); got != v.Color {
		t.Errorf("color: got %08X, want %08X", got, v.Color)
	}

	if BuildVertexData(nil) != nil {
		t.Error("BuildVertexData(nil) should return nil")
	}
}

// TestBuildIndexData verifies little-endian u16 serialization.
func TestBuildIndexData(t *testing.T) {
	data := BuildIndexData([]uint16{0x0102, 0x0304})
	want := []byte{0x02, 0x01, 0x04, 0x03}
	if len(data) != len(want) {
		t.Fatalf("got %d bytes, want %d", len(data), len(want))
	}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("byte %d: got %02X, want %02X", i, data[i], want[i])
		}
	}
}
