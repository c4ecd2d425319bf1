package raster

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/quad"
	"github.com/gogpu/quad/shader"
)

// Decoder decodes a packed vertex color the way one generated backend
// does. All decoders must agree bit-for-bit; the variants exist so that
// parity tests execute each backend's emitted arithmetic rather than a
// single idealized formula.
type Decoder func(uint32) quad.RGBA

// decodeHex mirrors the hex-literal decode expression:
// ((c >> N) & 0xFF) / 255 per channel.
func decodeHex(c uint32) quad.RGBA {
	return quad.RGBA{
		R: float32((c>>24)&0xFF) / 255.0,
		G: float32((c>>16)&0xFF) / 255.0,
		B: float32((c>>8)&0xFF) / 255.0,
		A: float32(c&0xFF) / 255.0,
	}
}

// decodeDecimal mirrors the decimal-mask decode expression emitted for
// targets without hexadecimal literals: ((c >> N) & 255) / 255.
func decodeDecimal(c uint32) quad.RGBA {
	return quad.RGBA{
		R: float32((c>>24)&255) / 255.0,
		G: float32((c>>16)&255) / 255.0,
		B: float32((c>>8)&255) / 255.0,
		A: float32(c&255) / 255.0,
	}
}

// DecoderFor returns the decode arithmetic matching a generator profile.
func DecoderFor(caps shader.Caps) Decoder {
	if caps.HexLiterals {
		return decodeHex
	}
	return decodeDecimal
}

// Framebuffer is the render target of the reference pipeline. Pixels are
// kept as normalized float32 colors so parity comparisons are not
// quantized by an 8-bit store.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []quad.RGBA // row-major, origin top-left
}

// NewFramebuffer creates a zero-cleared framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]quad.RGBA, width*height),
	}
}

// At returns the pixel at (x, y).
func (f *Framebuffer) At(x, y int) quad.RGBA {
	return f.Pix[y*f.Width+x]
}

// Pipeline executes the quad shading contract on the CPU. The transform,
// texture, and sampler are read-only during a draw, as on the GPU.
type Pipeline struct {
	Transform quad.Mat4
	Texture   *Texture
	Sampler   Sampler
	Decode    Decoder
}

// shadedVertex is the vertex-stage output fed to the rasterizer.
type shadedVertex struct {
	// Screen-space position after viewport transform.
	sx, sy float32

	// Pass-through texture coordinate.
	u, v float32

	// Decoded vertex color.
	color quad.RGBA
}

// vertexStage runs the transform and decode stages for one vertex and
// applies the viewport transform for the given framebuffer.
func (p *Pipeline) vertexStage(v quad.Vertex, fb *Framebuffer) shadedVertex {
	clip := p.Transform.MulVec4([4]float32{v.X, v.Y, 0, 1})

	// 2D UI geometry keeps w=1, so NDC equals clip here. Viewport
	// transform flips Y: NDC Y is up, framebuffer rows grow down.
	ndcX := clip[0] / clip[3]
	ndcY := clip[1] / clip[3]

	return shadedVertex{
		sx:    (ndcX + 1) * 0.5 * float32(fb.Width),
		sy:    (1 - ndcY) * 0.5 * float32(fb.Height),
		u:     v.U,
		v:     v.V,
		color: p.Decode(v.Color),
	}
}

// fragmentStage composes the interpolated color with the texture sample.
func (p *Pipeline) fragmentStage(color quad.RGBA, u, v float32) quad.RGBA {
	return color.Mul(p.Texture.Sample(p.Sampler, u, v))
}

// DrawIndexed rasterizes indexed triangles into the framebuffer. Indices
// are consumed in groups of three; a trailing partial group is ignored.
func (p *Pipeline) DrawIndexed(fb *Framebuffer, vertices []quad.Vertex, indices []uint16) {
	for i := 0; i+2 < len(indices); i += 3 {
		a := p.vertexStage(vertices[indices[i]], fb)
		b := p.vertexStage(vertices[indices[i+1]], fb)
		c := p.vertexStage(vertices[indices[i+2]], fb)
		p.rasterize(fb, a, b, c)
	}
}

// edge computes the signed area of the parallelogram spanned by (a->b)
// and (a->p); its sign tells which side of the edge p lies on.
func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// rasterize fills one screen-space triangle, interpolating texture
// coordinates and color barycentrically. Both windings are accepted;
// face culling is the calling renderer's pipeline state, not part of
// the shading contract.
func (p *Pipeline) rasterize(fb *Framebuffer, a, b, c shadedVertex) {
	area := edge(a.sx, a.sy, b.sx, b.sy, c.sx, c.sy)
	if area == 0 {
		return
	}

	minX := int(math32.Floor(math32.Min(a.sx, math32.Min(b.sx, c.sx))))
	maxX := int(math32.Ceil(math32.Max(a.sx, math32.Max(b.sx, c.sx))))
	minY := int(math32.Floor(math32.Min(a.sy, math32.Min(b.sy, c.sy))))
	maxY := int(math32.Ceil(math32.Max(a.sy, math32.Max(b.sy, c.sy))))

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > fb.Width {
		maxX = fb.Width
	}
	if maxY > fb.Height {
		maxY = fb.Height
	}

	for y := minY; y < maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x < maxX; x++ {
			px := float32(x) + 0.5

			w0 := edge(b.sx, b.sy, c.sx, c.sy, px, py) / area
			w1 := edge(c.sx, c.sy, a.sx, a.sy, px, py) / area
			w2 := edge(a.sx, a.sy, b.sx, b.sy, px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			u := w0*a.u + w1*b.u + w2*c.u
			v := w0*a.v + w1*b.v + w2*c.v
			color := quad.RGBA{
				R: w0*a.color.R + w1*b.color.R + w2*c.color.R,
				G: w0*a.color.G + w1*b.color.G + w2*c.color.G,
				B: w0*a.color.B + w1*b.color.B + w2*c.color.B,
				A: w0*a.color.A + w1*b.color.A + w2*c.color.A,
			}

			fb.Pix[y*fb.Width+x] = p.fragmentStage(color, u, v)
		}
	}
}
