package raster

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/gogpu/quad"
)

// ErrTexelSizeMismatch is returned when texel data does not match the
// texture dimensions.
var ErrTexelSizeMismatch = errors.New("raster: texel data does not match dimensions")

// FilterMode selects how a texture is interpolated when sampled.
type FilterMode uint8

const (
	// FilterNearest picks the nearest texel.
	FilterNearest FilterMode = iota

	// FilterLinear interpolates bilinearly between the four nearest texels.
	FilterLinear
)

// AddressMode selects how texture coordinates outside [0, 1] are handled.
type AddressMode uint8

const (
	// AddressClampToEdge clamps coordinates to the edge texel.
	AddressClampToEdge AddressMode = iota

	// AddressRepeat wraps coordinates, tiling the texture.
	AddressRepeat
)

// Sampler is the filtering/addressing configuration consumed by the
// composite stage. The stage itself is agnostic to the policy; it only
// forwards coordinates.
type Sampler struct {
	Filter   FilterMode
	AddressU AddressMode
	AddressV AddressMode
}

// DefaultSampler matches the GPU path's default: linear filtering,
// clamp-to-edge addressing.
func DefaultSampler() Sampler {
	return Sampler{
		Filter:   FilterLinear,
		AddressU: AddressClampToEdge,
		AddressV: AddressClampToEdge,
	}
}

// Texture is an RGBA8 image sampled by the composite stage. The shading
// stages only read it, never mutate it.
type Texture struct {
	width  int
	height int
	pix    []byte // 4 bytes per texel, RGBA order
}

// NewTexture creates a texture from RGBA8 texel data (4 bytes per texel,
// row-major).
func NewTexture(width, height int, texels []byte) (*Texture, error) {
	if len(texels) != width*height*4 {
		return nil, fmt.Errorf("%w: %dx%d needs %d bytes, got %d",
			ErrTexelSizeMismatch, width, height, width*height*4, len(texels))
	}
	pix := make([]byte, len(texels))
	copy(pix, texels)
	return &Texture{width: width, height: height, pix: pix}, nil
}

// NewUniformTexture creates a texture filled with a single packed color.
func NewUniformTexture(width, height int, packed uint32) *Texture {
	pix := make([]byte, width*height*4)
	r := byte(packed >> 24)
	g := byte(packed >> 16)
	b := byte(packed >> 8)
	a := byte(packed)
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = r
		pix[i+1] = g
		pix[i+2] = b
		pix[i+3] = a
	}
	return &Texture{width: width, height: height, pix: pix}
}

// Width returns the texture width in texels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in texels.
func (t *Texture) Height() int { return t.height }

// texel fetches the normalized color at integer coordinates, applying
// the sampler's address modes.
func (t *Texture) texel(x, y int, smp Sampler) quad.RGBA {
	x = wrap(x, t.width, smp.AddressU)
	y = wrap(y, t.height, smp.AddressV)
	i := (y*t.width + x) * 4
	return quad.RGBA{
		R: float32(t.pix[i+0]) / 255,
		G: float32(t.pix[i+1]) / 255,
		B: float32(t.pix[i+2]) / 255,
		A: float32(t.pix[i+3]) / 255,
	}
}

// wrap maps an integer texel coordinate into [0, n) per address mode.
func wrap(x, n int, mode AddressMode) int {
	switch mode {
	case AddressRepeat:
		x %= n
		if x < 0 {
			x += n
		}
		return x
	default: // AddressClampToEdge
		if x < 0 {
			return 0
		}
		if x >= n {
			return n - 1
		}
		return x
	}
}

// Sample reads the texture at normalized coordinates (u, v) using the
// sampler's filter and address modes. Texel centers sit at half-texel
// offsets, matching GPU sampling rules.
func (t *Texture) Sample(smp Sampler, u, v float32) quad.RGBA {
	fx := u * float32(t.width)
	fy := v * float32(t.height)

	if smp.Filter == FilterNearest {
		x := int(math32.Floor(fx))
		y := int(math32.Floor(fy))
		return t.texel(x, y, smp)
	}

	// Bilinear: sample the four texels around the footprint center.
	fx -= 0.5
	fy -= 0.5
	x0 := int(math32.Floor(fx))
	y0 := int(math32.Floor(fy))
	ax := fx - float32(x0)
	ay := fy - float32(y0)

	c00 := t.texel(x0, y0, smp)
	c10 := t.texel(x0+1, y0, smp)
	c01 := t.texel(x0, y0+1, smp)
	c11 := t.texel(x0+1, y0+1, smp)

	top := lerp(c00, c10, ax)
	bot := lerp(c01, c11, ax)
	return lerp(top, bot, ay)
}

// lerp interpolates between two colors component-wise.
func lerp(a, b quad.RGBA, t float32) quad.RGBA {
	return quad.RGBA{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}
