package quad

// Packed color byte layout, most-significant-byte-first:
//
//	bits 31-24: red
//	bits 23-16: green
//	bits 15-8:  blue
//	bits 7-0:   alpha
//
// Every backend representation must interpret this layout identically;
// it is the compatibility invariant the shading core exists to preserve.

// RGBA is a normalized color with each channel in [0, 1].
// Channels are float32 to match GPU arithmetic exactly.
type RGBA struct {
	R, G, B, A float32
}

// PackRGBA packs four 8-bit channels into a single 32-bit color,
// red in the most significant byte.
func PackRGBA(r, g, b, a uint8) uint32 {
	return uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a)
}

// UnpackRGBA decodes a packed color into four normalized channels.
// This is the reference decode formula; the generated shaders and the
// raster package must agree with it bit-for-bit.
//
// All four channels are always produced, in RGBA order. Partial decoding
// would break cross-backend parity testing.
func UnpackRGBA(c uint32) RGBA {
	return RGBA{
		R: float32((c>>24)&0xFF) / 255,
		G: float32((c>>16)&0xFF) / 255,
		B: float32((c>>8)&0xFF) / 255,
		A: float32(c&0xFF) / 255,
	}
}

// Mul returns the component-wise product of two colors, alpha included.
// This is the fragment composite formula: decoded vertex color times
// texture sample.
func (c RGBA) Mul(o RGBA) RGBA {
	return RGBA{
		R: c.R * o.R,
		G: c.G * o.G,
		B: c.B * o.B,
		A: c.A * o.A,
	}
}
