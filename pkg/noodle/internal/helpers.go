package internal

func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func AbsF(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp bounds v to [lo, hi]. When hi < lo the lower bound wins.
func Clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// HexToColor converts a 0xRRGGBB value to an opaque Color.
func HexToColor(hex uint32) Color {
	r := uint8((hex >> 16) & 0xFF)
	g := uint8((hex >> 8) & 0xFF)
	b := uint8(hex & 0xFF)

	return RGBA(r, g, b, 255)
}

// ColorToHex is the inverse of HexToColor, dropping alpha.
func ColorToHex(c Color) uint32 {
	return uint32(c.R())<<16 | uint32(c.G())<<8 | uint32(c.B())
}
