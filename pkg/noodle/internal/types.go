package internal

// Color is packed as 0xAABBGGRR, the byte order of an RGBA8 pixel in memory.
type Color uint32

func (c Color) R() uint8 { return uint8(c) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c >> 16) }
func (c Color) A() uint8 { return uint8(c >> 24) }

// RGBA packs the four channels into a Color.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r))
}

// TextureID is an opaque handle owned by a Renderer. Zero is never a valid texture.
type TextureID uint32

const NoTexture TextureID = 0

type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether the point lies in the half-open rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// TouchSample is a single-contact touch reading in the 1280x720 reference space.
type TouchSample struct {
	Pressed bool
	X, Y    float32
}
