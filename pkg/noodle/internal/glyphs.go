package internal

// Button glyphs live just past ASCII in the UI font.
const (
	GlyphA    = '\u0080'
	GlyphB    = '\u0081'
	GlyphX    = '\u0082'
	GlyphPlus = '\u0083'
)

const firstGlyph = 32

// glyphWidths holds advance widths at size 48 for runes 32 through 131.
var glyphWidths = [100]int{
	11, 9, 11, 20, 18, 28, 24, 7, 12, 12,
	14, 24, 9, 12, 9, 16, 21, 21, 21, 21,
	21, 21, 21, 21, 21, 21, 9, 9, 26, 24,
	26, 18, 28, 24, 21, 24, 26, 20, 20, 27,
	23, 9, 17, 21, 16, 31, 27, 29, 19, 29,
	20, 18, 21, 26, 24, 37, 21, 21, 24, 12,
	16, 12, 18, 16, 9, 20, 21, 18, 21, 20,
	10, 20, 20, 8, 12, 19, 9, 30, 20, 21,
	21, 21, 12, 16, 12, 20, 17, 29, 17, 17,
	16, 9, 8, 9, 12, 0, 40, 40, 40, 40,
}

// GlyphSize is the font size the width table is measured at.
const GlyphSize = 48

const fallbackGlyphWidth = 20

func GlyphWidth(r rune) int {
	if r < firstGlyph || int(r-firstGlyph) >= len(glyphWidths) {
		return fallbackGlyphWidth
	}
	return glyphWidths[r-firstGlyph]
}

// StringWidth is the advance of s at GlyphSize.
func StringWidth(s string) int {
	width := 0
	for _, r := range s {
		width += GlyphWidth(r)
	}
	return width
}

// ScaledStringWidth is the advance of s at the given font size.
func ScaledStringWidth(s string, size float32) float32 {
	return float32(StringWidth(s)) * size / GlyphSize
}
