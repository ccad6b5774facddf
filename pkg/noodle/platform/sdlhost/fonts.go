package sdlhost

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pawndev/noodle/pkg/noodle/internal"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// glyphReplacer swaps the button glyphs the menus use for characters a
// stock TTF carries.
var glyphReplacer = strings.NewReplacer(
	string(internal.GlyphA), "Ⓐ",
	string(internal.GlyphB), "Ⓑ",
	string(internal.GlyphX), "Ⓧ",
	string(internal.GlyphPlus), "⊕",
)

// fontCache opens the UI font once per pixel size. The file is read once and
// every size is opened from memory.
type fontCache struct {
	data   []byte
	fonts  map[int]*ttf.Font
	logger *slog.Logger
}

func newFontCache(path string, logger *slog.Logger) (*fontCache, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	return &fontCache{data: data, fonts: make(map[int]*ttf.Font), logger: logger}, nil
}

func (fc *fontCache) get(size int) *ttf.Font {
	if size < 1 {
		size = 1
	}
	if font, ok := fc.fonts[size]; ok {
		return font
	}

	rw, err := sdl.RWFromMem(fc.data)
	if err != nil {
		fc.logger.Error("Failed to create RW from font", "size", size, "error", err)
		return nil
	}
	font, err := ttf.OpenFontRW(rw, 1, size)
	if err != nil {
		fc.logger.Error("Failed to open font", "size", size, "error", err)
		fc.fonts[size] = nil
		return nil
	}
	fc.fonts[size] = font
	return font
}

func (fc *fontCache) close() {
	for size, font := range fc.fonts {
		if font != nil {
			font.Close()
		}
		delete(fc.fonts, size)
	}
}
