package sdlhost

import (
	"fmt"
	"log/slog"
	"math"
	"unsafe"

	"github.com/pawndev/noodle/pkg/noodle"
	"github.com/pawndev/noodle/pkg/noodle/internal"
	"github.com/veandco/go-sdl2/gfx"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	rotationClockwise        = 1
	rotationCounterClockwise = 2
)

// Renderer implements noodle.Renderer on an accelerated SDL renderer.
// Pixels are 0xAABBGGRR words, which is ABGR8888 in SDL's naming.
type Renderer struct {
	renderer *sdl.Renderer
	fonts    *fontCache
	logger   *slog.Logger

	textures map[noodle.TextureID]*sdl.Texture
	nextID   noodle.TextureID
}

var _ noodle.Renderer = (*Renderer)(nil)

func newRenderer(r *sdl.Renderer, fonts *fontCache, logger *slog.Logger) *Renderer {
	r.SetDrawBlendMode(sdl.BLENDMODE_BLEND)
	return &Renderer{
		renderer: r,
		fonts:    fonts,
		logger:   logger,
		textures: make(map[noodle.TextureID]*sdl.Texture),
	}
}

func (r *Renderer) StartFrame(clear noodle.Color) {
	r.renderer.SetDrawColor(clear.R(), clear.G(), clear.B(), clear.A())
	r.renderer.Clear()
}

func (r *Renderer) EndFrame() {
	r.renderer.Present()
}

func (r *Renderer) CreateTexture(pixels []uint32, width, height int) (noodle.TextureID, error) {
	if width <= 0 || height <= 0 || len(pixels) < width*height {
		return noodle.NoTexture, fmt.Errorf("sdlhost: %d pixels for a %dx%d texture", len(pixels), width, height)
	}

	tex, err := r.renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STATIC, int32(width), int32(height))
	if err != nil {
		return noodle.NoTexture, fmt.Errorf("create texture: %w", err)
	}
	if err := tex.Update(nil, unsafe.Pointer(&pixels[0]), width*4); err != nil {
		tex.Destroy()
		return noodle.NoTexture, fmt.Errorf("upload texture: %w", err)
	}
	tex.SetBlendMode(sdl.BLENDMODE_BLEND)

	r.nextID++
	r.textures[r.nextID] = tex
	return r.nextID, nil
}

func (r *Renderer) DestroyTexture(id noodle.TextureID) {
	if tex, ok := r.textures[id]; ok {
		tex.Destroy()
		delete(r.textures, id)
	}
}

// DrawTexture draws src into dst. dst is the box on screen after rotation.
func (r *Renderer) DrawTexture(id noodle.TextureID, src, dst noodle.Rect, filter bool, rotation int, tint noodle.Color) {
	tex, ok := r.textures[id]
	if !ok {
		return
	}

	if filter {
		tex.SetScaleMode(sdl.ScaleModeLinear)
	} else {
		tex.SetScaleMode(sdl.ScaleModeNearest)
	}
	tex.SetColorMod(tint.R(), tint.G(), tint.B())
	tex.SetAlphaMod(tint.A())

	srcRect := &sdl.Rect{X: int32(src.X), Y: int32(src.Y), W: int32(src.W), H: int32(src.H)}

	var angle float64
	switch rotation {
	case rotationClockwise:
		angle = 90
	case rotationCounterClockwise:
		angle = -90
	default:
		r.renderer.CopyF(tex, srcRect, &sdl.FRect{X: dst.X, Y: dst.Y, W: dst.W, H: dst.H})
		return
	}

	// SDL rotates around the centre of the unrotated box.
	cx, cy := dst.X+dst.W/2, dst.Y+dst.H/2
	box := &sdl.FRect{X: cx - dst.H/2, Y: cy - dst.W/2, W: dst.H, H: dst.W}
	r.renderer.CopyExF(tex, srcRect, box, angle, nil, sdl.FLIP_NONE)
}

func (r *Renderer) DrawRectangle(dst noodle.Rect, color noodle.Color) {
	if dst.W <= 0 || dst.H <= 0 {
		return
	}
	x1, y1 := int32(math.Round(float64(dst.X))), int32(math.Round(float64(dst.Y)))
	x2 := int32(math.Round(float64(dst.X+dst.W))) - 1
	y2 := int32(math.Round(float64(dst.Y+dst.H))) - 1
	gfx.BoxColor(r.renderer, x1, y1, max(x1, x2), max(y1, y2), sdlColor(color))
}

// DrawString draws text with its top edge at y. Size is the font height in pixels.
func (r *Renderer) DrawString(text string, x, y, size float32, color noodle.Color, alignRight bool) {
	if text == "" {
		return
	}
	font := r.fonts.get(int(size + 0.5))
	if font == nil {
		return
	}

	surface, err := font.RenderUTF8Blended(glyphReplacer.Replace(text), sdlColor(color))
	if err != nil {
		r.logger.Debug("Failed to render text", "text", text, "error", err)
		return
	}
	defer surface.Free()

	tex, err := r.renderer.CreateTextureFromSurface(surface)
	if err != nil {
		r.logger.Debug("Failed to create text texture", "error", err)
		return
	}
	defer tex.Destroy()

	w, h := float32(surface.W), float32(surface.H)
	if alignRight {
		x -= w
	}
	r.renderer.CopyF(tex, nil, &sdl.FRect{X: x, Y: y, W: w, H: h})
}

func (r *Renderer) close() {
	for id, tex := range r.textures {
		tex.Destroy()
		delete(r.textures, id)
	}
	r.fonts.close()
	r.renderer.Destroy()
}

func sdlColor(c internal.Color) sdl.Color {
	return sdl.Color{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}
