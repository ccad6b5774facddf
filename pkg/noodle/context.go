package noodle

import (
	"log/slog"

	"github.com/pawndev/noodle/pkg/noodle/constants"
	"github.com/pawndev/noodle/pkg/noodle/internal"
	"go.uber.org/atomic"
)

// Context carries everything the menus share on one display. It is not safe
// for concurrent use except for Shutdown and IsShutdown.
type Context struct {
	renderer Renderer
	input    Input
	clock    Clock

	width  int
	height int
	theme  Theme
	logger *slog.Logger

	touchMode bool
	lastHeld  constants.Button
	shutdown  atomic.Bool

	folderIcon TextureID
	fileIcon   TextureID
}

// Shutdown makes the current and every later blocking call return ErrShutdown.
func (c *Context) Shutdown() {
	if c.shutdown.CompareAndSwap(false, true) {
		c.logger.Info("Shutdown requested")
	}
}

func (c *Context) IsShutdown() bool {
	return c.shutdown.Load()
}

func (c *Context) Theme() Theme {
	return c.theme
}

// SetTheme switches palette by name and drops icons tinted for the old one.
func (c *Context) SetTheme(name string) {
	c.theme = internal.ThemeByName(name)
	c.releaseIcons()
}

func (c *Context) Logger() *slog.Logger {
	return c.logger
}

func (c *Context) Renderer() Renderer {
	return c.renderer
}

// TouchMode reports whether the last interaction was a touch.
func (c *Context) TouchMode() bool {
	return c.touchMode
}

// Close releases textures owned by the context.
func (c *Context) Close() {
	c.releaseIcons()
}

// pump drains host events without consuming a frame of input.
func (c *Context) pump() {
	if p, ok := c.input.(EventPumper); ok {
		p.Pump()
	}
}

// poll reads the held mask and derives the newly pressed edges.
func (c *Context) poll() (held, pressed constants.Button) {
	held = c.input.Held()
	pressed = held &^ c.lastHeld
	c.lastHeld = held
	return held, pressed
}

func (c *Context) scale(v float32) float32 {
	return v * float32(c.height) / referenceHeight
}

// lineWidth is the rule thickness in pixels.
func (c *Context) lineWidth() float32 {
	return float32(c.height / 480)
}

func (c *Context) fillRect(x, y, w, h float32, color Color) {
	c.renderer.DrawRectangle(Rect{X: c.scale(x), Y: c.scale(y), W: c.scale(w), H: c.scale(h)}, color)
}

func (c *Context) drawRule(x, y, w float32, color Color) {
	c.renderer.DrawRectangle(Rect{X: c.scale(x), Y: c.scale(y), W: c.scale(w), H: c.lineWidth()}, color)
}

func (c *Context) drawString(text string, x, y, size float32, color Color, alignRight bool) {
	c.renderer.DrawString(text, c.scale(x), c.scale(y), c.scale(size), color, alignRight)
}

func (c *Context) drawIcon(tex TextureID, texels int, x, y, size float32) {
	src := Rect{W: float32(texels), H: float32(texels)}
	dst := Rect{X: c.scale(x), Y: c.scale(y), W: c.scale(size), H: c.scale(size)}
	c.renderer.DrawTexture(tex, src, dst, true, 0, internal.RGBA(0xFF, 0xFF, 0xFF, 0xFF))
}

// drawChrome starts a frame with the title, both rules and the legend.
func (c *Context) drawChrome(title, legend string) {
	c.renderer.StartFrame(c.theme.BackgroundColor)
	c.drawString(title, 72, 30, 42, c.theme.TextColor, false)
	c.drawRule(30, 88, 1220, c.theme.TextColor)
	c.drawRule(30, 648, 1220, c.theme.TextColor)
	if legend != "" {
		c.drawString(legend, legendRight, legendY, legendSize, c.theme.TextColor, true)
	}
}

// FolderIcon returns the themed folder texture, creating it on first use.
func (c *Context) FolderIcon() TextureID {
	if c.folderIcon == NoTexture {
		c.folderIcon = c.createIcon("folder", internal.FolderIcon)
	}
	return c.folderIcon
}

// FileIcon returns the themed file texture, creating it on first use.
func (c *Context) FileIcon() TextureID {
	if c.fileIcon == NoTexture {
		c.fileIcon = c.createIcon("file", internal.FileIcon)
	}
	return c.fileIcon
}

func (c *Context) createIcon(name string, raster func(Color) ([]uint32, error)) TextureID {
	pixels, err := raster(c.theme.TextColor)
	if err != nil {
		c.logger.Error("Failed to rasterise icon", "icon", name, "error", err)
		return NoTexture
	}
	tex, err := c.renderer.CreateTexture(pixels, internal.IconSize, internal.IconSize)
	if err != nil {
		c.logger.Error("Failed to create icon texture", "icon", name, "error", err)
		return NoTexture
	}
	return tex
}

func (c *Context) releaseIcons() {
	for _, tex := range []*TextureID{&c.folderIcon, &c.fileIcon} {
		if *tex != NoTexture {
			c.renderer.DestroyTexture(*tex)
			*tex = NoTexture
		}
	}
}
