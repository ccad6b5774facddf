package noodle

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/pawndev/noodle/pkg/noodle/constants"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type inputFrame struct {
	held  constants.Button
	touch TouchSample
}

// fakeInput replays one frame per Held call and advances the clock by step.
// Running out of frames shuts the context down.
type fakeInput struct {
	frames      []inputFrame
	pos         int
	current     inputFrame
	clock       *fakeClock
	step        time.Duration
	onExhausted func()
	pumps       int
}

func (f *fakeInput) Held() constants.Button {
	if f.pos >= len(f.frames) {
		f.current = inputFrame{}
		if f.onExhausted != nil {
			f.onExhausted()
		}
		return constants.ButtonNone
	}
	f.current = f.frames[f.pos]
	f.pos++
	f.clock.now = f.clock.now.Add(f.step)
	return f.current.held
}

func (f *fakeInput) Touch() TouchSample { return f.current.touch }

func (f *fakeInput) Pump() { f.pumps++ }

func (f *fakeInput) push(frames ...inputFrame) { f.frames = append(f.frames, frames...) }

type drawnString struct {
	text       string
	x, y, size float32
	color      Color
	alignRight bool
}

type drawnRect struct {
	rect  Rect
	color Color
}

type fakeRenderer struct {
	frames    int
	ended     int
	strings   []drawnString
	rects     []drawnRect
	textures  map[TextureID][]uint32
	nextID    TextureID
	destroyed []TextureID
	drawn     []TextureID
	// texts keeps every string drawn since the renderer was created.
	texts []string
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{textures: map[TextureID][]uint32{}}
}

func (r *fakeRenderer) StartFrame(Color) {
	r.frames++
	r.strings = r.strings[:0]
	r.rects = r.rects[:0]
	r.drawn = r.drawn[:0]
}

func (r *fakeRenderer) EndFrame() { r.ended++ }

func (r *fakeRenderer) CreateTexture(pixels []uint32, width, height int) (TextureID, error) {
	r.nextID++
	r.textures[r.nextID] = pixels
	return r.nextID, nil
}

func (r *fakeRenderer) DestroyTexture(tex TextureID) {
	delete(r.textures, tex)
	r.destroyed = append(r.destroyed, tex)
}

func (r *fakeRenderer) DrawTexture(tex TextureID, src, dst Rect, filter bool, rotation int, tint Color) {
	r.drawn = append(r.drawn, tex)
}

func (r *fakeRenderer) DrawRectangle(dst Rect, color Color) {
	r.rects = append(r.rects, drawnRect{rect: dst, color: color})
}

func (r *fakeRenderer) DrawString(text string, x, y, size float32, color Color, alignRight bool) {
	r.strings = append(r.strings, drawnString{text: text, x: x, y: y, size: size, color: color, alignRight: alignRight})
	r.texts = append(r.texts, text)
}

func (r *fakeRenderer) drewText(text string) bool {
	for _, t := range r.texts {
		if t == text {
			return true
		}
	}
	return false
}

// stringAt finds the last frame's string drawn at y, if any.
func (r *fakeRenderer) stringAt(y float32) (drawnString, bool) {
	for _, s := range r.strings {
		if s.y == y {
			return s, true
		}
	}
	return drawnString{}, false
}

func (r *fakeRenderer) hasRectColor(c Color) bool {
	for _, rect := range r.rects {
		if rect.color == c {
			return true
		}
	}
	return false
}

func newTestContext(t *testing.T, frames ...inputFrame) (*Context, *fakeRenderer, *fakeInput) {
	t.Helper()

	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	input := &fakeInput{frames: frames, clock: clock, step: 16 * time.Millisecond}
	renderer := newFakeRenderer()

	ctx, err := NewContext(Options{
		Renderer: renderer,
		Input:    input,
		Clock:    clock,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	input.onExhausted = ctx.Shutdown

	return ctx, renderer, input
}

func items(names ...string) []MenuItem {
	out := make([]MenuItem, len(names))
	for i, name := range names {
		out[i] = MenuItem{Name: name}
	}
	return out
}

func numbered(n int) []MenuItem {
	out := make([]MenuItem, n)
	for i := range out {
		out[i] = MenuItem{Name: string(rune('a' + i%26))}
	}
	return out
}

// press is a frame with b held followed by a release frame.
func press(b constants.Button) []inputFrame {
	return []inputFrame{{held: b}, {}}
}

func touchAt(x, y float32) inputFrame {
	return inputFrame{touch: TouchSample{Pressed: true, X: x, Y: y}}
}

func release() inputFrame {
	return inputFrame{}
}

func tap(x, y float32) []inputFrame {
	return []inputFrame{touchAt(x, y), release()}
}

func script(parts ...[]inputFrame) []inputFrame {
	var out []inputFrame
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
