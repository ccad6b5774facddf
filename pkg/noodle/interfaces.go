package noodle

import (
	"time"

	"github.com/pawndev/noodle/pkg/noodle/constants"
	"github.com/pawndev/noodle/pkg/noodle/internal"
)

type (
	Color       = internal.Color
	TextureID   = internal.TextureID
	Rect        = internal.Rect
	TouchSample = internal.TouchSample
	Theme       = internal.Theme
)

const NoTexture = internal.NoTexture

// Renderer draws in screen pixels. Implementations own every TextureID they hand out.
type Renderer interface {
	StartFrame(clear Color)
	EndFrame()
	CreateTexture(pixels []uint32, width, height int) (TextureID, error)
	DestroyTexture(tex TextureID)
	DrawTexture(tex TextureID, src, dst Rect, filter bool, rotation int, tint Color)
	DrawRectangle(dst Rect, color Color)
	DrawString(text string, x, y, size float32, color Color, alignRight bool)
}

// Input is polled once per frame. Touch coordinates are in the 1280x720 reference space.
type Input interface {
	Held() constants.Button
	Touch() TouchSample
}

// EventPumper is implemented by inputs that must drain host events even while
// nothing reads buttons, so quit requests are still seen.
type EventPumper interface {
	Pump()
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
