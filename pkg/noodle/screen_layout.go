package noodle

import (
	"math"

	"github.com/pawndev/noodle/pkg/noodle/config"
	"github.com/pawndev/noodle/pkg/noodle/internal"
)

const (
	dsScreenWidth   = 256
	dsScreenHeight  = 192
	gbaScreenWidth  = 240
	gbaScreenHeight = 160
)

const (
	arrangementAuto = iota
	arrangementVertical
	arrangementHorizontal
	arrangementSingle
)

const (
	positionCenter = iota
	positionTop
	positionBottom
	positionLeft
	positionRight
)

const (
	rotationNone = iota
	rotationClockwise
	rotationCounterClockwise
)

var gapFractions = []float32{0, 0.25, 0.5, 1}

type screenPlacement struct {
	src    Rect
	dst    Rect
	bottom bool
}

// screenLayout places the emulated screens on the output in pixels.
type screenLayout struct {
	screens  []screenPlacement
	rotation int
}

func layoutScreens(e config.EmulationConfig, gba bool, outW, outH int) screenLayout {
	l := screenLayout{rotation: e.ScreenRotation}
	rotated := e.ScreenRotation == rotationClockwise || e.ScreenRotation == rotationCounterClockwise
	integer := e.IntegerScale != 0
	ow, oh := float32(outW), float32(outH)

	if gba {
		w, h := float32(gbaScreenWidth), float32(gbaScreenHeight)
		if rotated {
			w, h = h, w
		}
		scale := fitScale(w, h, ow, oh, integer)
		l.screens = []screenPlacement{{
			src: Rect{W: gbaScreenWidth, H: gbaScreenHeight},
			dst: placeBox(w*scale, h*scale, ow, oh, e.ScreenPosition),
		}}
		return l
	}

	top := screenPlacement{src: Rect{W: dsScreenWidth, H: dsScreenHeight}}
	bottom := screenPlacement{src: Rect{Y: dsScreenHeight, W: dsScreenWidth, H: dsScreenHeight}, bottom: true}

	sw, sh := float32(dsScreenWidth), float32(dsScreenHeight)
	if rotated {
		sw, sh = sh, sw
	}

	if e.ScreenArrangement == arrangementSingle {
		shown := top
		if e.ScreenSizing == 2 {
			shown = bottom
		}
		scale := fitScale(sw, sh, ow, oh, integer)
		shown.dst = placeBox(sw*scale, sh*scale, ow, oh, e.ScreenPosition)
		l.screens = []screenPlacement{shown}
		return l
	}

	topWeight, bottomWeight := float32(1), float32(1)
	switch e.ScreenSizing {
	case 1:
		topWeight = 2
	case 2:
		bottomWeight = 2
	}
	gap := float32(0)
	if e.ScreenGap >= 0 && e.ScreenGap < len(gapFractions) {
		gap = gapFractions[e.ScreenGap] * dsScreenHeight
	}

	vw, vh := max(sw*topWeight, sw*bottomWeight), sh*topWeight+gap+sh*bottomWeight
	hw, hh := sw*topWeight+gap+sw*bottomWeight, max(sh*topWeight, sh*bottomWeight)

	vertical := e.ScreenArrangement == arrangementVertical
	if e.ScreenArrangement == arrangementAuto {
		vertical = fitScale(vw, vh, ow, oh, integer) > fitScale(hw, hh, ow, oh, integer)
	}

	if vertical {
		scale := fitScale(vw, vh, ow, oh, integer)
		box := placeBox(vw*scale, vh*scale, ow, oh, e.ScreenPosition)
		tw, th := sw*topWeight*scale, sh*topWeight*scale
		bw, bh := sw*bottomWeight*scale, sh*bottomWeight*scale
		top.dst = Rect{X: box.X + (box.W-tw)/2, Y: box.Y, W: tw, H: th}
		bottom.dst = Rect{X: box.X + (box.W-bw)/2, Y: box.Y + th + gap*scale, W: bw, H: bh}
	} else {
		scale := fitScale(hw, hh, ow, oh, integer)
		box := placeBox(hw*scale, hh*scale, ow, oh, e.ScreenPosition)
		tw, th := sw*topWeight*scale, sh*topWeight*scale
		bw, bh := sw*bottomWeight*scale, sh*bottomWeight*scale
		top.dst = Rect{X: box.X, Y: box.Y + (box.H-th)/2, W: tw, H: th}
		bottom.dst = Rect{X: box.X + tw + gap*scale, Y: box.Y + (box.H-bh)/2, W: bw, H: bh}
	}

	l.screens = []screenPlacement{top, bottom}
	return l
}

func fitScale(w, h, outW, outH float32, integer bool) float32 {
	scale := min(outW/w, outH/h)
	if integer && scale >= 1 {
		scale = float32(math.Floor(float64(scale)))
	}
	return scale
}

func placeBox(w, h, outW, outH float32, position int) Rect {
	r := Rect{X: (outW - w) / 2, Y: (outH - h) / 2, W: w, H: h}
	switch position {
	case positionTop:
		r.Y = 0
	case positionBottom:
		r.Y = outH - h
	case positionLeft:
		r.X = 0
	case positionRight:
		r.X = outW - w
	}
	return r
}

// touchPoint maps a touch onto the bottom screen's 256x192 space.
func (l screenLayout) touchPoint(ctx *Context, t TouchSample) (int, int, bool) {
	if !t.Pressed {
		return 0, 0, false
	}
	px, py := ctx.scale(t.X), ctx.scale(t.Y)

	for _, s := range l.screens {
		if !s.bottom || !s.dst.Contains(px, py) {
			continue
		}
		dx, dy := px-s.dst.X, py-s.dst.Y
		var x, y float32
		switch l.rotation {
		case rotationClockwise:
			x = dy * dsScreenWidth / s.dst.H
			y = (s.dst.W - dx) * dsScreenHeight / s.dst.W
		case rotationCounterClockwise:
			x = (s.dst.H - dy) * dsScreenWidth / s.dst.H
			y = dx * dsScreenHeight / s.dst.W
		default:
			x = dx * dsScreenWidth / s.dst.W
			y = dy * dsScreenHeight / s.dst.H
		}
		return internal.Clamp(int(x), 0, dsScreenWidth-1), internal.Clamp(int(y), 0, dsScreenHeight-1), true
	}
	return 0, 0, false
}

