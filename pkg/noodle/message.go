package noodle

import (
	"strings"

	"github.com/pawndev/noodle/pkg/noodle/constants"
)

type messageKind int

const (
	messageDefault messageKind = iota
	messageCancelable
	messagePrompt
)

type messageController struct {
	ctx    *Context
	title  string
	lines  []string
	kind   messageKind
	footer footer

	touchStart    TouchSample
	touchStarted  bool
	touchDragging bool
}

// Message shows text until it is confirmed. When cancelable, B or the Back
// label dismisses it and false is returned.
func Message(ctx *Context, title, text string, cancelable bool) (bool, error) {
	kind := messageDefault
	if cancelable {
		kind = messageCancelable
	}
	mc := newMessageController(ctx, title, text, kind)

	for {
		if ctx.IsShutdown() {
			return false, ErrShutdown
		}
		pressed, done := mc.frame()
		if done {
			return pressed.Has(constants.ButtonA), nil
		}
	}
}

// MessagePrompt shows text without a legend and returns the first buttons pressed.
func MessagePrompt(ctx *Context, title, text string) (constants.Button, error) {
	mc := newMessageController(ctx, title, text, messagePrompt)

	for {
		if ctx.IsShutdown() {
			return constants.ButtonNone, ErrShutdown
		}
		pressed, done := mc.frame()
		if done {
			return pressed, nil
		}
	}
}

func newMessageController(ctx *Context, title, text string, kind messageKind) *messageController {
	mc := &messageController{
		ctx:   ctx,
		title: title,
		lines: strings.Split(text, "\n"),
		kind:  kind,
	}
	if kind != messagePrompt {
		mc.footer = messageFooter(kind == messageCancelable)
	}
	return mc
}

func (mc *messageController) frame() (constants.Button, bool) {
	ctx := mc.ctx
	ctx.drawChrome(mc.title, mc.footer.Text())

	for i, line := range mc.lines {
		ctx.drawString(line, listLeft, float32(listTop+i*messageLinePitch), 38, ctx.theme.TextColor, false)
	}

	_, pressed := ctx.poll()
	switch {
	case pressed != constants.ButtonNone && mc.kind == messagePrompt:
		return pressed, true
	case pressed.Has(constants.ButtonA):
		return constants.ButtonA, true
	case pressed.Has(constants.ButtonB) && mc.kind == messageCancelable:
		return constants.ButtonB, true
	}

	if button, done := mc.handleTouch(ctx.input.Touch()); done {
		return button, true
	}

	ctx.renderer.EndFrame()
	return constants.ButtonNone, false
}

func (mc *messageController) handleTouch(touch TouchSample) (constants.Button, bool) {
	if touch.Pressed {
		if !mc.touchStarted {
			mc.touchStart = touch
			mc.touchStarted = true
			mc.touchDragging = false
			mc.ctx.touchMode = true
		}
		if movedPastThreshold(mc.touchStart, touch) {
			mc.touchDragging = true
		}
		return constants.ButtonNone, false
	}

	if !mc.touchStarted {
		return constants.ButtonNone, false
	}
	mc.touchStarted = false

	if mc.touchDragging || mc.touchStart.Y < actionBarTop {
		return constants.ButtonNone, false
	}
	return mc.footer.Hit(mc.touchStart.X)
}
