package noodle

import (
	"time"

	"github.com/pawndev/noodle/pkg/noodle/constants"
	"github.com/pawndev/noodle/pkg/noodle/internal"
)

const (
	defaultRepeatDelay    = 500 * time.Millisecond
	defaultRepeatInterval = 100 * time.Millisecond
)

// MenuOptions configures RunMenu. ActionX and ActionPlus enable the X and
// Plus buttons and their legend entries when non-empty.
type MenuOptions struct {
	Title      string
	Items      []MenuItem
	Index      int
	ActionX    string
	ActionPlus string
}

type menuController struct {
	ctx     *Context
	options MenuOptions
	footer  footer
	index   int

	heldDirections struct {
		up, down bool
	}
	timeHeld       time.Time
	scrolling      bool
	repeatDelay    time.Duration
	repeatInterval time.Duration

	touchStart    TouchSample
	touchStarted  bool
	touchDragging bool
	tapped        bool
	dragAnchor    int
}

func newMenuController(ctx *Context, options MenuOptions) *menuController {
	index := options.Index
	if n := len(options.Items); index >= n {
		index = n - 1
	}
	if index < 0 {
		index = 0
	}

	return &menuController{
		ctx:            ctx,
		options:        options,
		footer:         menuFooter(options.ActionX, options.ActionPlus),
		index:          index,
		repeatDelay:    defaultRepeatDelay,
		repeatInterval: defaultRepeatInterval,
	}
}

// RunMenu shows a list and blocks until a selection is made. It returns
// ErrShutdown with an empty Selection once the context has been shut down.
func RunMenu(ctx *Context, options MenuOptions) (Selection, error) {
	mc := newMenuController(ctx, options)

	for {
		if ctx.IsShutdown() {
			return Selection{}, ErrShutdown
		}
		if sel, done := mc.frame(); done {
			ctx.logger.Debug("Menu selection", "title", options.Title, "pressed", sel.Pressed.GetName(), "index", sel.Index)
			return sel, nil
		}
	}
}

// frame runs one iteration. It returns true when the menu is finished.
func (mc *menuController) frame() (Selection, bool) {
	ctx := mc.ctx
	ctx.drawChrome(mc.options.Title, mc.footer.Text())

	held, pressed := ctx.poll()
	mc.handleNavigation(pressed)

	if mc.isTerminating(pressed) {
		ctx.touchMode = false
		return Selection{Pressed: pressed, Index: mc.index}, true
	}
	if pressed.Has(constants.ButtonA) && ctx.touchMode {
		ctx.touchMode = false
	}

	mc.handleRelease(held)
	mc.handleDirectionalRepeats()

	if sel, done := mc.handleTouch(ctx.input.Touch()); done {
		return sel, true
	}
	if sel, done := mc.renderRows(); done {
		return sel, true
	}

	ctx.renderer.EndFrame()
	return Selection{}, false
}

func (mc *menuController) handleNavigation(pressed constants.Button) {
	up := pressed.Has(constants.ButtonUp)
	down := pressed.Has(constants.ButtonDown)
	if up == down {
		return
	}

	if mc.ctx.touchMode {
		mc.ctx.touchMode = false
	} else if up && mc.index > 0 {
		mc.index--
	} else if down && mc.index < len(mc.options.Items)-1 {
		mc.index++
	}

	if up {
		mc.heldDirections.up = true
	} else {
		mc.heldDirections.down = true
	}
	mc.timeHeld = mc.ctx.clock.Now()
}

func (mc *menuController) isTerminating(pressed constants.Button) bool {
	switch {
	case pressed.Has(constants.ButtonA) && !mc.ctx.touchMode:
		return true
	case pressed.Has(constants.ButtonB):
		return true
	case pressed.Has(constants.ButtonX) && mc.options.ActionX != "":
		return true
	case pressed.Has(constants.ButtonStart) && mc.options.ActionPlus != "":
		return true
	}
	return false
}

func (mc *menuController) handleRelease(held constants.Button) {
	if mc.heldDirections.up && !held.Has(constants.ButtonUp) {
		mc.heldDirections.up = false
		mc.scrolling = false
	}
	if mc.heldDirections.down && !held.Has(constants.ButtonDown) {
		mc.heldDirections.down = false
		mc.scrolling = false
	}
}

func (mc *menuController) handleDirectionalRepeats() {
	step := 0
	if mc.heldDirections.up && mc.index > 0 {
		step = -1
	} else if mc.heldDirections.down && mc.index < len(mc.options.Items)-1 {
		step = 1
	}
	if step == 0 {
		return
	}

	now := mc.ctx.clock.Now()
	elapsed := now.Sub(mc.timeHeld)
	if !mc.scrolling && elapsed > mc.repeatDelay {
		mc.scrolling = true
	}
	if mc.scrolling && elapsed > mc.repeatInterval {
		mc.index += step
		mc.timeHeld = now
	}
}

func (mc *menuController) handleTouch(touch TouchSample) (Selection, bool) {
	n := len(mc.options.Items)

	if touch.Pressed {
		if !mc.touchStarted {
			mc.touchStart = touch
			mc.touchStarted = true
			mc.touchDragging = false
			mc.ctx.touchMode = true
		}

		if mc.touchDragging {
			candidate := mc.dragAnchor + dragDelta(mc.touchStart.Y, touch.Y)
			if n > visibleRows && candidate != mc.dragAnchor {
				mc.index = clampToScrollBand(candidate, n)
			}
		} else if movedPastThreshold(mc.touchStart, touch) {
			mc.touchDragging = true
			mc.dragAnchor = clampToScrollBand(mc.index, n)
		}
		return Selection{}, false
	}

	if !mc.touchStarted {
		return Selection{}, false
	}
	mc.touchStarted = false

	if mc.touchDragging {
		return Selection{}, false
	}
	if mc.touchStart.Y >= actionBarTop {
		// OK is not tappable: touch mode hides the highlighted row.
		if button, ok := mc.footer.Hit(mc.touchStart.X); ok && button != constants.ButtonA {
			return Selection{Pressed: button, Index: mc.index}, true
		}
		return Selection{}, false
	}
	mc.tapped = true
	return Selection{}, false
}

// renderRows draws the visible rows, resolving a pending tap against each
// row before it is drawn.
func (mc *menuController) renderRows() (Selection, bool) {
	ctx := mc.ctx
	theme := ctx.theme
	items := mc.options.Items
	n := len(items)

	tapped := mc.tapped
	mc.tapped = false

	if n > 0 {
		ctx.drawRule(listLeft, listTop, listWidth, theme.SeparatorColor)
	}

	for slot := 0; slot < visibleSlots(n); slot++ {
		offset := rowOffset(slot, mc.index, n)

		if tapped && rowRect(slot).Contains(mc.touchStart.X, mc.touchStart.Y) {
			mc.index = offset
			return Selection{Pressed: constants.ButtonA, Index: offset}, true
		}

		y := float32(slot * rowPitch)
		if !ctx.touchMode && offset == mc.index {
			ctx.fillRect(90, 125+y, 1100, 69, theme.HighlightColor)
			ctx.fillRect(89, 121+y, 1103, 5, theme.BorderColor)
			ctx.fillRect(89, 191+y, 1103, 5, theme.BorderColor)
			ctx.fillRect(88, 122+y, 5, 73, theme.BorderColor)
			ctx.fillRect(1188, 122+y, 5, 73, theme.BorderColor)
		} else {
			ctx.drawRule(listLeft, 194+y, listWidth, theme.SeparatorColor)
		}

		item := items[offset]
		nameX := float32(105)
		if item.IconSize > 0 {
			nameX = 184
		}
		ctx.drawString(item.Name, nameX, 140+y, 38, theme.TextColor, false)

		if item.IconSize > 0 {
			ctx.drawIcon(item.Icon, item.IconSize, 105, 127+y, internal.IconSize)
		}
		if item.Setting != "" {
			ctx.drawString(item.Setting, 1175, 143+y, 32, theme.SettingColor, true)
		}
	}
	return Selection{}, false
}
