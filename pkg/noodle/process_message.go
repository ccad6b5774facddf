package noodle

import "strings"

type processResult[T any] struct {
	value T
	err   error
}

// ProcessMessage shows text while fn runs on another goroutine and returns
// its result. Buttons are not read, so nothing but a shutdown ends it early;
// fn then keeps running and its result is discarded.
func ProcessMessage[T any](ctx *Context, title, text string, fn func() (T, error)) (T, error) {
	results := make(chan processResult[T], 1)
	go func() {
		value, err := fn()
		results <- processResult[T]{value: value, err: err}
	}()

	lines := strings.Split(text, "\n")
	for {
		select {
		case r := <-results:
			return r.value, r.err
		default:
		}

		ctx.pump()
		if ctx.IsShutdown() {
			var zero T
			return zero, ErrShutdown
		}

		ctx.drawChrome(title, "")
		for i, line := range lines {
			ctx.drawString(line, listLeft, float32(listTop+i*messageLinePitch), 38, ctx.theme.TextColor, false)
		}
		ctx.renderer.EndFrame()
	}
}
