package noodle

import (
	"strings"

	"github.com/pawndev/noodle/pkg/noodle/constants"
	"github.com/pawndev/noodle/pkg/noodle/internal"
)

const footerPadding = "     "

// footerItem is one action of the legend. The rightmost item is unpadded.
type footerItem struct {
	Glyph  rune
	Label  string
	Button constants.Button
}

func (f footerItem) text(last bool) string {
	s := string(f.Glyph) + " " + f.Label
	if !last {
		s += footerPadding
	}
	return s
}

// footer is a legend laid out right to left from legendRight.
// items[0] is the rightmost entry and occupies [edges[1], edges[0]).
type footer struct {
	items []footerItem
	edges []int
}

// newFooter lays out items given right to left. Items with an empty label are dropped.
func newFooter(items ...footerItem) footer {
	f := footer{}
	for _, item := range items {
		if item.Label != "" {
			f.items = append(f.items, item)
		}
	}
	if len(f.items) == 0 {
		return f
	}

	space := float32(internal.GlyphWidth(' '))

	right := int(legendRight + 2.5*space*legendSize/internal.GlyphSize)
	f.edges = append(f.edges, right)

	first := float32(internal.StringWidth(f.items[0].text(true)))
	bound := int(legendRight - (first+2.5*space)*legendSize/internal.GlyphSize)
	f.edges = append(f.edges, bound)

	for _, item := range f.items[1:] {
		bound -= internal.StringWidth(item.text(false)) * legendSize / internal.GlyphSize
		f.edges = append(f.edges, bound)
	}
	return f
}

// Text is the legend string, leftmost item first.
func (f footer) Text() string {
	var sb strings.Builder
	for i := len(f.items) - 1; i >= 0; i-- {
		sb.WriteString(f.items[i].text(i == 0))
	}
	return sb.String()
}

// Hit returns the button whose label spans x.
func (f footer) Hit(x float32) (constants.Button, bool) {
	for i, item := range f.items {
		if x >= float32(f.edges[i+1]) && x < float32(f.edges[i]) {
			return item.Button, true
		}
	}
	return constants.ButtonNone, false
}

func menuFooter(actionX, actionPlus string) footer {
	return newFooter(
		footerItem{Glyph: internal.GlyphA, Label: localize(msgOK), Button: constants.ButtonA},
		footerItem{Glyph: internal.GlyphB, Label: localize(msgBack), Button: constants.ButtonB},
		footerItem{Glyph: internal.GlyphX, Label: actionX, Button: constants.ButtonX},
		footerItem{Glyph: internal.GlyphPlus, Label: actionPlus, Button: constants.ButtonStart},
	)
}

func messageFooter(cancelable bool) footer {
	items := []footerItem{{Glyph: internal.GlyphA, Label: localize(msgOK), Button: constants.ButtonA}}
	if cancelable {
		items = append(items, footerItem{Glyph: internal.GlyphB, Label: localize(msgBack), Button: constants.ButtonB})
	}
	return newFooter(items...)
}
