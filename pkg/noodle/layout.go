package noodle

import "github.com/pawndev/noodle/pkg/noodle/internal"

// Layout constants are in the 1280x720 reference space.
const (
	referenceHeight = 720

	visibleRows = 7
	rowPitch    = 70
	listTop     = 124
	listLeft    = 90
	listWidth   = 1100

	dragThreshold = 25
	scrollBandLow = 3

	actionBarTop = 650
	legendRight  = 1218
	legendY      = 667
	legendSize   = 34

	messageLinePitch = 38
)

// rowOffset maps a visible slot to an item index, keeping index in the
// middle slot once the list is long enough to scroll.
func rowOffset(slot, index, count int) int {
	switch {
	case index <= scrollBandLow || count <= visibleRows:
		return slot
	case index > scrollBandHigh(count):
		return count - visibleRows + slot
	default:
		return slot + index - scrollBandLow
	}
}

// clampToScrollBand bounds a drag index to the band where the selection stays centred.
func clampToScrollBand(index, count int) int {
	return internal.Clamp(index, scrollBandLow, scrollBandHigh(count))
}

func scrollBandHigh(count int) int {
	return count - (visibleRows - scrollBandLow)
}

// visibleSlots is how many row slots are drawn for count items.
func visibleSlots(count int) int {
	return min(visibleRows, count)
}

// rowRect is the tappable area of a row slot.
func rowRect(slot int) Rect {
	return Rect{
		X: listLeft,
		Y: float32(listTop + slot*rowPitch),
		W: listWidth,
		H: rowPitch,
	}
}

// dragDelta is how many rows a vertical drag from startY to y has moved.
func dragDelta(startY, y float32) int {
	return int(startY-y) / rowPitch
}

func movedPastThreshold(start, cur TouchSample) bool {
	return internal.AbsF(cur.X-start.X) > dragThreshold || internal.AbsF(cur.Y-start.Y) > dragThreshold
}
