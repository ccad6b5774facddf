package noodle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowOffsetShortListIsIdentity(t *testing.T) {
	for n := 0; n <= visibleRows; n++ {
		for index := 0; index < max(n, 1); index++ {
			for slot := 0; slot < visibleSlots(n); slot++ {
				assert.Equal(t, slot, rowOffset(slot, index, n), "n=%d index=%d slot=%d", n, index, slot)
			}
		}
	}
}

func TestRowOffsetLongListShowsSelection(t *testing.T) {
	for n := visibleRows + 1; n <= 40; n++ {
		for index := 0; index < n; index++ {
			first := rowOffset(0, index, n)
			assert.GreaterOrEqual(t, first, 0)
			assert.LessOrEqual(t, first+visibleRows-1, n-1)

			hits := 0
			for slot := 0; slot < visibleRows; slot++ {
				offset := rowOffset(slot, index, n)
				assert.Equal(t, first+slot, offset, "offsets must be contiguous")
				if offset == index {
					hits++
				}
			}
			assert.Equal(t, 1, hits, "n=%d index=%d", n, index)
		}
	}
}

func TestRowOffsetCentresSelection(t *testing.T) {
	assert.Equal(t, 10, rowOffset(scrollBandLow, 10, 20))
	assert.Equal(t, 13, rowOffset(0, 19, 20))
	assert.Equal(t, 0, rowOffset(0, 3, 20))
}

func TestClampToScrollBand(t *testing.T) {
	assert.Equal(t, 3, clampToScrollBand(0, 20))
	assert.Equal(t, 16, clampToScrollBand(19, 20))
	assert.Equal(t, 9, clampToScrollBand(9, 20))
	assert.Equal(t, 3, clampToScrollBand(2, 3))
}

func TestDragDelta(t *testing.T) {
	assert.Equal(t, 5, dragDelta(500, 150))
	assert.Equal(t, -5, dragDelta(150, 500))
	assert.Equal(t, 0, dragDelta(500, 440))
	assert.Equal(t, 1, dragDelta(500, 430))
}

func TestRowRect(t *testing.T) {
	r := rowRect(2)
	assert.True(t, r.Contains(90, 264))
	assert.False(t, r.Contains(1190, 300))
	assert.False(t, r.Contains(300, 334))
}

func TestMovedPastThreshold(t *testing.T) {
	start := TouchSample{Pressed: true, X: 100, Y: 100}
	assert.False(t, movedPastThreshold(start, TouchSample{X: 125, Y: 75}))
	assert.True(t, movedPastThreshold(start, TouchSample{X: 126, Y: 100}))
	assert.True(t, movedPastThreshold(start, TouchSample{X: 100, Y: 74}))
}
