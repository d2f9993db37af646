package kummu

import (
	"testing"

	assertion "github.com/stretchr/testify/assert"
)

func TestEntryEncoding(t *testing.T) {
	assert := assertion.New(t)

	cases := []struct {
		entry    Entry
		raw      uint8
		present  bool
		swapped  bool
		unmapped bool
	}{
		{Entry(0), 0, false, false, true},
		{PresentEntry(1), 0b00000101, true, false, false},
		{PresentEntry(3), 0b00001101, true, false, false},
		{PresentEntry(MaxFrames - 1), 0b11111101, true, false, false},
		{SwappedEntry(1), 0b00000010, false, true, false},
		{SwappedEntry(5), 0b00001010, false, true, false},
		{SwappedEntry(MaxSlots - 1), 0b11111110, false, true, false},
	}
	for _, c := range cases {
		assert.Equal(c.raw, uint8(c.entry), c.entry.String())
		assert.Equal(c.present, c.entry.Present(), c.entry.String())
		assert.Equal(c.swapped, c.entry.Swapped(), c.entry.String())
		assert.Equal(c.unmapped, c.entry.Unmapped(), c.entry.String())
	}

	assert.Equal(FrameNum(3), Entry(0b00001101).Frame())
	assert.Equal(FrameNum(63), Entry(0b11111101).Frame())
	assert.Equal(SlotNum(5), Entry(0b00001010).Slot())
	assert.Equal(SlotNum(127), Entry(0b11111110).Slot())
}

func TestEntryString(t *testing.T) {
	assert := assertion.New(t)
	assert.Equal("unmapped", Entry(0).String())
	assert.Equal("present(frame=7)", PresentEntry(7).String())
	assert.Equal("swapped(slot=9)", SwappedEntry(9).String())
}

func TestVirtAddr(t *testing.T) {
	assert := assertion.New(t)

	cases := []struct {
		va      VirtAddr
		indexes [Levels]int
		offset  int
		base    VirtAddr
	}{
		{0, [Levels]int{0, 0, 0}, 0, 0},
		{1, [Levels]int{0, 0, 0}, 1, 0},
		{5, [Levels]int{0, 0, 1}, 1, 4},
		{8, [Levels]int{0, 0, 2}, 0, 8},
		{40, [Levels]int{0, 2, 2}, 0, 40},
		{250, [Levels]int{3, 3, 2}, 2, 248},
		{255, [Levels]int{3, 3, 3}, 3, 252},
	}
	for _, c := range cases {
		for level := 0; level < Levels; level++ {
			assert.Equal(c.indexes[level], c.va.Index(level), "va %d level %d", c.va, level)
		}
		assert.Equal(c.offset, c.va.Offset(), "va %d", c.va)
		assert.Equal(c.base, c.va.PageBase(), "va %d", c.va)
	}
}

func TestRange(t *testing.T) {
	assert := assertion.New(t)

	r := RangeOf(250)
	assert.Equal(Range{First: 248, Last: 251}, r)
	assert.True(r.Contains(248))
	assert.True(r.Contains(251))
	assert.False(r.Contains(252))
	assert.False(r.Contains(247))
	assert.Equal("[248,251]", r.String())

	assert.Equal(Range{First: 252, Last: 255}, RangeOf(255))
	assert.Equal(RangeOf(0), RangeOf(3))
}
